package model

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ResolutionConfig holds the tunables for one collection run.
type ResolutionConfig struct {
	// Name matching thresholds
	SinglePassThreshold float64 `json:"single_pass_threshold"` // Edit ratio for one-video normalization
	CrossVideoThreshold float64 `json:"cross_video_threshold"` // Stricter ratio for cross-video merging

	// Series detection
	SeriesSimilarityThreshold float64 `json:"series_similarity_threshold"`

	// Relationship corroboration
	CorroborationBoost float64 `json:"corroboration_boost"` // Per extra corroborating video
	MaxContextSnippets int     `json:"max_context_snippets"`

	// Timeline synthesis
	TimelineWorkers int `json:"timeline_workers"` // Parallel per-video synthesis
}

// DefaultResolutionConfig returns a sensible default configuration
func DefaultResolutionConfig() ResolutionConfig {
	return ResolutionConfig{
		SinglePassThreshold:       0.7,
		CrossVideoThreshold:       0.85,
		SeriesSimilarityThreshold: 0.7,
		CorroborationBoost:        0.1,
		MaxContextSnippets:        3,
		TimelineWorkers:           4,
	}
}

// LoadResolutionConfigFromEnv loads a .env file if present and
// overlays FUSER_* variables on the defaults. Unset or unparsable
// variables keep their default value.
func LoadResolutionConfigFromEnv() ResolutionConfig {
	_ = godotenv.Load()

	config := DefaultResolutionConfig()
	config.SinglePassThreshold = envFloat("FUSER_SINGLE_PASS_THRESHOLD", config.SinglePassThreshold)
	config.CrossVideoThreshold = envFloat("FUSER_CROSS_VIDEO_THRESHOLD", config.CrossVideoThreshold)
	config.SeriesSimilarityThreshold = envFloat("FUSER_SERIES_SIMILARITY_THRESHOLD", config.SeriesSimilarityThreshold)
	config.CorroborationBoost = envFloat("FUSER_CORROBORATION_BOOST", config.CorroborationBoost)
	config.MaxContextSnippets = envInt("FUSER_MAX_CONTEXT_SNIPPETS", config.MaxContextSnippets)
	config.TimelineWorkers = envInt("FUSER_TIMELINE_WORKERS", config.TimelineWorkers)
	return config
}

func envFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
