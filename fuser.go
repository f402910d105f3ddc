// Package fuser fuses independently-extracted video intelligence
// (entities, relationships, key points, topics) into one
// temporally-ordered, deduplicated knowledge representation.
package fuser

import (
	"context"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/fuser/core/extract"
	"github.com/siherrmann/fuser/core/normalize"
	"github.com/siherrmann/fuser/core/resolve"
	"github.com/siherrmann/fuser/core/series"
	"github.com/siherrmann/fuser/core/timeline"
	"github.com/siherrmann/fuser/helper"
	"github.com/siherrmann/fuser/model"
)

// Fuser orchestrates series detection, cross-video resolution and
// timeline synthesis for one collection of analyzed videos.
type Fuser struct {
	Config      model.ResolutionConfig
	Detector    *series.Detector
	Resolver    *resolve.Resolver
	Synthesizer *timeline.Synthesizer
	Validator   extract.Validator
	// Optional: tags videos that arrive without entities
	extractCandidates extract.CandidateExtractFunc
	// Logging
	log *slog.Logger
}

// NewFuser creates a Fuser with all components initialized
func NewFuser(config model.ResolutionConfig) *Fuser {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	return &Fuser{
		Config:      config,
		Detector:    series.NewDetector(config.SeriesSimilarityThreshold, logger),
		Resolver:    resolve.NewResolver(config, logger),
		Synthesizer: timeline.NewSynthesizer(nil, config.TimelineWorkers, logger),
		Validator:   extract.NoopValidator{},
		log:         logger,
	}
}

// UseDefaultExtractor loads the bundled NER model so that videos
// arriving without tagged entities get tagged from their title and
// key points during processing.
func (f *Fuser) UseDefaultExtractor() error {
	extractCandidates, err := extract.DefaultCandidateExtractor()
	if err != nil {
		return helper.NewError("create default candidate extractor", err)
	}
	f.extractCandidates = extractCandidates
	return nil
}

// SetCandidateExtractor sets the collaborator used to tag videos that
// arrive without entities. A nil extractor disables tagging.
func (f *Fuser) SetCandidateExtractor(extractCandidates extract.CandidateExtractFunc) {
	f.extractCandidates = extractCandidates
}

// SetDateExtractor replaces the heuristic date extractor with another
// collaborator (an LLM-backed one, typically).
func (f *Fuser) SetDateExtractor(extractDate timeline.DateExtractFunc) {
	f.Synthesizer = timeline.NewSynthesizer(extractDate, f.Config.TimelineWorkers, f.log)
}

// SetValidator sets the advisory AI validation collaborator. Validator
// findings are logged but never required to produce a result.
func (f *Fuser) SetValidator(validator extract.Validator) {
	if validator == nil {
		validator = extract.NoopValidator{}
	}
	f.Validator = validator
}

// ProcessCollection runs the full fusion pipeline over a batch of
// analyzed videos: series detection, cross-video entity, relationship
// and topic resolution, timeline synthesis and quality metrics. It
// always produces a best-effort result; malformed or partial input
// degrades the output instead of failing the batch.
func (f *Fuser) ProcessCollection(ctx context.Context, videos []model.VideoSummary, collectionID string) *model.CollectionResult {
	if collectionID == "" {
		collectionID = uuid.New().String()
	}

	f.log.Info("Processing collection",
		slog.String("collection_id", collectionID),
		slog.Int("videos", len(videos)))

	videos = f.tagUntaggedVideos(videos)

	detection := f.Detector.Detect(videos)
	entities := f.Resolver.ResolveEntities(videos)
	relationships := f.Resolver.ResolveRelationships(videos, entities)
	topics := f.Resolver.ResolveTopics(videos)
	consolidated := f.Synthesizer.Synthesize(ctx, videos, entities, collectionID)

	// Advisory only: a failing validator never fails the run
	if review, err := f.Validator.ValidateMerges(ctx, entities); err != nil {
		f.log.Warn("Merge validation unavailable", slog.String("error", err.Error()))
	} else if review != "" {
		f.log.Info("Merge validation review", slog.String("review", review))
	}

	result := &model.CollectionResult{
		CollectionID:  collectionID,
		Entities:      entities,
		Relationships: relationships,
		Topics:        topics,
		Timeline:      consolidated,
		Series:        &detection,
		Metrics:       computeMetrics(videos, entities, relationships),
		VideoCount:    len(videos),
		CreatedAt:     time.Now().UTC(),
	}

	f.log.Info("Collection processed",
		slog.String("collection_id", collectionID),
		slog.Int("entities", len(entities)),
		slog.Int("relationships", len(relationships)),
		slog.Int("events", len(consolidated.Events)))

	return result
}

// tagUntaggedVideos runs the candidate extractor over the title and
// key points of every video that arrived without entities and
// normalizes the candidates in one per-video pass. Videos with
// upstream entities are left untouched; extraction failures leave the
// video untagged instead of failing the batch.
func (f *Fuser) tagUntaggedVideos(videos []model.VideoSummary) []model.VideoSummary {
	if f.extractCandidates == nil {
		return videos
	}

	normalizer := normalize.NewNormalizer(f.Config.SinglePassThreshold)
	tagged := make([]model.VideoSummary, len(videos))
	copy(tagged, videos)

	for i := range tagged {
		if len(tagged[i].Entities) > 0 {
			continue
		}

		texts := []string{tagged[i].Title}
		for _, point := range tagged[i].KeyPoints {
			texts = append(texts, point.Text)
		}

		var candidates []model.CandidateEntity
		for _, text := range texts {
			extracted, err := f.extractCandidates(text)
			if err != nil {
				f.log.Warn("Candidate extraction failed, leaving video untagged",
					slog.String("video_id", tagged[i].ID),
					slog.String("error", err.Error()))
				candidates = nil
				break
			}
			candidates = append(candidates, extracted...)
		}

		if len(candidates) > 0 {
			tagged[i].Entities = normalizer.Normalize(candidates)
		}
	}

	return tagged
}

// computeMetrics derives the operator-facing quality scalars. These
// are proxy heuristics: resolution quality measures compression, not
// accuracy.
func computeMetrics(videos []model.VideoSummary, entities []model.CrossVideoEntity, relationships []model.CrossVideoRelationship) model.QualityMetrics {
	metrics := model.QualityMetrics{}

	rawEntities := 0
	for _, video := range videos {
		rawEntities += len(video.Entities)
	}
	if rawEntities > 0 {
		metrics.EntityResolutionQuality = 1.0 - float64(len(entities))/float64(rawEntities)
	}

	if len(entities) > 0 {
		multiVideo := 0
		for _, entity := range entities {
			if len(entity.VideoAppearances) > 1 {
				multiVideo++
			}
		}
		metrics.NarrativeCoherence = float64(multiVideo) / float64(len(entities))
	}

	if n := len(entities); n > 1 {
		density := float64(len(relationships)) / float64(n*(n-1)) * 10.0
		metrics.InformationCompleteness = math.Min(1.0, density)
	}

	return metrics
}
