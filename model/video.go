package model

import "time"

// KeyPoint is a single important statement extracted from a video,
// anchored to an offset within the video.
type KeyPoint struct {
	Text          string  `json:"text"`
	OffsetSeconds float64 `json:"offset_seconds"`
	Confidence    float64 `json:"confidence,omitempty"`
}

// VideoSummary is the per-video analysis produced by the upstream
// extraction stage. Entities are already normalized within the video;
// cross-video resolution happens downstream.
type VideoSummary struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Channel         string            `json:"channel,omitempty"`
	PublishedAt     *time.Time        `json:"published_at,omitempty"`
	DurationSeconds float64           `json:"duration_seconds,omitempty"`
	Topics          []string          `json:"topics,omitempty"`
	Entities        []CanonicalEntity `json:"entities,omitempty"`
	Relationships   []Relationship    `json:"relationships,omitempty"`
	KeyPoints       []KeyPoint        `json:"key_points,omitempty"`
	Metadata        Metadata          `json:"metadata,omitempty"`
}
