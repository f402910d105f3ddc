package model

import (
	"time"

	"github.com/google/uuid"
)

// DateSource tags where an event's timestamp came from.
type DateSource string

const (
	DateSourceContent         DateSource = "content"
	DateSourceTitle           DateSource = "title"
	DateSourcePublishFallback DateSource = "publish-date-fallback"
)

// ExtractedDate is the result of one date-extraction collaborator call.
// A nil ExtractedDate means "no date found", which is a normal outcome.
type ExtractedDate struct {
	Parsed       time.Time `json:"parsed_date"`
	OriginalText string    `json:"original_text,omitempty"`
	Confidence   float64   `json:"confidence"`
	Source       string    `json:"source,omitempty"`
}

// TimelineEvent is one dated event on the consolidated timeline.
type TimelineEvent struct {
	ID            uuid.UUID      `json:"id"`
	Timestamp     time.Time      `json:"timestamp"`
	Description   string         `json:"description"`
	VideoID       string         `json:"video_id"`
	VideoTitle    string         `json:"video_title,omitempty"`
	OffsetSeconds float64        `json:"offset_seconds"`
	Entities      []string       `json:"entities,omitempty"`
	Confidence    float64        `json:"confidence"`
	Date          *ExtractedDate `json:"extracted_date,omitempty"`
	DateSource    DateSource     `json:"date_source"`
}

// ConsolidatedTimeline is the ordered event list for one collection.
// Events are sorted ascending by timestamp and event ids are unique.
type ConsolidatedTimeline struct {
	CollectionID string          `json:"collection_id"`
	Events       []TimelineEvent `json:"events"`
	Summary      string          `json:"summary,omitempty"`
}
