package model

import "time"

// QualityMetrics are operator-facing heuristics about one collection
// run. They are proxy signals, not correctness guarantees: in
// particular EntityResolutionQuality rewards compression (many
// duplicates merged), which is not the same thing as accurate
// resolution.
type QualityMetrics struct {
	EntityResolutionQuality float64 `json:"entity_resolution_quality"`
	NarrativeCoherence      float64 `json:"narrative_coherence"`
	InformationCompleteness float64 `json:"information_completeness"`
}

// CollectionResult is the consolidated output of one collection
// processing run, consumed by presentation and export layers.
type CollectionResult struct {
	CollectionID  string                   `json:"collection_id"`
	Entities      []CrossVideoEntity       `json:"entities"`
	Relationships []CrossVideoRelationship `json:"relationships"`
	Topics        []CrossVideoTopic        `json:"topics,omitempty"`
	Timeline      *ConsolidatedTimeline    `json:"timeline,omitempty"`
	Series        *SeriesDetectionResult   `json:"series,omitempty"`
	Metrics       QualityMetrics           `json:"metrics"`
	VideoCount    int                      `json:"video_count"`
	CreatedAt     time.Time                `json:"created_at"`
}
