package model

import "time"

// CandidateEntity is an unverified entity mention produced by one
// extractor, before deduplication. Candidates are consumed by the
// normalizer and do not survive a normalization pass.
type CandidateEntity struct {
	Name       string   `json:"name"`
	Type       string   `json:"entity_type"`
	Confidence float64  `json:"confidence"`
	Source     string   `json:"source,omitempty"`
	Properties Metadata `json:"properties,omitempty"`
}

// CanonicalEntity is the merged representative record for one
// real-world entity after deduplication. The canonical name never
// appears in its own alias set.
type CanonicalEntity struct {
	Name         string   `json:"name"`
	Type         string   `json:"entity_type"`
	Aliases      []string `json:"aliases,omitempty"`
	Confidence   float64  `json:"confidence"`
	MentionCount int      `json:"mention_count"`
	Source       string   `json:"source,omitempty"`
}

// VideoSource records one video's contribution to a merged entity.
type VideoSource struct {
	VideoID    string     `json:"video_id"`
	Title      string     `json:"title,omitempty"`
	Confidence float64    `json:"confidence"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

// CrossVideoEntity extends CanonicalEntity with provenance across a
// whole collection. VideoAppearances holds each contributing video id
// exactly once; FirstMentioned/LastMentioned are derived from the
// publish dates of contributing videos and stay nil when no
// contributing video carries a publish date.
type CrossVideoEntity struct {
	CanonicalEntity
	VideoAppearances []string      `json:"video_appearances"`
	FirstMentioned   *time.Time    `json:"first_mentioned,omitempty"`
	LastMentioned    *time.Time    `json:"last_mentioned,omitempty"`
	VideoSources     []VideoSource `json:"video_sources,omitempty"`
}

// CrossVideoTopic is a topic deduplicated across the collection with
// video provenance.
type CrossVideoTopic struct {
	Name         string   `json:"name"`
	VideoIDs     []string `json:"video_ids"`
	MentionCount int      `json:"mention_count"`
}
