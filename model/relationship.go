package model

// Relationship is a raw subject-predicate-object triple extracted from
// one video by a relation tagger.
type Relationship struct {
	Subject    string  `json:"subject"`
	Predicate  string  `json:"predicate"`
	Object     string  `json:"object"`
	Confidence float64 `json:"confidence"`
	Context    string  `json:"context,omitempty"`
}

// CrossVideoRelationship is a relationship deduplicated across the
// collection. Subject and object are canonicalized entity names where
// the alias map could resolve them. Confidence grows with the number
// of corroborating videos but never exceeds 1.0.
type CrossVideoRelationship struct {
	Subject      string   `json:"subject"`
	Predicate    string   `json:"predicate"`
	Object       string   `json:"object"`
	Confidence   float64  `json:"confidence"`
	VideoSources []string `json:"video_sources"`
	MentionCount int      `json:"mention_count"`
	Contexts     []string `json:"contexts,omitempty"`
}
