package model

// DetectionMethod tags which signal drove a series decision.
type DetectionMethod string

const (
	DetectionMethodTitlePattern DetectionMethod = "title_pattern"
	DetectionMethodTemporal     DetectionMethod = "temporal"
	DetectionMethodContent      DetectionMethod = "content_similarity"
	DetectionMethodChannel      DetectionMethod = "channel_consistency"
)

// SeriesDetectionResult is the immutable outcome of one detection run
// over a video set.
type SeriesDetectionResult struct {
	IsSeries               bool              `json:"is_series"`
	Confidence             float64           `json:"confidence"`
	Methods                []DetectionMethod `json:"methods,omitempty"`
	Groups                 [][]string        `json:"groups"`
	UserConfirmationNeeded bool              `json:"user_confirmation_needed"`
}

// VideoSimilarity is the pairwise evidence between two videos. It is
// intermediate state for series detection and is not persisted.
type VideoSimilarity struct {
	VideoA            string   `json:"video_a"`
	VideoB            string   `json:"video_b"`
	Overall           float64  `json:"overall"`
	TopicOverlap      float64  `json:"topic_overlap"`
	EntityOverlap     float64  `json:"entity_overlap"`
	TitleSimilarity   float64  `json:"title_similarity"`
	TemporalProximity float64  `json:"temporal_proximity"`
	ChannelMatch      float64  `json:"channel_match"`
	SharedEntities    []string `json:"shared_entities,omitempty"`
	SharedTopics      []string `json:"shared_topics,omitempty"`
}
