// Package series decides whether a set of videos forms an ordered
// collection and how to group them.
package series

import (
	"log/slog"
	"math"
	"sort"

	"github.com/siherrmann/fuser/model"
)

// Signal combination weights.
const (
	titleWeight    = 0.4
	contentWeight  = 0.3
	temporalWeight = 0.2
	channelWeight  = 0.1

	strongTitleScore = 0.7
	looseGroupScore  = 0.5
)

// Detector analyzes a video set for series membership.
type Detector struct {
	threshold float64
	log       *slog.Logger
}

// NewDetector creates a Detector with the given similarity threshold.
func NewDetector(threshold float64, logger *slog.Logger) *Detector {
	if threshold <= 0 {
		threshold = 0.7
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{threshold: threshold, log: logger}
}

// Detect combines title-pattern, temporal, content-similarity and
// channel-consistency signals into one confidence score and suggested
// groupings. A perfectly contiguous title sequence on a single channel
// is treated as conclusive.
func (d *Detector) Detect(videos []model.VideoSummary) model.SeriesDetectionResult {
	if len(videos) < 2 {
		return model.SeriesDetectionResult{
			Groups:                 singletonGroups(videos),
			UserConfirmationNeeded: len(videos) > 0,
		}
	}

	titles := analyzeTitles(videos)
	temporal := analyzeTemporal(videos)
	channelScore := analyzeChannel(videos)

	pairs := make([]model.VideoSimilarity, 0, len(videos)*(len(videos)-1)/2)
	contentSum := 0.0
	for i := 0; i < len(videos); i++ {
		for j := i + 1; j < len(videos); j++ {
			pair := CompareVideos(videos[i], videos[j])
			pairs = append(pairs, pair)
			contentSum += pair.Overall
		}
	}
	contentScore := contentSum / float64(len(pairs))

	confidence := titleWeight*titles.score +
		contentWeight*contentScore +
		temporalWeight*temporal.score +
		channelWeight*channelScore

	// A full, gapless numbered run on one channel is as close to
	// certainty as heuristics get.
	if titles.coverage == 1.0 && titles.contiguity == 1.0 && channelScore == 1.0 {
		confidence = math.Max(confidence, 0.95)
	}

	var methods []model.DetectionMethod
	if titles.score >= 0.5 {
		methods = append(methods, model.DetectionMethodTitlePattern)
	}
	if contentScore >= 0.5 {
		methods = append(methods, model.DetectionMethodContent)
	}
	if temporal.score >= 0.5 {
		methods = append(methods, model.DetectionMethodTemporal)
	}
	if channelScore >= 0.5 {
		methods = append(methods, model.DetectionMethodChannel)
	}

	groups := d.suggestGroups(videos, titles, pairs, contentScore)

	result := model.SeriesDetectionResult{
		IsSeries:               confidence > d.threshold,
		Confidence:             confidence,
		Methods:                methods,
		Groups:                 groups,
		UserConfirmationNeeded: confidence < 0.9 || len(groups) > 1,
	}

	d.log.Debug("Series detection finished",
		slog.Float64("confidence", confidence),
		slog.Bool("is_series", result.IsSeries),
		slog.Int("groups", len(groups)),
		slog.String("title_pattern", titles.pattern))

	return result
}

// suggestGroups picks the grouping strategy: strong title patterns
// win, then similarity-graph components, then one collection-wide
// group, then singletons.
func (d *Detector) suggestGroups(videos []model.VideoSummary, titles titleSignal, pairs []model.VideoSimilarity, contentScore float64) [][]string {
	if titles.score > strongTitleScore {
		return titleGroups(videos, titles)
	}

	if components := similarityComponents(videos, pairs, d.threshold); components != nil {
		return components
	}

	if contentScore > looseGroupScore {
		all := make([]string, 0, len(videos))
		for _, video := range videos {
			all = append(all, video.ID)
		}
		return [][]string{all}
	}

	return singletonGroups(videos)
}

// titleGroups puts the pattern-matched videos in sequence order into
// one group and the remainder into singletons.
func titleGroups(videos []model.VideoSummary, titles titleSignal) [][]string {
	ordered := make([]patternMatch, len(titles.matches))
	copy(ordered, titles.matches)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].number < ordered[j].number })

	matched := make([]string, 0, len(ordered))
	inSeries := map[string]bool{}
	for _, match := range ordered {
		matched = append(matched, match.videoID)
		inSeries[match.videoID] = true
	}

	groups := [][]string{matched}
	for _, video := range videos {
		if !inSeries[video.ID] {
			groups = append(groups, []string{video.ID})
		}
	}
	return groups
}

// similarityComponents builds an undirected graph over pairs whose
// overall similarity clears the threshold and returns its connected
// components. Traversal is an explicit stack, not recursion, so large
// collections cannot blow the call depth. Returns nil when no pair
// clears the threshold.
func similarityComponents(videos []model.VideoSummary, pairs []model.VideoSimilarity, threshold float64) [][]string {
	adjacency := map[string][]string{}
	connected := false
	for _, pair := range pairs {
		if pair.Overall >= threshold {
			adjacency[pair.VideoA] = append(adjacency[pair.VideoA], pair.VideoB)
			adjacency[pair.VideoB] = append(adjacency[pair.VideoB], pair.VideoA)
			connected = true
		}
	}
	if !connected {
		return nil
	}

	visited := map[string]bool{}
	var groups [][]string
	for _, video := range videos {
		if visited[video.ID] {
			continue
		}

		var component []string
		stack := []string{video.ID}
		visited[video.ID] = true
		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			component = append(component, current)
			for _, neighbor := range adjacency[current] {
				if !visited[neighbor] {
					visited[neighbor] = true
					stack = append(stack, neighbor)
				}
			}
		}
		groups = append(groups, component)
	}
	return groups
}

func singletonGroups(videos []model.VideoSummary) [][]string {
	groups := make([][]string, 0, len(videos))
	for _, video := range videos {
		groups = append(groups, []string{video.ID})
	}
	return groups
}
