package series

import (
	"math"
	"sort"
	"strings"

	"github.com/siherrmann/fuser/core/similarity"
	"github.com/siherrmann/fuser/model"
)

// temporalSignal summarizes publish-gap regularity over a video set.
type temporalSignal struct {
	score               float64
	averageGapDays      float64
	durationConsistency float64
}

// analyzeTemporal scores publish cadence: tight regular gaps (< 30
// days, deviation within the average) score 0.8, gaps under 90 days
// score 0.5, anything else 0.2. Videos without a publish date are
// ignored; fewer than two dated videos yield no signal.
func analyzeTemporal(videos []model.VideoSummary) temporalSignal {
	var published []int64
	for _, video := range videos {
		if video.PublishedAt != nil {
			published = append(published, video.PublishedAt.Unix())
		}
	}
	if len(published) < 2 {
		return temporalSignal{durationConsistency: durationConsistency(videos)}
	}
	sort.Slice(published, func(i, j int) bool { return published[i] < published[j] })

	gaps := make([]float64, 0, len(published)-1)
	for i := 1; i < len(published); i++ {
		gaps = append(gaps, float64(published[i]-published[i-1])/86400.0)
	}

	average := mean(gaps)
	deviation := stddev(gaps, average)

	score := 0.2
	switch {
	case average < 30 && deviation <= average+1:
		score = 0.8
	case average < 90:
		score = 0.5
	}

	return temporalSignal{
		score:               score,
		averageGapDays:      average,
		durationConsistency: durationConsistency(videos),
	}
}

// durationConsistency is the inverse of the normalized duration
// variance: 1.0 for identical durations, approaching 0 for wildly
// different ones.
func durationConsistency(videos []model.VideoSummary) float64 {
	var durations []float64
	for _, video := range videos {
		if video.DurationSeconds > 0 {
			durations = append(durations, video.DurationSeconds)
		}
	}
	if len(durations) < 2 {
		return 0
	}

	average := mean(durations)
	if average == 0 {
		return 0
	}
	return 1.0 / (1.0 + stddev(durations, average)/average)
}

// analyzeChannel returns 1.0 when all videos share a channel, else the
// dominant channel's share.
func analyzeChannel(videos []model.VideoSummary) float64 {
	if len(videos) == 0 {
		return 0
	}

	counts := map[string]int{}
	for _, video := range videos {
		counts[strings.ToLower(strings.TrimSpace(video.Channel))]++
	}

	dominant := 0
	for _, count := range counts {
		if count > dominant {
			dominant = count
		}
	}
	return float64(dominant) / float64(len(videos))
}

// CompareVideos computes the pairwise similarity evidence between two
// videos. Unavailable components (both topic lists empty, one video
// undated) are excluded and the remaining weights renormalized, so a
// sparse pair is not penalized for missing metadata.
func CompareVideos(a, b model.VideoSummary) model.VideoSimilarity {
	result := model.VideoSimilarity{VideoA: a.ID, VideoB: b.ID}

	weightSum := 0.0
	weighted := 0.0

	if len(a.Topics) > 0 || len(b.Topics) > 0 {
		overlap, shared := jaccard(a.Topics, b.Topics)
		result.TopicOverlap = overlap
		result.SharedTopics = shared
		weighted += 0.3 * overlap
		weightSum += 0.3
	}

	namesA := entityNames(a)
	namesB := entityNames(b)
	if len(namesA) > 0 || len(namesB) > 0 {
		overlap, shared := jaccard(namesA, namesB)
		result.EntityOverlap = overlap
		result.SharedEntities = shared
		weighted += 0.3 * overlap
		weightSum += 0.3
	}

	result.TitleSimilarity = similarity.EditRatio(strings.ToLower(a.Title), strings.ToLower(b.Title))
	weighted += 0.2 * result.TitleSimilarity
	weightSum += 0.2

	if a.PublishedAt != nil && b.PublishedAt != nil {
		days := math.Abs(a.PublishedAt.Sub(*b.PublishedAt).Hours() / 24)
		result.TemporalProximity = math.Max(0, 1.0-days/365.0)
		weighted += 0.1 * result.TemporalProximity
		weightSum += 0.1
	}

	if a.Channel != "" && b.Channel != "" {
		if strings.EqualFold(a.Channel, b.Channel) {
			result.ChannelMatch = 1.0
		}
		weighted += 0.1 * result.ChannelMatch
		weightSum += 0.1
	}

	if weightSum > 0 {
		result.Overall = weighted / weightSum
	}
	return result
}

func entityNames(video model.VideoSummary) []string {
	names := make([]string, 0, len(video.Entities))
	for _, entity := range video.Entities {
		names = append(names, entity.Name)
	}
	return names
}

// jaccard returns |A∩B| / |A∪B| over case-insensitive string sets and
// the shared members.
func jaccard(a, b []string) (float64, []string) {
	setA := map[string]string{}
	for _, item := range a {
		setA[strings.ToLower(strings.TrimSpace(item))] = strings.TrimSpace(item)
	}
	setB := map[string]bool{}
	for _, item := range b {
		setB[strings.ToLower(strings.TrimSpace(item))] = true
	}
	if len(setA) == 0 && len(setB) == 0 {
		return 0, nil
	}

	var shared []string
	union := len(setB)
	for key, original := range setA {
		if setB[key] {
			shared = append(shared, original)
		} else {
			union++
		}
	}
	if union == 0 {
		return 0, nil
	}
	sort.Strings(shared)
	return float64(len(shared)) / float64(union), shared
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, value := range values {
		sum += value
	}
	return sum / float64(len(values))
}

func stddev(values []float64, average float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	for _, value := range values {
		diff := value - average
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(values)))
}
