package resolve

import (
	"sort"
	"strings"

	"github.com/siherrmann/fuser/model"
)

// ResolveTopics deduplicates topics case-insensitively across the
// collection, keeping the first-seen spelling and per-video
// provenance. Topics are ordered by how many videos mention them.
func (r *Resolver) ResolveTopics(videos []model.VideoSummary) []model.CrossVideoTopic {
	accumulators := map[string]*model.CrossVideoTopic{}
	videoSeen := map[string]map[string]bool{}
	var order []string

	for _, video := range videos {
		for _, topic := range video.Topics {
			trimmed := strings.TrimSpace(topic)
			if trimmed == "" {
				continue
			}
			key := strings.ToLower(trimmed)

			accumulator, ok := accumulators[key]
			if !ok {
				accumulator = &model.CrossVideoTopic{Name: trimmed}
				accumulators[key] = accumulator
				videoSeen[key] = map[string]bool{}
				order = append(order, key)
			}

			accumulator.MentionCount++
			if !videoSeen[key][video.ID] {
				videoSeen[key][video.ID] = true
				accumulator.VideoIDs = append(accumulator.VideoIDs, video.ID)
			}
		}
	}

	topics := make([]model.CrossVideoTopic, 0, len(order))
	for _, key := range order {
		topics = append(topics, *accumulators[key])
	}
	sort.SliceStable(topics, func(i, j int) bool {
		return len(topics[i].VideoIDs) > len(topics[j].VideoIDs)
	})

	return topics
}
