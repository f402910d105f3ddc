package resolve

import (
	"log/slog"
	"strings"
	"time"

	"github.com/siherrmann/fuser/core/normalize"
	"github.com/siherrmann/fuser/core/similarity"
	"github.com/siherrmann/fuser/model"
)

// ResolveEntities merges each video's already-normalized entities into
// collection-wide records. All entities are flattened into one
// candidate list and re-normalized with the aggressive cross-video
// threshold; provenance is then recovered per video through the alias
// map. Aggregated confidence is the arithmetic mean of every
// contributing observation, and first/last mentioned come from the
// min/max publish date of contributing videos (nil when no
// contributing video is dated).
func (r *Resolver) ResolveEntities(videos []model.VideoSummary) []model.CrossVideoEntity {
	candidates := []model.CandidateEntity{}
	for _, video := range videos {
		for _, entity := range video.Entities {
			candidates = append(candidates, model.CandidateEntity{
				Name:       entity.Name,
				Type:       entity.Type,
				Confidence: entity.Confidence,
				Source:     entity.Source,
			})
		}
	}
	if len(candidates) == 0 {
		return []model.CrossVideoEntity{}
	}

	normalizer := normalize.NewNormalizer(r.config.CrossVideoThreshold)
	merged := normalizer.Normalize(candidates)

	resolved := make([]model.CrossVideoEntity, 0, len(merged))
	for _, entity := range merged {
		names := map[string]bool{strings.ToLower(entity.Name): true}
		for _, alias := range entity.Aliases {
			names[strings.ToLower(alias)] = true
		}

		crossEntity := model.CrossVideoEntity{CanonicalEntity: entity}
		crossEntity.MentionCount = 0

		var confidences []float64
		appeared := map[string]bool{}
		for _, video := range videos {
			for _, videoEntity := range video.Entities {
				if !mentionsAny(videoEntity, names) {
					continue
				}
				confidences = append(confidences, videoEntity.Confidence)
				crossEntity.MentionCount += maxInt(videoEntity.MentionCount, 1)

				if !appeared[video.ID] {
					appeared[video.ID] = true
					crossEntity.VideoAppearances = append(crossEntity.VideoAppearances, video.ID)
					crossEntity.VideoSources = append(crossEntity.VideoSources, model.VideoSource{
						VideoID:    video.ID,
						Title:      video.Title,
						Confidence: videoEntity.Confidence,
						Timestamp:  video.PublishedAt,
					})
					updateMentionWindow(&crossEntity, video.PublishedAt)
				}
			}
		}

		if len(confidences) > 0 {
			sum := 0.0
			for _, confidence := range confidences {
				sum += confidence
			}
			crossEntity.Confidence = sum / float64(len(confidences))
		}

		resolved = append(resolved, crossEntity)
	}

	r.log.Info("Resolved entities across videos",
		slog.Int("raw_entities", len(candidates)),
		slog.Int("resolved_entities", len(resolved)))

	return resolved
}

// mentionsAny reports whether a per-video entity's canonical name or
// any alias belongs to the merged entity's name set. The set holds
// cleaned names, so the per-video names are cleaned the same way
// before lookup.
func mentionsAny(entity model.CanonicalEntity, names map[string]bool) bool {
	if names[strings.ToLower(similarity.CleanName(entity.Name))] {
		return true
	}
	for _, alias := range entity.Aliases {
		if names[strings.ToLower(similarity.CleanName(alias))] {
			return true
		}
	}
	return false
}

func updateMentionWindow(entity *model.CrossVideoEntity, published *time.Time) {
	if published == nil {
		return
	}
	if entity.FirstMentioned == nil || published.Before(*entity.FirstMentioned) {
		first := *published
		entity.FirstMentioned = &first
	}
	if entity.LastMentioned == nil || published.After(*entity.LastMentioned) {
		last := *published
		entity.LastMentioned = &last
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
