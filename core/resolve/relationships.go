package resolve

import (
	"log/slog"
	"math"
	"strings"

	"github.com/siherrmann/fuser/core/similarity"
	"github.com/siherrmann/fuser/model"
)

// relationshipKey identifies a deduplicated triple case-insensitively.
type relationshipKey struct {
	subject   string
	predicate string
	object    string
}

type relationshipAccumulator struct {
	relationship model.CrossVideoRelationship
	confidences  []float64
	videoSeen    map[string]bool
	contextSeen  map[string]bool
}

// ResolveRelationships deduplicates every video's relationships across
// the collection. Subject and object are canonicalized through the
// resolved entities' alias map where possible and left untouched
// otherwise. A relationship corroborated by multiple videos gets a
// confidence of mean x (1 + boost x (videos - 1)), capped at 1.0, and
// keeps up to the configured number of distinct context snippets.
func (r *Resolver) ResolveRelationships(videos []model.VideoSummary, entities []model.CrossVideoEntity) []model.CrossVideoRelationship {
	aliasMap := map[string]string{}
	for _, entity := range entities {
		aliasMap[strings.ToLower(entity.Name)] = entity.Name
		for _, alias := range entity.Aliases {
			aliasMap[strings.ToLower(alias)] = entity.Name
		}
	}

	accumulators := map[relationshipKey]*relationshipAccumulator{}
	var order []relationshipKey

	for _, video := range videos {
		for _, relationship := range video.Relationships {
			subject := canonicalName(relationship.Subject, aliasMap)
			object := canonicalName(relationship.Object, aliasMap)
			predicate := strings.TrimSpace(relationship.Predicate)
			if subject == "" || predicate == "" || object == "" {
				continue
			}

			key := relationshipKey{
				subject:   strings.ToLower(subject),
				predicate: strings.ToLower(predicate),
				object:    strings.ToLower(object),
			}
			accumulator, ok := accumulators[key]
			if !ok {
				accumulator = &relationshipAccumulator{
					relationship: model.CrossVideoRelationship{
						Subject:   subject,
						Predicate: predicate,
						Object:    object,
					},
					videoSeen:   map[string]bool{},
					contextSeen: map[string]bool{},
				}
				accumulators[key] = accumulator
				order = append(order, key)
			}

			accumulator.confidences = append(accumulator.confidences, relationship.Confidence)
			accumulator.relationship.MentionCount++
			if !accumulator.videoSeen[video.ID] {
				accumulator.videoSeen[video.ID] = true
				accumulator.relationship.VideoSources = append(accumulator.relationship.VideoSources, video.ID)
			}

			context := strings.TrimSpace(relationship.Context)
			if context != "" && !accumulator.contextSeen[context] &&
				len(accumulator.relationship.Contexts) < r.config.MaxContextSnippets {
				accumulator.contextSeen[context] = true
				accumulator.relationship.Contexts = append(accumulator.relationship.Contexts, context)
			}
		}
	}

	resolved := make([]model.CrossVideoRelationship, 0, len(order))
	for _, key := range order {
		accumulator := accumulators[key]
		relationship := accumulator.relationship

		sum := 0.0
		for _, confidence := range accumulator.confidences {
			sum += confidence
		}
		meanConfidence := sum / float64(len(accumulator.confidences))

		videoCount := len(relationship.VideoSources)
		boost := 1.0 + r.config.CorroborationBoost*float64(videoCount-1)
		relationship.Confidence = math.Min(1.0, meanConfidence*boost)

		resolved = append(resolved, relationship)
	}

	r.log.Info("Resolved relationships across videos",
		slog.Int("resolved_relationships", len(resolved)))

	return resolved
}

// canonicalName maps a raw name to its canonical entity name when the
// alias map knows it, otherwise returns the cleaned original.
func canonicalName(raw string, aliasMap map[string]string) string {
	cleaned := similarity.CleanName(raw)
	if canonical, ok := aliasMap[strings.ToLower(cleaned)]; ok {
		return canonical
	}
	return cleaned
}
