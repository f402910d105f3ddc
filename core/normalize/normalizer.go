// Package normalize deduplicates noisy candidate entities from the
// extraction stage into canonical records.
package normalize

import (
	"strings"

	"github.com/siherrmann/fuser/core/similarity"
	"github.com/siherrmann/fuser/model"
)

// stopWords are names that never denote a real entity on their own.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "this": true, "that": true,
	"these": true, "those": true, "it": true, "he": true, "she": true,
	"they": true, "we": true, "you": true, "his": true, "her": true,
	"their": true, "our": true, "one": true, "two": true, "some": true,
	"here": true, "there": true, "now": true, "today": true,
	"thing": true, "things": true, "something": true, "video": true,
	"people": true, "person": true, "group": true, "news": true,
}

// titlePrefixes are honorifics that inflate a name without making it
// more complete. They are ignored when scoring canonical candidates.
var titlePrefixes = []string{
	"president", "vice president", "senator", "sen.", "governor", "gov.",
	"secretary", "general", "gen.", "colonel", "col.", "admiral",
	"prime minister", "chancellor", "mr.", "mrs.", "ms.", "dr.", "mr",
	"mrs", "ms", "dr", "sir", "lord", "judge", "justice", "rep.",
	"representative", "mayor", "captain", "capt.",
}

// Normalizer merges duplicate candidate entities within one list.
type Normalizer struct {
	threshold float64
}

// NewNormalizer creates a Normalizer with the given edit-ratio
// threshold. Non-positive thresholds fall back to the loose default.
func NewNormalizer(threshold float64) *Normalizer {
	if threshold <= 0 {
		threshold = similarity.DefaultThreshold
	}
	return &Normalizer{threshold: threshold}
}

type cleanedCandidate struct {
	model.CandidateEntity
	cleanedName string
}

// Normalize deduplicates candidates into canonical entities. Grouping
// is greedy and single-pass: each ungrouped candidate starts a group
// and absorbs every remaining candidate with a compatible type and an
// equivalent name. Two groups that end up with identical canonical
// names are not re-merged; callers may run Normalize again when they
// need a fixed point.
func (n *Normalizer) Normalize(candidates []model.CandidateEntity) []model.CanonicalEntity {
	pool := make([]cleanedCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		name := similarity.CleanName(candidate.Name)
		if len([]rune(name)) < 2 || stopWords[strings.ToLower(name)] {
			continue
		}
		pool = append(pool, cleanedCandidate{CandidateEntity: candidate, cleanedName: name})
	}

	grouped := make([]bool, len(pool))
	entities := []model.CanonicalEntity{}
	for i := range pool {
		if grouped[i] {
			continue
		}
		group := []cleanedCandidate{pool[i]}
		grouped[i] = true

		for j := i + 1; j < len(pool); j++ {
			if grouped[j] {
				continue
			}
			if similarity.TypesCompatible(pool[i].Type, pool[j].Type) &&
				similarity.NamesEquivalent(pool[i].cleanedName, pool[j].cleanedName, n.threshold) {
				grouped[j] = true
				group = append(group, pool[j])
			}
		}

		entity := mergeGroup(group)
		if len([]rune(entity.Name)) < 2 || stopWords[strings.ToLower(entity.Name)] {
			continue
		}
		entities = append(entities, entity)
	}

	return entities
}

// mergeGroup collapses one group of equivalent candidates into a
// canonical entity.
func mergeGroup(group []cleanedCandidate) model.CanonicalEntity {
	winner := 0
	bestScore := canonicalScore(group[0].cleanedName, group)
	for i := 1; i < len(group); i++ {
		score := canonicalScore(group[i].cleanedName, group)
		if score > bestScore {
			bestScore = score
			winner = i
		}
	}

	canonical := group[winner].cleanedName

	seenAliases := map[string]bool{canonical: true}
	aliases := []string{}
	sources := []string{}
	seenSources := map[string]bool{}
	confidence := 0.0
	for _, member := range group {
		if member.Confidence > confidence {
			confidence = member.Confidence
		}
		if member.Source != "" && !seenSources[member.Source] {
			seenSources[member.Source] = true
			sources = append(sources, member.Source)
		}
		if !seenAliases[member.cleanedName] {
			seenAliases[member.cleanedName] = true
			aliases = append(aliases, member.cleanedName)
		}
	}

	return model.CanonicalEntity{
		Name:         canonical,
		Type:         group[winner].Type,
		Aliases:      aliases,
		Confidence:   confidence,
		MentionCount: len(group),
		Source:       strings.Join(sources, "+"),
	}
}

// canonicalScore rates how good a name is as the canonical form of its
// group: longer, multi-word, properly cased names win. Honorific
// prefixes do not count toward length or word count, so "Joe Biden"
// beats "President Biden".
func canonicalScore(name string, group []cleanedCandidate) float64 {
	maxLen, maxWords := 1, 1
	for _, member := range group {
		stripped := stripTitlePrefix(member.cleanedName)
		if l := len([]rune(stripped)); l > maxLen {
			maxLen = l
		}
		if w := len(strings.Fields(stripped)); w > maxWords {
			maxWords = w
		}
	}

	stripped := stripTitlePrefix(name)
	score := 0.3*float64(len([]rune(stripped)))/float64(maxLen) +
		0.4*float64(len(strings.Fields(stripped)))/float64(maxWords)

	runes := []rune(name)
	if len(runes) > 0 && strings.ToUpper(string(runes[0])) == string(runes[0]) {
		score += 0.2
	}
	if name == strings.ToUpper(name) || name == strings.ToLower(name) {
		score -= 0.1
	}
	return score
}

func stripTitlePrefix(name string) string {
	lowered := strings.ToLower(name)
	for _, prefix := range titlePrefixes {
		if strings.HasPrefix(lowered, prefix+" ") {
			stripped := strings.TrimSpace(name[len(prefix):])
			if stripped != "" {
				return stripped
			}
		}
	}
	return name
}

// AliasMap builds a lowercase alias lookup (including canonical names)
// to canonical names for downstream resolution.
func AliasMap(entities []model.CanonicalEntity) map[string]string {
	aliasMap := make(map[string]string)
	for _, entity := range entities {
		aliasMap[strings.ToLower(entity.Name)] = entity.Name
		for _, alias := range entity.Aliases {
			aliasMap[strings.ToLower(alias)] = entity.Name
		}
	}
	return aliasMap
}

// AliasesOf returns the alias list of the entity with the given
// canonical name, or nil when the entity is unknown.
func AliasesOf(entities []model.CanonicalEntity, canonical string) []string {
	for _, entity := range entities {
		if strings.EqualFold(entity.Name, canonical) {
			return entity.Aliases
		}
	}
	return nil
}
