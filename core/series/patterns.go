package series

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/siherrmann/fuser/model"
)

// titlePattern is one sequence marker matched against video titles.
type titlePattern struct {
	name string
	re   *regexp.Regexp
}

// Sequence markers checked against every title. Each pattern captures
// the sequence number in its first group (ordinal words and dates are
// converted separately).
var titlePatterns = []titlePattern{
	{"part", regexp.MustCompile(`(?i)\bpart\s*(\d+)\b`)},
	{"episode", regexp.MustCompile(`(?i)\b(?:episode|ep\.?)\s*(\d+)\b`)},
	{"chapter", regexp.MustCompile(`(?i)\bchapter\s*(\d+)\b`)},
	{"volume", regexp.MustCompile(`(?i)\bvol(?:ume)?\.?\s*(\d+)\b`)},
	{"n_of_m", regexp.MustCompile(`\b(\d+)\s*(?:of|/)\s*\d+\b`)},
	{"hash_number", regexp.MustCompile(`#(\d+)\b`)},
	{"ordinal_word", regexp.MustCompile(`(?i)\b(first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth)\b`)},
	{"date", regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)},
}

var ordinalWords = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9, "tenth": 10,
}

// patternMatch records one title matched by a pattern.
type patternMatch struct {
	videoID string
	number  int
}

// titleSignal is the title-pattern evidence over a whole video set.
type titleSignal struct {
	score      float64
	pattern    string
	coverage   float64
	contiguity float64
	matches    []patternMatch
}

// analyzeTitles matches every pattern against all titles and keeps the
// single best one. Score is 0.6 x coverage (fraction of titles
// matched) + 0.4 x contiguity (how close the extracted numbers are to
// a gapless integer run).
func analyzeTitles(videos []model.VideoSummary) titleSignal {
	best := titleSignal{}
	if len(videos) == 0 {
		return best
	}

	for _, pattern := range titlePatterns {
		var matches []patternMatch
		for _, video := range videos {
			number, ok := extractSequenceNumber(pattern, video.Title)
			if !ok {
				continue
			}
			matches = append(matches, patternMatch{videoID: video.ID, number: number})
		}
		if len(matches) == 0 {
			continue
		}

		coverage := float64(len(matches)) / float64(len(videos))
		contiguity := sequenceContiguity(matches)
		score := 0.6*coverage + 0.4*contiguity
		if score > best.score {
			best = titleSignal{
				score:      score,
				pattern:    pattern.name,
				coverage:   coverage,
				contiguity: contiguity,
				matches:    matches,
			}
		}
	}

	return best
}

func extractSequenceNumber(pattern titlePattern, title string) (int, bool) {
	match := pattern.re.FindStringSubmatch(title)
	if match == nil {
		return 0, false
	}

	switch pattern.name {
	case "ordinal_word":
		return ordinalWords[strings.ToLower(match[1])], true
	case "date":
		parsed, err := time.Parse("2006-01-02", match[0])
		if err != nil {
			return 0, false
		}
		// Days since epoch keeps date sequences comparable
		return int(parsed.Unix() / 86400), true
	default:
		number, err := strconv.Atoi(match[1])
		if err != nil {
			return 0, false
		}
		return number, true
	}
}

// sequenceContiguity measures how close the matched numbers are to a
// contiguous integer sequence: 1.0 for a perfect 1,2,3,... run.
func sequenceContiguity(matches []patternMatch) float64 {
	if len(matches) < 2 {
		return 0
	}

	numbers := make([]int, len(matches))
	for i, match := range matches {
		numbers[i] = match.number
	}
	sort.Ints(numbers)

	adjacent := 0
	for i := 1; i < len(numbers); i++ {
		if numbers[i]-numbers[i-1] == 1 {
			adjacent++
		}
	}
	return float64(adjacent) / float64(len(numbers)-1)
}
