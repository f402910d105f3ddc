package timeline

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/siherrmann/fuser/model"
)

// DateExtractFunc extracts a date from free text. A nil ExtractedDate
// with a nil error means no date was found, which is a normal outcome.
// Implementations may be backed by an LLM or any date-parsing service;
// callers treat errors and cancellations as "no date found".
type DateExtractFunc func(ctx context.Context, text string, sourceKind string) (*model.ExtractedDate, error)

// Date-looking spans scanned out of free text, most specific first.
var dateSpanPatterns = []struct {
	re         *regexp.Regexp
	confidence float64
}{
	// 2021-06-05, 2021/06/05
	{regexp.MustCompile(`\b\d{4}[-/]\d{1,2}[-/]\d{1,2}\b`), 0.9},
	// 6/5/2021, 05.06.2021
	{regexp.MustCompile(`\b\d{1,2}[./]\d{1,2}[./]\d{4}\b`), 0.85},
	// January 5, 2021 / Jan 5 2021
	{regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}\b`), 0.9},
	// 5 January 2021
	{regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{4}\b`), 0.9},
	// January 2021
	{regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{4}\b`), 0.7},
}

// Bare years, only plausible ones ("in 1969", "by 2024").
var yearPattern = regexp.MustCompile(`\b(1[0-9]{3}|20[0-9]{2})\b`)

// DefaultDateExtractor returns a heuristic extractor that scans text
// for date-looking spans and parses them with dateparse. It is the
// non-LLM fallback collaborator; swap in a smarter DateExtractFunc for
// better recall.
func DefaultDateExtractor() DateExtractFunc {
	return func(ctx context.Context, text string, sourceKind string) (*model.ExtractedDate, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			return nil, nil
		}

		for _, pattern := range dateSpanPatterns {
			span := pattern.re.FindString(text)
			if span == "" {
				continue
			}
			parsed, err := parseSpan(normalizeOrdinals(span))
			if err != nil {
				continue
			}
			return &model.ExtractedDate{
				Parsed:       parsed.UTC(),
				OriginalText: span,
				Confidence:   pattern.confidence,
				Source:       sourceKind,
			}, nil
		}

		if span := yearPattern.FindString(text); span != "" {
			year, err := strconv.Atoi(span)
			if err == nil {
				return &model.ExtractedDate{
					Parsed:       time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
					OriginalText: span,
					Confidence:   0.5,
					Source:       sourceKind,
				}, nil
			}
		}

		return nil, nil
	}
}

var ordinalSuffix = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)`)

func normalizeOrdinals(span string) string {
	return ordinalSuffix.ReplaceAllString(span, "$1")
}

// Layouts for spans dateparse does not cover (month-year only).
var spanLayouts = []string{"January 2006", "Jan 2006"}

func parseSpan(span string) (time.Time, error) {
	parsed, err := dateparse.ParseAny(span)
	if err == nil {
		return parsed, nil
	}
	for _, layout := range spanLayouts {
		if parsed, layoutErr := time.Parse(layout, span); layoutErr == nil {
			return parsed, nil
		}
	}
	return time.Time{}, err
}
