// Package timeline converts per-video key points into one dated,
// ordered event timeline for a collection.
package timeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/fuser/model"
)

// Synthesizer builds consolidated timelines from video key points.
type Synthesizer struct {
	extract DateExtractFunc
	workers int
	log     *slog.Logger
}

// NewSynthesizer creates a Synthesizer. A nil extractor falls back to
// the heuristic DefaultDateExtractor; workers bounds the per-video
// parallelism and defaults to 4.
func NewSynthesizer(extract DateExtractFunc, workers int, logger *slog.Logger) *Synthesizer {
	if extract == nil {
		extract = DefaultDateExtractor()
	}
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{extract: extract, workers: workers, log: logger}
}

// Synthesize converts every video's key points into dated events and
// returns them as one ascending timeline. Each event's date is
// resolved in priority order: a date extracted from the point text, a
// date extracted once from the video title, then the video publish
// date plus the point offset. Videos without a publish date are
// skipped since the fallback chain cannot terminate. Extraction
// failures and cancellations count as "no date found" and never
// propagate.
//
// Videos are processed by a bounded worker pool; results are
// reassembled in input order and the final sort is stable, so the
// timeline is deterministic for deterministic extractors.
func (s *Synthesizer) Synthesize(ctx context.Context, videos []model.VideoSummary, entities []model.CrossVideoEntity, collectionID string) *model.ConsolidatedTimeline {
	perVideo := make([][]model.TimelineEvent, len(videos))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				perVideo[index] = s.videoEvents(ctx, videos[index], entities)
			}
		}()
	}
	for index := range videos {
		jobs <- index
	}
	close(jobs)
	wg.Wait()

	events := []model.TimelineEvent{}
	for _, videoEvents := range perVideo {
		events = append(events, videoEvents...)
	}

	// Stable: ties keep source order
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	timeline := &model.ConsolidatedTimeline{
		CollectionID: collectionID,
		Events:       events,
		Summary:      summarize(events, len(videos)),
	}

	s.log.Info("Synthesized timeline",
		slog.String("collection_id", collectionID),
		slog.Int("events", len(events)),
		slog.Int("videos", len(videos)))

	return timeline
}

// videoEvents builds the events of one video. The title is probed for
// a date once and cached as the fallback for all of the video's
// points.
func (s *Synthesizer) videoEvents(ctx context.Context, video model.VideoSummary, entities []model.CrossVideoEntity) []model.TimelineEvent {
	if video.PublishedAt == nil {
		s.log.Warn("Skipping video without publish date for timeline",
			slog.String("video_id", video.ID))
		return nil
	}

	titleDate := s.tryExtract(ctx, video.Title, "title")

	var events []model.TimelineEvent
	for _, point := range video.KeyPoints {
		if strings.TrimSpace(point.Text) == "" {
			continue
		}

		event := model.TimelineEvent{
			ID:            uuid.New(),
			Description:   point.Text,
			VideoID:       video.ID,
			VideoTitle:    video.Title,
			OffsetSeconds: point.OffsetSeconds,
			Entities:      involvedEntities(point.Text, entities),
			Confidence:    point.Confidence,
		}

		switch {
		case s.applyDate(&event, s.tryExtract(ctx, point.Text, "content"), model.DateSourceContent):
		case s.applyDate(&event, titleDate, model.DateSourceTitle):
		default:
			event.Timestamp = video.PublishedAt.Add(time.Duration(point.OffsetSeconds * float64(time.Second)))
			event.DateSource = model.DateSourcePublishFallback
		}

		if event.Confidence == 0 {
			if event.Date != nil {
				event.Confidence = event.Date.Confidence
			} else {
				event.Confidence = 0.5
			}
		}

		events = append(events, event)
	}
	return events
}

// tryExtract calls the date collaborator and swallows every failure.
func (s *Synthesizer) tryExtract(ctx context.Context, text string, sourceKind string) *model.ExtractedDate {
	extracted, err := s.extract(ctx, text, sourceKind)
	if err != nil {
		s.log.Debug("Date extraction failed, continuing without",
			slog.String("source_kind", sourceKind),
			slog.String("error", err.Error()))
		return nil
	}
	return extracted
}

func (s *Synthesizer) applyDate(event *model.TimelineEvent, extracted *model.ExtractedDate, source model.DateSource) bool {
	if extracted == nil {
		return false
	}
	event.Timestamp = extracted.Parsed
	event.Date = extracted
	event.DateSource = source
	return true
}

// involvedEntities returns the canonical names of all resolved
// entities whose canonical name or any alias appears in the text.
func involvedEntities(text string, entities []model.CrossVideoEntity) []string {
	lowered := strings.ToLower(text)
	var involved []string
	for _, entity := range entities {
		if strings.Contains(lowered, strings.ToLower(entity.Name)) {
			involved = append(involved, entity.Name)
			continue
		}
		for _, alias := range entity.Aliases {
			if strings.Contains(lowered, strings.ToLower(alias)) {
				involved = append(involved, entity.Name)
				break
			}
		}
	}
	return involved
}

func summarize(events []model.TimelineEvent, videoCount int) string {
	if len(events) == 0 {
		return fmt.Sprintf("No dated events across %d videos", videoCount)
	}
	first := events[0].Timestamp.Format("2006-01-02")
	last := events[len(events)-1].Timestamp.Format("2006-01-02")
	return fmt.Sprintf("%d events across %d videos spanning %s to %s",
		len(events), videoCount, first, last)
}
