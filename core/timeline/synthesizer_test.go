package timeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/siherrmann/fuser/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Point without a date falls back to publish date plus offset", func(t *testing.T) {
		video := model.VideoSummary{
			ID:          "v1",
			Title:       "Weekly recap",
			PublishedAt: &base,
			KeyPoints: []model.KeyPoint{
				{Text: "The merger talks between the companies continued.", OffsetSeconds: 45},
			},
		}

		synthesizer := NewSynthesizer(nil, 1, nil)
		timeline := synthesizer.Synthesize(ctx, []model.VideoSummary{video}, nil, "c1")

		require.Len(t, timeline.Events, 1)
		event := timeline.Events[0]
		assert.Equal(t, base.Add(45*time.Second), event.Timestamp)
		assert.Equal(t, model.DateSourcePublishFallback, event.DateSource)
		assert.Nil(t, event.Date)
		assert.Equal(t, float64(45), event.OffsetSeconds)
	})

	t.Run("Date in the point text wins over all fallbacks", func(t *testing.T) {
		video := model.VideoSummary{
			ID:          "v1",
			Title:       "Space history from 2020-05-30",
			PublishedAt: &base,
			KeyPoints: []model.KeyPoint{
				{Text: "Apollo 11 landed on 1969-07-20.", OffsetSeconds: 10},
			},
		}

		synthesizer := NewSynthesizer(nil, 1, nil)
		timeline := synthesizer.Synthesize(ctx, []model.VideoSummary{video}, nil, "c1")

		require.Len(t, timeline.Events, 1)
		event := timeline.Events[0]
		assert.Equal(t, model.DateSourceContent, event.DateSource)
		assert.Equal(t, 1969, event.Timestamp.Year())
		require.NotNil(t, event.Date)
		assert.Equal(t, "1969-07-20", event.Date.OriginalText)
	})

	t.Run("Title date is cached as fallback for undated points", func(t *testing.T) {
		video := model.VideoSummary{
			ID:          "v1",
			Title:       "The fall of the wall, 1989-11-09",
			PublishedAt: &base,
			KeyPoints: []model.KeyPoint{
				{Text: "Crowds gathered at the checkpoints.", OffsetSeconds: 30},
			},
		}

		synthesizer := NewSynthesizer(nil, 1, nil)
		timeline := synthesizer.Synthesize(ctx, []model.VideoSummary{video}, nil, "c1")

		require.Len(t, timeline.Events, 1)
		event := timeline.Events[0]
		assert.Equal(t, model.DateSourceTitle, event.DateSource)
		assert.Equal(t, 1989, event.Timestamp.Year())
	})

	t.Run("Events are sorted ascending with stable ties", func(t *testing.T) {
		video1 := model.VideoSummary{
			ID:          "v1",
			Title:       "Recap",
			PublishedAt: &base,
			KeyPoints: []model.KeyPoint{
				{Text: "The second summit took place on 2021-06-05.", OffsetSeconds: 10},
				{Text: "The first summit took place on 2019-02-27.", OffsetSeconds: 20},
				{Text: "An undated remark about the summits.", OffsetSeconds: 30},
			},
		}

		synthesizer := NewSynthesizer(nil, 2, nil)
		timeline := synthesizer.Synthesize(ctx, []model.VideoSummary{video1}, nil, "c1")

		require.Len(t, timeline.Events, 3)
		for i := 1; i < len(timeline.Events); i++ {
			assert.False(t, timeline.Events[i].Timestamp.Before(timeline.Events[i-1].Timestamp),
				"Expected non-decreasing timestamps")
		}
		assert.Equal(t, 2019, timeline.Events[0].Timestamp.Year())
		assert.Equal(t, 2021, timeline.Events[1].Timestamp.Year())
		assert.Equal(t, model.DateSourcePublishFallback, timeline.Events[2].DateSource)
	})

	t.Run("Videos without publish date are skipped", func(t *testing.T) {
		dated := model.VideoSummary{
			ID:          "v1",
			Title:       "Dated",
			PublishedAt: &base,
			KeyPoints:   []model.KeyPoint{{Text: "Something happened.", OffsetSeconds: 5}},
		}
		undated := model.VideoSummary{
			ID:        "v2",
			Title:     "Undated",
			KeyPoints: []model.KeyPoint{{Text: "This point is lost.", OffsetSeconds: 5}},
		}

		synthesizer := NewSynthesizer(nil, 2, nil)
		timeline := synthesizer.Synthesize(ctx, []model.VideoSummary{dated, undated}, nil, "c1")

		require.Len(t, timeline.Events, 1)
		assert.Equal(t, "v1", timeline.Events[0].VideoID)
	})

	t.Run("Resolved entities are attached by name or alias substring", func(t *testing.T) {
		entities := []model.CrossVideoEntity{
			{CanonicalEntity: model.CanonicalEntity{Name: "Joe Biden", Aliases: []string{"Biden"}}},
			{CanonicalEntity: model.CanonicalEntity{Name: "Paris"}},
			{CanonicalEntity: model.CanonicalEntity{Name: "NASA"}},
		}
		video := model.VideoSummary{
			ID:          "v1",
			Title:       "Visit",
			PublishedAt: &base,
			KeyPoints: []model.KeyPoint{
				{Text: "President biden arrived in paris for the summit.", OffsetSeconds: 12},
			},
		}

		synthesizer := NewSynthesizer(nil, 1, nil)
		timeline := synthesizer.Synthesize(ctx, []model.VideoSummary{video}, entities, "c1")

		require.Len(t, timeline.Events, 1)
		assert.ElementsMatch(t, []string{"Joe Biden", "Paris"}, timeline.Events[0].Entities)
	})

	t.Run("Failing extractor degrades to publish fallback", func(t *testing.T) {
		failing := func(ctx context.Context, text string, sourceKind string) (*model.ExtractedDate, error) {
			return nil, errors.New("collaborator timeout")
		}
		video := model.VideoSummary{
			ID:          "v1",
			Title:       "Recap from 2020-05-30",
			PublishedAt: &base,
			KeyPoints:   []model.KeyPoint{{Text: "Dated 1969-07-20 but the extractor is down.", OffsetSeconds: 60}},
		}

		synthesizer := NewSynthesizer(failing, 1, nil)
		timeline := synthesizer.Synthesize(ctx, []model.VideoSummary{video}, nil, "c1")

		require.Len(t, timeline.Events, 1)
		assert.Equal(t, model.DateSourcePublishFallback, timeline.Events[0].DateSource)
		assert.Equal(t, base.Add(time.Minute), timeline.Events[0].Timestamp)
	})

	t.Run("Empty collection yields an empty timeline", func(t *testing.T) {
		synthesizer := NewSynthesizer(nil, 4, nil)
		timeline := synthesizer.Synthesize(ctx, nil, nil, "x")

		require.NotNil(t, timeline)
		assert.Equal(t, "x", timeline.CollectionID)
		assert.Empty(t, timeline.Events)
	})

	t.Run("Event ids are unique", func(t *testing.T) {
		video := model.VideoSummary{
			ID:          "v1",
			Title:       "Recap",
			PublishedAt: &base,
			KeyPoints: []model.KeyPoint{
				{Text: "Point one happened.", OffsetSeconds: 1},
				{Text: "Point two happened.", OffsetSeconds: 2},
				{Text: "Point three happened.", OffsetSeconds: 3},
			},
		}

		synthesizer := NewSynthesizer(nil, 3, nil)
		timeline := synthesizer.Synthesize(ctx, []model.VideoSummary{video}, nil, "c1")

		seen := map[string]bool{}
		for _, event := range timeline.Events {
			assert.False(t, seen[event.ID.String()], "Expected unique event ids")
			seen[event.ID.String()] = true
		}
	})

	t.Run("Blank points are dropped", func(t *testing.T) {
		video := model.VideoSummary{
			ID:          "v1",
			Title:       "Recap",
			PublishedAt: &base,
			KeyPoints:   []model.KeyPoint{{Text: "   ", OffsetSeconds: 1}},
		}

		synthesizer := NewSynthesizer(nil, 1, nil)
		timeline := synthesizer.Synthesize(ctx, []model.VideoSummary{video}, nil, "c1")
		assert.Empty(t, timeline.Events)
	})
}
