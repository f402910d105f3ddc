package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/siherrmann/fuser"
	"github.com/siherrmann/fuser/model"
)

func mustParseDate(value string) *time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		log.Fatalf("Failed to parse date %v: %v", value, err)
	}
	return &parsed
}

func main() {
	// A small collection of analyzed videos from one channel. The per
	// video extraction (entities, relationships, key points) would
	// normally come from an upstream analysis stage.
	videos := []model.VideoSummary{
		{
			ID:          "ep1",
			Title:       "The Space Race Part 1",
			Channel:     "History Uncovered",
			PublishedAt: mustParseDate("2023-03-06"),
			Topics:      []string{"space race", "cold war"},
			Entities: []model.CanonicalEntity{
				{Name: "NASA", Type: "ORGANIZATION", Confidence: 0.95, MentionCount: 4, Source: "ner"},
				{Name: "John F. Kennedy", Type: "PERSON", Confidence: 0.9, MentionCount: 2, Source: "ner"},
			},
			Relationships: []model.Relationship{
				{Subject: "John F. Kennedy", Predicate: "announced", Object: "Moon program", Confidence: 0.85, Context: "address to congress"},
			},
			KeyPoints: []model.KeyPoint{
				{Text: "Kennedy announced the Moon program on 1961-05-25.", OffsetSeconds: 120, Confidence: 0.9},
				{Text: "NASA absorbed most existing rocketry research groups.", OffsetSeconds: 340, Confidence: 0.8},
			},
		},
		{
			ID:          "ep2",
			Title:       "The Space Race Part 2",
			Channel:     "History Uncovered",
			PublishedAt: mustParseDate("2023-03-13"),
			Topics:      []string{"space race", "apollo program"},
			Entities: []model.CanonicalEntity{
				{Name: "N.A.S.A.", Type: "ORGANIZATION", Confidence: 0.9, MentionCount: 3, Source: "ner"},
				{Name: "Kennedy", Type: "PERSON", Confidence: 0.85, MentionCount: 1, Source: "ner"},
			},
			Relationships: []model.Relationship{
				{Subject: "Kennedy", Predicate: "announced", Object: "Moon program", Confidence: 0.8, Context: "archival footage"},
			},
			KeyPoints: []model.KeyPoint{
				{Text: "Apollo 11 landed on 1969-07-20.", OffsetSeconds: 95, Confidence: 0.95},
				{Text: "The program cost kept climbing through the decade.", OffsetSeconds: 410, Confidence: 0.7},
			},
		},
		{
			ID:          "ep3",
			Title:       "The Space Race Part 3",
			Channel:     "History Uncovered",
			PublishedAt: mustParseDate("2023-03-20"),
			Topics:      []string{"space race", "space shuttle"},
			Entities: []model.CanonicalEntity{
				{Name: "NASA", Type: "ORGANIZATION", Confidence: 0.95, MentionCount: 5, Source: "ner"},
			},
			KeyPoints: []model.KeyPoint{
				{Text: "The shuttle program reused orbiters across missions.", OffsetSeconds: 60, Confidence: 0.85},
			},
		},
	}

	f := fuser.NewFuser(model.DefaultResolutionConfig())

	result := f.ProcessCollection(context.Background(), videos, "space-race-series")

	fmt.Printf("Collection %v (%d videos)\n\n", result.CollectionID, result.VideoCount)

	fmt.Printf("Series: detected=%v confidence=%.2f methods=%v\n", result.Series.IsSeries, result.Series.Confidence, result.Series.Methods)
	for i, group := range result.Series.Groups {
		fmt.Printf("  group %d: %v\n", i+1, group)
	}

	fmt.Printf("\nEntities (%d):\n", len(result.Entities))
	for _, entity := range result.Entities {
		fmt.Printf("  %v (%v) aliases=%v videos=%v mentions=%d\n",
			entity.Name, entity.Type, entity.Aliases, entity.VideoAppearances, entity.MentionCount)
	}

	fmt.Printf("\nRelationships (%d):\n", len(result.Relationships))
	for _, relationship := range result.Relationships {
		fmt.Printf("  %v %v %v (confidence %.2f, %d videos)\n",
			relationship.Subject, relationship.Predicate, relationship.Object,
			relationship.Confidence, len(relationship.VideoSources))
	}

	fmt.Printf("\nTimeline: %v\n", result.Timeline.Summary)
	for _, event := range result.Timeline.Events {
		fmt.Printf("  %v [%v] %v\n", event.Timestamp.Format("2006-01-02"), event.DateSource, event.Description)
	}

	fmt.Printf("\nMetrics: resolution=%.2f coherence=%.2f completeness=%.2f\n",
		result.Metrics.EntityResolutionQuality,
		result.Metrics.NarrativeCoherence,
		result.Metrics.InformationCompleteness)
}
