package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypesCompatible(t *testing.T) {
	t.Run("Exact matches are always compatible", func(t *testing.T) {
		assert.True(t, TypesCompatible("PERSON", "PERSON"))
		assert.True(t, TypesCompatible("CUSTOM_TYPE", "CUSTOM_TYPE"), "Expected unknown types to be compatible with themselves")
		assert.True(t, TypesCompatible("person", "PERSON"), "Expected type comparison to ignore case")
	})

	t.Run("Subtypes resolve to their broad category", func(t *testing.T) {
		assert.True(t, TypesCompatible("PERSON", "POLITICAL_FIGURE"))
		assert.True(t, TypesCompatible("COMMISSIONED_OFFICER", "CRIMINAL"), "Expected two PERSON subtypes to be compatible")
		assert.True(t, TypesCompatible("ORGANIZATION", "GOVERNMENT_AGENCY"))
		assert.True(t, TypesCompatible("CITY", "COUNTRY"))
	})

	t.Run("Aliases resolve to their broad category", func(t *testing.T) {
		assert.True(t, TypesCompatible("PER", "PERSON"))
		assert.True(t, TypesCompatible("ORG", "CORPORATION"))
		assert.True(t, TypesCompatible("GPE", "LOCATION"))
		assert.True(t, TypesCompatible("LOC", "CITY"))
	})

	t.Run("Different broad categories are incompatible", func(t *testing.T) {
		assert.False(t, TypesCompatible("PERSON", "ORGANIZATION"))
		assert.False(t, TypesCompatible("POLITICAL_FIGURE", "GOVERNMENT_AGENCY"))
		assert.False(t, TypesCompatible("CITY", "FILM"))
	})

	t.Run("Unknown types are only compatible with themselves", func(t *testing.T) {
		assert.False(t, TypesCompatible("WIDGET", "PERSON"))
		assert.False(t, TypesCompatible("WIDGET", "GADGET"))
	})

	t.Run("Compatibility is reflexive", func(t *testing.T) {
		for _, entityType := range []string{"PERSON", "ORG", "CITY", "MISC", "WIDGET", ""} {
			assert.True(t, TypesCompatible(entityType, entityType), "Expected %q to be compatible with itself", entityType)
		}
	})

	t.Run("Compatibility is symmetric", func(t *testing.T) {
		pairs := [][2]string{
			{"PERSON", "POLITICAL_FIGURE"},
			{"PERSON", "ORGANIZATION"},
			{"PER", "CRIMINAL"},
			{"WIDGET", "PERSON"},
		}
		for _, pair := range pairs {
			assert.Equal(t, TypesCompatible(pair[0], pair[1]), TypesCompatible(pair[1], pair[0]),
				"Expected symmetry for %q and %q", pair[0], pair[1])
		}
	})
}

func TestBroadCategory(t *testing.T) {
	t.Run("Resolves category, alias and subtype", func(t *testing.T) {
		for input, expected := range map[string]string{
			"PERSON":           "PERSON",
			"per":              "PERSON",
			"POLITICAL_FIGURE": "PERSON",
			"gpe":              "LOCATION",
			"MEDIA_OUTLET":     "ORGANIZATION",
		} {
			category, ok := BroadCategory(input)
			assert.True(t, ok, "Expected %q to resolve", input)
			assert.Equal(t, expected, category)
		}
	})

	t.Run("Unknown type does not resolve", func(t *testing.T) {
		_, ok := BroadCategory("WIDGET")
		assert.False(t, ok)
	})
}
