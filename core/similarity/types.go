package similarity

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed hierarchy.yaml
var hierarchyYAML []byte

type hierarchyCategory struct {
	Aliases  []string `yaml:"aliases"`
	Subtypes []string `yaml:"subtypes"`
}

type hierarchyFile struct {
	Categories map[string]hierarchyCategory `yaml:"categories"`
}

// broadCategories maps every known type, alias and subtype (uppercased)
// to its broad category. Built once from the embedded hierarchy.
var broadCategories = mustLoadHierarchy()

func mustLoadHierarchy() map[string]string {
	var file hierarchyFile
	if err := yaml.Unmarshal(hierarchyYAML, &file); err != nil {
		panic("similarity: invalid embedded type hierarchy: " + err.Error())
	}

	index := make(map[string]string)
	for category, entry := range file.Categories {
		category = strings.ToUpper(category)
		index[category] = category
		for _, alias := range entry.Aliases {
			index[strings.ToUpper(alias)] = category
		}
		for _, subtype := range entry.Subtypes {
			index[strings.ToUpper(subtype)] = category
		}
	}
	return index
}

// BroadCategory resolves a type tag to its broad category. The second
// return value is false for types outside the hierarchy.
func BroadCategory(entityType string) (string, bool) {
	category, ok := broadCategories[strings.ToUpper(strings.TrimSpace(entityType))]
	return category, ok
}

// TypesCompatible reports whether two entity type tags may describe the
// same real-world entity. Exact matches are always compatible;
// otherwise both types must resolve to the same broad category.
func TypesCompatible(t1, t2 string) bool {
	a := strings.ToUpper(strings.TrimSpace(t1))
	b := strings.ToUpper(strings.TrimSpace(t2))
	if a == b {
		return true
	}

	categoryA, okA := BroadCategory(a)
	categoryB, okB := BroadCategory(b)
	return okA && okB && categoryA == categoryB
}
