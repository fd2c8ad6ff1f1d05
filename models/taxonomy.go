package models

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// AllCategories is the browse selector value that disables the category filter.
const AllCategories = "전체"

// FallbackCategory is the classification used when nothing in the taxonomy fits.
const FallbackCategory = "기타"

//go:embed taxonomy.yaml
var taxonomyYAML []byte

// TaxonomyEntry is one top-level legal category with its advisory subcategories.
type TaxonomyEntry struct {
	Category      string   `yaml:"category" json:"category"`
	Subcategories []string `yaml:"subcategories" json:"subcategories"`
}

// Taxonomy is the fixed legal classification scheme. It is read-only once loaded.
type Taxonomy struct {
	entries []TaxonomyEntry
}

var defaultTaxonomy = mustParseTaxonomy(taxonomyYAML)

// DefaultTaxonomy returns the process-wide taxonomy.
func DefaultTaxonomy() Taxonomy {
	return defaultTaxonomy
}

// ParseTaxonomy decodes a YAML list of categories.
func ParseTaxonomy(data []byte) (Taxonomy, error) {
	var entries []TaxonomyEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return Taxonomy{}, fmt.Errorf("decode taxonomy: %w", err)
	}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Category == "" {
			return Taxonomy{}, fmt.Errorf("taxonomy entry without category")
		}
		if seen[e.Category] {
			return Taxonomy{}, fmt.Errorf("duplicate taxonomy category %q", e.Category)
		}
		seen[e.Category] = true
	}
	return Taxonomy{entries: entries}, nil
}

func mustParseTaxonomy(data []byte) Taxonomy {
	t, err := ParseTaxonomy(data)
	if err != nil {
		panic(err)
	}
	return t
}

// Entries returns a copy of the taxonomy in declaration order.
func (t Taxonomy) Entries() []TaxonomyEntry {
	out := make([]TaxonomyEntry, len(t.entries))
	for i, e := range t.entries {
		out[i] = TaxonomyEntry{
			Category:      e.Category,
			Subcategories: append([]string(nil), e.Subcategories...),
		}
	}
	return out
}

// Categories returns the top-level category names in order.
func (t Taxonomy) Categories() []string {
	names := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		names = append(names, e.Category)
	}
	return names
}

// Subcategories returns the labels for a top-level category, or nil if unknown.
func (t Taxonomy) Subcategories(category string) []string {
	for _, e := range t.entries {
		if e.Category == category {
			return append([]string(nil), e.Subcategories...)
		}
	}
	return nil
}

// Has reports whether category is one of the top-level categories.
func (t Taxonomy) Has(category string) bool {
	for _, e := range t.entries {
		if e.Category == category {
			return true
		}
	}
	return false
}

// FilterOptions returns the browse selector values: AllCategories followed by every category.
func (t Taxonomy) FilterOptions() []string {
	return append([]string{AllCategories}, t.Categories()...)
}
