package models

import "testing"

func TestDefaultTaxonomy_TopCategories(t *testing.T) {
	tax := DefaultTaxonomy()
	want := []string{"민사법", "형사법", "행정법", "헌법", "지식재산권법", "기타"}
	got := tax.Categories()
	if len(got) != len(want) {
		t.Fatalf("got %d categories, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("category[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !tax.Has(FallbackCategory) {
		t.Error("fallback category missing from taxonomy")
	}
	if len(tax.Subcategories("형사법")) == 0 {
		t.Error("expected subcategories for 형사법")
	}
	if tax.Subcategories("없는분류") != nil {
		t.Error("unknown category should have no subcategories")
	}
}

func TestTaxonomy_FilterOptions(t *testing.T) {
	opts := DefaultTaxonomy().FilterOptions()
	if opts[0] != AllCategories || len(opts) != 7 {
		t.Fatalf("unexpected filter options %v", opts)
	}
}

func TestTaxonomy_EntriesAreCopies(t *testing.T) {
	tax := DefaultTaxonomy()
	entries := tax.Entries()
	entries[0].Subcategories[0] = "changed"
	if tax.Entries()[0].Subcategories[0] == "changed" {
		t.Fatal("taxonomy mutated through Entries")
	}
}

func TestParseTaxonomy_Errors(t *testing.T) {
	cases := map[string]string{
		"not a list": "category: 민사법",
		"empty name": "- subcategories: [a]",
		"duplicate":  "- category: 헌법\n- category: 헌법",
	}
	for name, doc := range cases {
		if _, err := ParseTaxonomy([]byte(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
