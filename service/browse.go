package service

import (
	"strings"

	"jurisnote/models"
)

// FilterRows keeps rows whose categories contain category (unless it is empty
// or "전체") and, when query is set, whose search columns contain query.
// Matching is plain case-sensitive substring containment.
func FilterRows(layout models.Layout, rows []models.Row, category, query string) []models.Row {
	category = strings.TrimSpace(category)
	query = strings.TrimSpace(query)

	out := make([]models.Row, 0, len(rows))
	for _, row := range rows {
		if category != "" && category != models.AllCategories &&
			!strings.Contains(row.Get(models.ColumnCategories), category) {
			continue
		}
		if query != "" && !matchesAny(row, layout.SearchColumns, query) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func matchesAny(row models.Row, columns []string, query string) bool {
	for _, c := range columns {
		if strings.Contains(row.Get(c), query) {
			return true
		}
	}
	return false
}

// SplitTags splits a categories value on "|" into trimmed, non-empty tags.
func SplitTags(categories string) []string {
	var tags []string
	for _, part := range strings.Split(categories, "|") {
		if p := strings.TrimSpace(part); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// CardSection is one labelled text block of a card.
type CardSection struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Card is the display form of one saved note. Memo and URL are empty when the
// note has none, and views omit them.
type Card struct {
	ID         string        `json:"id"`
	Date       string        `json:"date"`
	Title      string        `json:"title"`
	Categories string        `json:"categories"`
	Tags       []string      `json:"tags"`
	Sections   []CardSection `json:"sections"`
	Memo       string        `json:"memo,omitempty"`
	URL        string        `json:"url,omitempty"`
}

var sectionLabels = map[string]string{
	models.ColumnSummary:      "요약",
	models.ColumnSignificance: "의의",
	models.ColumnFacts:        "사실관계",
	models.ColumnIssues:       "쟁점",
	models.ColumnLaws:         "관련법률",
	models.ColumnHoldings:     "판결요지",
	models.ColumnInsight:      "실무적 의의",
}

// BuildCard renders a row as a card. Every persisted body column becomes a
// section, in layout order.
func BuildCard(layout models.Layout, row models.Row) Card {
	c := Card{
		ID:         row.Get(models.ColumnID),
		Date:       row.Get(models.ColumnDate),
		Title:      row.Get(models.ColumnTitle),
		Categories: row.Get(models.ColumnCategories),
		Tags:       SplitTags(row.Get(models.ColumnCategories)),
		Memo:       strings.TrimSpace(row.Get(models.ColumnMemo)),
		URL:        strings.TrimSpace(row.Get(models.ColumnURL)),
	}
	for _, col := range layout.Columns {
		label, ok := sectionLabels[col]
		if !ok {
			continue
		}
		c.Sections = append(c.Sections, CardSection{Label: label, Text: row.Get(col)})
	}
	return c
}
