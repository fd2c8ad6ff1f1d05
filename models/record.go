package models

import (
	"fmt"
	"slices"
)

// Revision identifies one record shape of the notebook.
type Revision string

const (
	// RevisionSummary stores a single AI summary plus its significance; ID is date_title.
	RevisionSummary Revision = "summary"
	// RevisionDetailed stores facts, issues, laws and holdings separately; ID is date_title.
	RevisionDetailed Revision = "detailed"
	// RevisionCaseNumber uses the detailed columns with the case number as ID.
	RevisionCaseNumber Revision = "case-number"
)

// Persisted column names. The read path addresses columns by these names.
const (
	ColumnID           = "ID"
	ColumnDate         = "선고일자"
	ColumnTitle        = "사건명"
	ColumnCategories   = "분류"
	ColumnSummary      = "AI요약"
	ColumnSignificance = "의의"
	ColumnFacts        = "사실관계"
	ColumnIssues       = "쟁점"
	ColumnLaws         = "관련법률"
	ColumnHoldings     = "판결요지"
	ColumnInsight      = "실무적의의"
	ColumnMemo         = "내메모"
	ColumnURL          = "URL"
)

// Extraction keys requested from the generation service.
const (
	KeyCategories = "categories"
	KeyTitle      = "title"
	KeyDate       = "date"
	KeyCaseNo     = "case_no"
	KeyFacts      = "facts"
	KeyIssues     = "issues"
	KeyLaws       = "laws"
	KeyHoldings   = "holdings"
	KeySummary    = "summary"
	KeyInsight    = "insight"
)

// Layout describes everything that varies between revisions.
type Layout struct {
	Revision        Revision
	Columns         []string
	SearchColumns   []string
	ExtractionKeys  []string
	IncludeTaxonomy bool
	CaseNumberID    bool
}

var detailedColumns = []string{
	ColumnID, ColumnDate, ColumnTitle, ColumnCategories,
	ColumnFacts, ColumnIssues, ColumnLaws, ColumnHoldings, ColumnInsight,
	ColumnMemo, ColumnURL,
}

var layouts = map[Revision]Layout{
	RevisionSummary: {
		Revision: RevisionSummary,
		Columns: []string{
			ColumnID, ColumnDate, ColumnTitle, ColumnCategories,
			ColumnSummary, ColumnSignificance, ColumnMemo, ColumnURL,
		},
		SearchColumns:   []string{ColumnTitle, ColumnSummary},
		ExtractionKeys:  []string{KeyCategories, KeyTitle, KeyDate, KeySummary, KeyInsight},
		IncludeTaxonomy: true,
	},
	RevisionDetailed: {
		Revision:       RevisionDetailed,
		Columns:        detailedColumns,
		SearchColumns:  []string{ColumnTitle, ColumnIssues, ColumnHoldings},
		ExtractionKeys: []string{KeyCategories, KeyTitle, KeyDate, KeyFacts, KeyIssues, KeyLaws, KeyHoldings, KeyInsight},
	},
	RevisionCaseNumber: {
		Revision:        RevisionCaseNumber,
		Columns:         detailedColumns,
		SearchColumns:   []string{ColumnTitle, ColumnIssues, ColumnHoldings},
		ExtractionKeys:  []string{KeyCategories, KeyTitle, KeyDate, KeyCaseNo, KeyFacts, KeyIssues, KeyLaws, KeyHoldings, KeyInsight},
		IncludeTaxonomy: true,
		CaseNumberID:    true,
	},
}

// Revisions lists the supported revisions.
func Revisions() []Revision {
	return []Revision{RevisionSummary, RevisionDetailed, RevisionCaseNumber}
}

// ParseRevision validates a revision name.
func ParseRevision(s string) (Revision, error) {
	r := Revision(s)
	if _, ok := layouts[r]; !ok {
		return "", fmt.Errorf("unknown revision %q", s)
	}
	return r, nil
}

// LayoutFor returns the layout of a revision.
func LayoutFor(r Revision) (Layout, error) {
	l, ok := layouts[r]
	if !ok {
		return Layout{}, fmt.Errorf("unknown revision %q", r)
	}
	l.Columns = slices.Clone(l.Columns)
	l.SearchColumns = slices.Clone(l.SearchColumns)
	l.ExtractionKeys = slices.Clone(l.ExtractionKeys)
	return l, nil
}

// MustLayout is LayoutFor for revisions known at compile time.
func MustLayout(r Revision) Layout {
	l, err := LayoutFor(r)
	if err != nil {
		panic(err)
	}
	return l
}

// HasColumn reports whether the layout persists the named column.
func (l Layout) HasColumn(name string) bool {
	return slices.Contains(l.Columns, name)
}

// CheckHeader compares a stored header row against the layout's column order.
func (l Layout) CheckHeader(header []string) error {
	if !slices.Equal(header, l.Columns) {
		return fmt.Errorf("header %v does not match %s layout %v", header, l.Revision, l.Columns)
	}
	return nil
}

// Draft is the reviewed field set submitted from the edit form.
type Draft struct {
	CaseNo     string `json:"case_no"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	Categories string `json:"categories"`
	Facts      string `json:"facts"`
	Issues     string `json:"issues"`
	Laws       string `json:"laws"`
	Holdings   string `json:"holdings"`
	Summary    string `json:"summary"`
	Insight    string `json:"insight"`
	Memo       string `json:"memo"`
	URL        string `json:"url"`
}

// Record is one persisted notebook row.
type Record interface {
	Revision() Revision
	Key() string
	Values() []string
}

// SummaryRecord is the 8-column row of RevisionSummary.
type SummaryRecord struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Title        string `json:"title"`
	Categories   string `json:"categories"`
	Summary      string `json:"summary"`
	Significance string `json:"significance"`
	Memo         string `json:"memo"`
	URL          string `json:"url"`
}

func (r SummaryRecord) Revision() Revision { return RevisionSummary }
func (r SummaryRecord) Key() string        { return r.ID }

// Values returns the cells in column order.
func (r SummaryRecord) Values() []string {
	return []string{r.ID, r.Date, r.Title, r.Categories, r.Summary, r.Significance, r.Memo, r.URL}
}

// DetailedRecord is the 11-column row of RevisionDetailed.
type DetailedRecord struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	Title      string `json:"title"`
	Categories string `json:"categories"`
	Facts      string `json:"facts"`
	Issues     string `json:"issues"`
	Laws       string `json:"laws"`
	Holdings   string `json:"holdings"`
	Insight    string `json:"insight"`
	Memo       string `json:"memo"`
	URL        string `json:"url"`
}

func (r DetailedRecord) Revision() Revision { return RevisionDetailed }
func (r DetailedRecord) Key() string        { return r.ID }

// Values returns the cells in column order.
func (r DetailedRecord) Values() []string {
	return []string{r.ID, r.Date, r.Title, r.Categories, r.Facts, r.Issues, r.Laws, r.Holdings, r.Insight, r.Memo, r.URL}
}

// CaseNumberRecord is the 11-column row of RevisionCaseNumber.
type CaseNumberRecord struct {
	CaseNo     string `json:"case_no"`
	Date       string `json:"date"`
	Title      string `json:"title"`
	Categories string `json:"categories"`
	Facts      string `json:"facts"`
	Issues     string `json:"issues"`
	Laws       string `json:"laws"`
	Holdings   string `json:"holdings"`
	Insight    string `json:"insight"`
	Memo       string `json:"memo"`
	URL        string `json:"url"`
}

func (r CaseNumberRecord) Revision() Revision { return RevisionCaseNumber }
func (r CaseNumberRecord) Key() string        { return r.CaseNo }

// Values returns the cells in column order.
func (r CaseNumberRecord) Values() []string {
	return []string{r.CaseNo, r.Date, r.Title, r.Categories, r.Facts, r.Issues, r.Laws, r.Holdings, r.Insight, r.Memo, r.URL}
}

// DateTitleID builds the identifier used by the summary and detailed revisions.
func DateTitleID(date, title string) string {
	return date + "_" + title
}

// Assemble maps a reviewed draft onto the record variant of the given revision.
func Assemble(r Revision, d Draft) (Record, error) {
	switch r {
	case RevisionSummary:
		return SummaryRecord{
			ID:           DateTitleID(d.Date, d.Title),
			Date:         d.Date,
			Title:        d.Title,
			Categories:   d.Categories,
			Summary:      d.Summary,
			Significance: d.Insight,
			Memo:         d.Memo,
			URL:          d.URL,
		}, nil
	case RevisionDetailed:
		return DetailedRecord{
			ID:         DateTitleID(d.Date, d.Title),
			Date:       d.Date,
			Title:      d.Title,
			Categories: d.Categories,
			Facts:      d.Facts,
			Issues:     d.Issues,
			Laws:       d.Laws,
			Holdings:   d.Holdings,
			Insight:    d.Insight,
			Memo:       d.Memo,
			URL:        d.URL,
		}, nil
	case RevisionCaseNumber:
		return CaseNumberRecord{
			CaseNo:     d.CaseNo,
			Date:       d.Date,
			Title:      d.Title,
			Categories: d.Categories,
			Facts:      d.Facts,
			Issues:     d.Issues,
			Laws:       d.Laws,
			Holdings:   d.Holdings,
			Insight:    d.Insight,
			Memo:       d.Memo,
			URL:        d.URL,
		}, nil
	default:
		return nil, fmt.Errorf("unknown revision %q", r)
	}
}

// DecodeRecord reads a stored row back into the record variant of the given revision.
func DecodeRecord(r Revision, row Row) (Record, error) {
	switch r {
	case RevisionSummary:
		return SummaryRecord{
			ID:           row.Get(ColumnID),
			Date:         row.Get(ColumnDate),
			Title:        row.Get(ColumnTitle),
			Categories:   row.Get(ColumnCategories),
			Summary:      row.Get(ColumnSummary),
			Significance: row.Get(ColumnSignificance),
			Memo:         row.Get(ColumnMemo),
			URL:          row.Get(ColumnURL),
		}, nil
	case RevisionDetailed:
		return DetailedRecord{
			ID:         row.Get(ColumnID),
			Date:       row.Get(ColumnDate),
			Title:      row.Get(ColumnTitle),
			Categories: row.Get(ColumnCategories),
			Facts:      row.Get(ColumnFacts),
			Issues:     row.Get(ColumnIssues),
			Laws:       row.Get(ColumnLaws),
			Holdings:   row.Get(ColumnHoldings),
			Insight:    row.Get(ColumnInsight),
			Memo:       row.Get(ColumnMemo),
			URL:        row.Get(ColumnURL),
		}, nil
	case RevisionCaseNumber:
		return CaseNumberRecord{
			CaseNo:     row.Get(ColumnID),
			Date:       row.Get(ColumnDate),
			Title:      row.Get(ColumnTitle),
			Categories: row.Get(ColumnCategories),
			Facts:      row.Get(ColumnFacts),
			Issues:     row.Get(ColumnIssues),
			Laws:       row.Get(ColumnLaws),
			Holdings:   row.Get(ColumnHoldings),
			Insight:    row.Get(ColumnInsight),
			Memo:       row.Get(ColumnMemo),
			URL:        row.Get(ColumnURL),
		}, nil
	default:
		return nil, fmt.Errorf("unknown revision %q", r)
	}
}
