package models

// ExtractionResult is the structured field set produced by the generation
// service for one case. Every value is plain text; multi-item fields such as
// issues carry their own "1. ... 2. ..." numbering.
type ExtractionResult struct {
	Revision   Revision `json:"revision"`
	Categories string   `json:"categories"`
	Title      string   `json:"title"`
	Date       string   `json:"date"`
	CaseNo     string   `json:"case_no,omitempty"`
	Facts      string   `json:"facts,omitempty"`
	Issues     string   `json:"issues,omitempty"`
	Laws       string   `json:"laws,omitempty"`
	Holdings   string   `json:"holdings,omitempty"`
	Summary    string   `json:"summary,omitempty"`
	Insight    string   `json:"insight,omitempty"`
}

// Field returns the value stored under an extraction key.
func (r ExtractionResult) Field(key string) string {
	switch key {
	case KeyCategories:
		return r.Categories
	case KeyTitle:
		return r.Title
	case KeyDate:
		return r.Date
	case KeyCaseNo:
		return r.CaseNo
	case KeyFacts:
		return r.Facts
	case KeyIssues:
		return r.Issues
	case KeyLaws:
		return r.Laws
	case KeyHoldings:
		return r.Holdings
	case KeySummary:
		return r.Summary
	case KeyInsight:
		return r.Insight
	default:
		return ""
	}
}

// SetField stores value under an extraction key. Unknown keys are ignored.
func (r *ExtractionResult) SetField(key, value string) {
	switch key {
	case KeyCategories:
		r.Categories = value
	case KeyTitle:
		r.Title = value
	case KeyDate:
		r.Date = value
	case KeyCaseNo:
		r.CaseNo = value
	case KeyFacts:
		r.Facts = value
	case KeyIssues:
		r.Issues = value
	case KeyLaws:
		r.Laws = value
	case KeyHoldings:
		r.Holdings = value
	case KeySummary:
		r.Summary = value
	case KeyInsight:
		r.Insight = value
	}
}

// RequiredKeys are read unguarded; their absence fails the interaction.
var RequiredKeys = []string{KeyTitle, KeyDate, KeyCategories}
