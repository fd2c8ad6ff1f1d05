package service

import (
	"time"

	"jurisnote/models"
)

// DateLayout is the ISO date format used for extracted and persisted dates.
const DateLayout = "2006-01-02"

// ParseCaseDate parses an ISO date. Anything else yields now and fellBack=true.
func ParseCaseDate(s string, now time.Time) (date time.Time, fellBack bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return now, true
	}
	return t, false
}

// FormField is one editable input of the review form.
type FormField struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Value     string `json:"value"`
	Multiline bool   `json:"multiline"`
}

// ReviewForm is the editable working copy of a pending extraction.
type ReviewForm struct {
	Revision      models.Revision `json:"revision"`
	CaseNo        string          `json:"case_no"`
	Title         string          `json:"title"`
	Categories    string          `json:"categories"`
	Date          time.Time       `json:"-"`
	DateFallback  bool            `json:"date_fallback"`
	Facts         string          `json:"facts"`
	Issues        string          `json:"issues"`
	Laws          string          `json:"laws"`
	Holdings      string          `json:"holdings"`
	Summary       string          `json:"summary"`
	Insight       string          `json:"insight"`
	Memo          string          `json:"memo"`
	URL           string          `json:"url"`
	EditableID    bool            `json:"editable_id"`
	EditableTitle bool            `json:"editable_title"`

	layout models.Layout
}

// NewReviewForm pre-fills a form from an extraction result. Memo and URL start empty.
func NewReviewForm(layout models.Layout, res models.ExtractionResult, now time.Time) ReviewForm {
	date, fellBack := ParseCaseDate(res.Date, now)
	return ReviewForm{
		Revision:      layout.Revision,
		CaseNo:        res.CaseNo,
		Title:         res.Title,
		Categories:    res.Categories,
		Date:          date,
		DateFallback:  fellBack,
		Facts:         res.Facts,
		Issues:        res.Issues,
		Laws:          res.Laws,
		Holdings:      res.Holdings,
		Summary:       res.Summary,
		Insight:       res.Insight,
		EditableID:    layout.CaseNumberID,
		EditableTitle: layout.CaseNumberID,
		layout:        layout,
	}
}

// DateString returns the form date as YYYY-MM-DD.
func (f ReviewForm) DateString() string {
	return f.Date.Format(DateLayout)
}

// Fields lists the extracted inputs shown for the form's revision, in display order.
func (f ReviewForm) Fields() []FormField {
	var out []FormField
	for _, key := range f.layout.ExtractionKeys {
		switch key {
		case models.KeyCategories:
			out = append(out, FormField{Key: key, Label: "분류 (1단계>2단계>3단계 | 다중분류는 '|' 구분)", Value: f.Categories})
		case models.KeyFacts:
			out = append(out, FormField{Key: key, Label: "사실관계 (사건의 경위)", Value: f.Facts, Multiline: true})
		case models.KeyIssues:
			out = append(out, FormField{Key: key, Label: "법적 쟁점 (쟁점이 여러 개인 경우 번호별 정리)", Value: f.Issues, Multiline: true})
		case models.KeyLaws:
			out = append(out, FormField{Key: key, Label: "관련법률 (직접 관련된 조문)", Value: f.Laws, Multiline: true})
		case models.KeyHoldings:
			out = append(out, FormField{Key: key, Label: "판결요지 (법원의 판단 핵심)", Value: f.Holdings, Multiline: true})
		case models.KeySummary:
			out = append(out, FormField{Key: key, Label: "판례 요지", Value: f.Summary, Multiline: true})
		case models.KeyInsight:
			out = append(out, FormField{Key: key, Label: "실무적 의의 (유의사항 및 해설)", Value: f.Insight, Multiline: true})
		}
	}
	return out
}

// ReviewEdits carries the fields a user changed on the review form. A nil
// field was not submitted and keeps the extracted value.
type ReviewEdits struct {
	CaseNo     *string `json:"case_no"`
	Title      *string `json:"title"`
	Date       *string `json:"date"`
	Categories *string `json:"categories"`
	Facts      *string `json:"facts"`
	Issues     *string `json:"issues"`
	Laws       *string `json:"laws"`
	Holdings   *string `json:"holdings"`
	Summary    *string `json:"summary"`
	Insight    *string `json:"insight"`
	Memo       *string `json:"memo"`
	URL        *string `json:"url"`
}

// EditsFromDraft treats every field of d as submitted.
func EditsFromDraft(d models.Draft) ReviewEdits {
	return ReviewEdits{
		CaseNo:     &d.CaseNo,
		Title:      &d.Title,
		Date:       &d.Date,
		Categories: &d.Categories,
		Facts:      &d.Facts,
		Issues:     &d.Issues,
		Laws:       &d.Laws,
		Holdings:   &d.Holdings,
		Summary:    &d.Summary,
		Insight:    &d.Insight,
		Memo:       &d.Memo,
		URL:        &d.URL,
	}
}

func overlay(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// With returns the form with the submitted edits applied. Identifier and
// title edits are only honored where the revision allows them; an
// unparseable date keeps the form's date.
func (f ReviewForm) With(e ReviewEdits) ReviewForm {
	if f.EditableID {
		overlay(&f.CaseNo, e.CaseNo)
	}
	if f.EditableTitle {
		overlay(&f.Title, e.Title)
	}
	overlay(&f.Categories, e.Categories)
	overlay(&f.Facts, e.Facts)
	overlay(&f.Issues, e.Issues)
	overlay(&f.Laws, e.Laws)
	overlay(&f.Holdings, e.Holdings)
	overlay(&f.Summary, e.Summary)
	overlay(&f.Insight, e.Insight)
	overlay(&f.Memo, e.Memo)
	overlay(&f.URL, e.URL)
	if e.Date != nil {
		if t, err := time.Parse(DateLayout, *e.Date); err == nil {
			f.Date = t
			f.DateFallback = false
		}
	}
	return f
}

// Apply merges user edits into the form and returns the draft to persist.
func (f ReviewForm) Apply(e ReviewEdits) models.Draft {
	return f.With(e).Draft()
}

// Draft returns the form's current values unchanged.
func (f ReviewForm) Draft() models.Draft {
	return models.Draft{
		CaseNo:     f.CaseNo,
		Title:      f.Title,
		Date:       f.DateString(),
		Categories: f.Categories,
		Facts:      f.Facts,
		Issues:     f.Issues,
		Laws:       f.Laws,
		Holdings:   f.Holdings,
		Summary:    f.Summary,
		Insight:    f.Insight,
		Memo:       f.Memo,
		URL:        f.URL,
	}
}
