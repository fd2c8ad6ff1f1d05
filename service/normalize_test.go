package service

import (
	"errors"
	"reflect"
	"testing"

	"jurisnote/models"
)

func TestNormalize_RecoversObject(t *testing.T) {
	want := map[string]any{"title": "사기", "date": "2024-01-10", "categories": "형사법>형법각칙>사기"}
	body := `{"title":"사기","date":"2024-01-10","categories":"형사법>형법각칙>사기"}`

	tests := map[string]string{
		"bare":           body,
		"fenced":         "```json\n" + body + "\n```",
		"plain fence":    "```\n" + body + "\n```",
		"padded":         "  \n" + body + "\n\n",
		"fence no break": "```json" + body + "```",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Normalize(raw)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestNormalize_ParseFailures(t *testing.T) {
	tests := map[string]string{
		"truncated":      `{"title":"사기","date":`,
		"trailing comma": `{"title":"사기",}`,
		"array":          `[{"title":"사기"}]`,
		"string":         `"사기"`,
		"empty":          "```json\n```",
		"prose":          "죄송합니다. 분석할 수 없습니다.",
		"number field":   `{"title":"사기","date":20240110,"categories":"x"}`,
		"nested field":   `{"title":{"ko":"사기"},"date":"2024-01-10","categories":"x"}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Normalize(raw); !errors.Is(err, ErrParse) {
				t.Errorf("expected ErrParse, got %v", err)
			}
		})
	}
}

func TestNormalize_ToleratesUnknownAndNullKeys(t *testing.T) {
	obj, err := Normalize(`{"title":"t","date":"d","categories":"c","laws":null,"confidence":0.9}`)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	res, err := ToExtractionResult(models.RevisionDetailed, obj)
	if err != nil {
		t.Fatalf("ToExtractionResult: %v", err)
	}
	if res.Laws != "" || res.Facts != "" {
		t.Errorf("missing and null keys should default to empty: %+v", res)
	}
}

func TestToExtractionResult_RequiredKeys(t *testing.T) {
	for _, missing := range models.RequiredKeys {
		t.Run(missing, func(t *testing.T) {
			obj := map[string]any{"title": "t", "date": "d", "categories": "c"}
			delete(obj, missing)
			_, err := ToExtractionResult(models.RevisionSummary, obj)
			if !errors.Is(err, ErrFieldAccess) {
				t.Errorf("expected ErrFieldAccess, got %v", err)
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	if got := StripFences("```json\n{}\n``` "); got != "{}" {
		t.Errorf("StripFences = %q", got)
	}
}
