package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"jurisnote/models"
)

var knownKeys = []string{
	models.KeyCategories, models.KeyTitle, models.KeyDate, models.KeyCaseNo,
	models.KeyFacts, models.KeyIssues, models.KeyLaws, models.KeyHoldings,
	models.KeySummary, models.KeyInsight,
}

// extractionSchema only requires an object whose known keys hold text.
// Missing keys are handled by ToExtractionResult.
var extractionSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	props := make(map[string]any, len(knownKeys))
	for _, k := range knownKeys {
		props[k] = map[string]any{"type": []string{"string", "null"}}
	}
	doc, err := json.Marshal(map[string]any{
		"type":       "object",
		"properties": props,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("extraction.json", strings.NewReader(string(doc))); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile("extraction.json")
})

// StripFences removes every "```json" and "```" marker and trims the result.
func StripFences(raw string) string {
	s := strings.ReplaceAll(raw, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// Normalize turns raw generation output into a JSON object. Any failure is
// reported as ErrParse.
func Normalize(raw string) (map[string]any, error) {
	clean := StripFences(raw)

	var v any
	if err := json.Unmarshal([]byte(clean), &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	schema, err := extractionSchema()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := schema.Validate(v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level is %T", ErrParse, v)
	}
	return obj, nil
}

// ToExtractionResult reads the parsed object into a result. Required keys must
// be present; every other key defaults to "".
func ToExtractionResult(rev models.Revision, obj map[string]any) (*models.ExtractionResult, error) {
	var missing []string
	for _, k := range models.RequiredKeys {
		if _, ok := obj[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrFieldAccess, strings.Join(missing, ", "))
	}

	res := &models.ExtractionResult{Revision: rev}
	for _, k := range knownKeys {
		s, _ := obj[k].(string)
		res.SetField(k, s)
	}
	return res, nil
}
