package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"jurisnote/generation"
	"jurisnote/models"
)

// AnalysisService turns raw case text into a structured extraction.
type AnalysisService struct {
	generator generation.Generator
	taxonomy  models.Taxonomy
	layout    models.Layout
	logger    *slog.Logger
}

// AnalysisServiceOption is a functional option for AnalysisService
type AnalysisServiceOption func(*AnalysisService)

// WithGenerator sets the generation backend
func WithGenerator(g generation.Generator) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.generator = g
	}
}

// WithTaxonomy overrides the built-in classification table
func WithTaxonomy(t models.Taxonomy) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.taxonomy = t
	}
}

// WithLayout sets the record revision the prompt is built for
func WithLayout(l models.Layout) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.layout = l
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.logger = l
	}
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(opts ...AnalysisServiceOption) *AnalysisService {
	s := &AnalysisService{
		taxonomy: models.DefaultTaxonomy(),
		layout:   models.MustLayout(models.RevisionCaseNumber),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// AnalyzeRequest represents a request to analyze one case
type AnalyzeRequest struct {
	CaseText string
}

// AnalyzeResult holds the extraction and the raw response it came from
type AnalyzeResult struct {
	Result *models.ExtractionResult
	Raw    string
}

// Layout returns the layout analyses are produced for.
func (s *AnalysisService) Layout() models.Layout {
	return s.layout
}

// Taxonomy returns the classification table used in prompts.
func (s *AnalysisService) Taxonomy() models.Taxonomy {
	return s.taxonomy
}

// Analyze builds the prompt, calls the generator once and normalizes the reply.
// Whitespace-only text is rejected before any call is made.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	if strings.TrimSpace(req.CaseText) == "" {
		return nil, ErrEmptyCaseText
	}
	if s.generator == nil {
		return nil, fmt.Errorf("%w: no generator configured", ErrGeneration)
	}

	prompt := BuildPrompt(s.layout, s.taxonomy, req.CaseText)
	start := time.Now()
	s.logger.Info("analysis started",
		"provider", s.generator.Name(),
		"revision", s.layout.Revision,
		"text_len", len(req.CaseText),
	)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("generation failed", "provider", s.generator.Name(), "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	obj, err := Normalize(raw)
	if err != nil {
		s.logger.Warn("unparseable response", "error", err, "raw_len", len(raw))
		return nil, err
	}
	res, err := ToExtractionResult(s.layout.Revision, obj)
	if err != nil {
		s.logger.Warn("incomplete response", "error", err)
		return nil, err
	}

	s.logger.Info("analysis finished",
		"title", res.Title,
		"categories", res.Categories,
		"duration", time.Since(start),
	)
	return &AnalyzeResult{Result: res, Raw: raw}, nil
}
