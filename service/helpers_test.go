package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"jurisnote/models"
	"jurisnote/repository"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeGenerator returns a canned response and records prompts.
type fakeGenerator struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

func (g *fakeGenerator) Name() string { return "fake" }

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.response, g.err
}

func (g *fakeGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

// flakyStore fails appends while failing is set.
type flakyStore struct {
	*repository.MemoryStore
	failing  bool
	fetchErr error
}

var errStoreDown = errors.New("quota exceeded")

func (s *flakyStore) Append(ctx context.Context, rec models.Record) error {
	if s.failing {
		return errStoreDown
	}
	return s.MemoryStore.Append(ctx, rec)
}

func (s *flakyStore) FetchAll(ctx context.Context) (*models.Table, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.MemoryStore.FetchAll(ctx)
}

const detailedResponse = "```json\n" + `{"categories":"형사법>형법각칙>사기","title":"사기","date":"2024-01-10","facts":"피고인은 피해자를 기망하였다.","issues":"1. 기망행위의 성립","laws":"형법 제347조","holdings":"편취의 고의가 인정된다.","insight":"차용금 사기 판단 기준"}` + "\n```"

const caseNumberResponse = `{"categories":"민사법>채권법>대여금","title":"대여금","date":"2023-05-02","case_no":"2022다1234","facts":"f","issues":"i","laws":"l","holdings":"h","insight":"s"}`

func newTestAnalysis(gen *fakeGenerator, rev models.Revision) *AnalysisService {
	return NewAnalysisService(
		WithGenerator(gen),
		WithLayout(models.MustLayout(rev)),
		WithLogger(discardLogger),
	)
}
