package service

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultSessionTTL is how long an idle session keeps its pending review.
const DefaultSessionTTL = 2 * time.Hour

// Sessions keeps one Workbench per browser session. Idle sessions expire
// together with their pending review.
type Sessions struct {
	cache    *cache.Cache
	ttl      time.Duration
	analysis *AnalysisService
	notebook *Notebook
}

// NewSessions creates a session registry.
func NewSessions(analysis *AnalysisService, notebook *Notebook, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		cache:    cache.New(ttl, ttl/2),
		ttl:      ttl,
		analysis: analysis,
		notebook: notebook,
	}
}

// Workbench returns the session's workbench, creating it on first use.
// Every lookup extends the session.
func (s *Sessions) Workbench(sessionID string) *Workbench {
	if v, ok := s.cache.Get(sessionID); ok {
		wb := v.(*Workbench)
		s.cache.Set(sessionID, wb, s.ttl)
		return wb
	}
	wb := NewWorkbench(s.analysis, s.notebook)
	// Add fails if a concurrent request created the session first.
	if err := s.cache.Add(sessionID, wb, s.ttl); err != nil {
		if v, ok := s.cache.Get(sessionID); ok {
			return v.(*Workbench)
		}
	}
	return wb
}

// Count returns the number of live sessions.
func (s *Sessions) Count() int {
	return s.cache.ItemCount()
}
