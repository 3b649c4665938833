// ABOUTME: In-memory program store keyed by hash and ordered by registration
// ABOUTME: Default backend; contents are lost when the process exits

package registry

import (
	"context"
	"sync"
)

// Memory is a mutex-guarded in-process Store.
type Memory struct {
	mu     sync.RWMutex
	byHash map[string]Program
	order  []string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{byHash: make(map[string]Program)}
}

func (m *Memory) List(_ context.Context, page, limit int) (Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := Page{Programs: []Program{}, Total: len(m.order)}
	start := offset(page, limit)
	if start >= len(m.order) || limit <= 0 {
		return out, nil
	}
	end := min(start+limit, len(m.order))
	for _, h := range m.order[start:end] {
		out.Programs = append(out.Programs, m.byHash[h])
	}
	return out, nil
}

func (m *Memory) Get(_ context.Context, hash string) (Program, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.byHash[hash]
	if !ok {
		return Program{}, ErrNotFound
	}
	return p, nil
}

func (m *Memory) Create(_ context.Context, p Program) (Program, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byHash[p.ProgramHash]; ok {
		return Program{}, ErrDuplicate
	}
	m.byHash[p.ProgramHash] = p
	m.order = append(m.order, p.ProgramHash)
	return p, nil
}

func (m *Memory) Stats(_ context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var s Stats
	var scores int
	for _, p := range m.byHash {
		s.TotalPrograms++
		s.TotalAnalyses += p.AnalysisCount
		scores += p.LatestScore
		if p.IsVerified {
			s.VerifiedCount++
		}
	}
	if s.TotalPrograms > 0 {
		s.AverageScore = roundScore(float64(scores) / float64(s.TotalPrograms))
	}
	return s, nil
}

func (m *Memory) RecordAnalysis(_ context.Context, hash string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.byHash[hash]
	if !ok {
		return ErrNotFound
	}
	p.AnalysisCount++
	p.LatestScore = score
	m.byHash[hash] = p
	return nil
}

func (m *Memory) Close() error { return nil }
