// Package metrics instruments searches and matches. The engine itself only
// talks to the Collector interface, so production callers that do not care
// pay nothing (NewDummyCollector).
package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarizes one full search (one Think call).
type SearchMetric struct {
	StartTime     time.Time
	Duration      time.Duration
	Iterations    int64
	PlayoutPlies  int64
	HeuristicHits int64
}

type Collector interface {
	Start()
	AddIteration()
	AddPlayoutPlies(n int)
	AddHeuristicHit()
	Complete() SearchMetric
}

type collector struct {
	startTime     time.Time
	iterations    atomic.Int64
	playoutPlies  atomic.Int64
	heuristicHits atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.iterations.Store(0)
	m.playoutPlies.Store(0)
	m.heuristicHits.Store(0)
}

func (m *collector) AddIteration() {
	m.iterations.Add(1)
}

func (m *collector) AddPlayoutPlies(n int) {
	m.playoutPlies.Add(int64(n))
}

func (m *collector) AddHeuristicHit() {
	m.heuristicHits.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		StartTime:     m.startTime,
		Duration:      time.Since(m.startTime),
		Iterations:    m.iterations.Load(),
		PlayoutPlies:  m.playoutPlies.Load(),
		HeuristicHits: m.heuristicHits.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                 {}
func (m *dummyCollector) AddIteration()          {}
func (m *dummyCollector) AddPlayoutPlies(n int)  {}
func (m *dummyCollector) AddHeuristicHit()       {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
