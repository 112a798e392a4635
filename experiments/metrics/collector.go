package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines int
	Difficulty string
	Duration   time.Duration
	Expanded   int // simulated candidate plays
	Rollouts   int
	Pruned     int // branches dropped because their simulation failed
	Plies      int
}

type MoveMetric struct {
	Step       int
	Turn       int
	Player     string
	PlanLength int
	SearchMetric
}

type GameMetric struct {
	MatchID        string
	StartingPlayer string
	Winner         string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Turns          int
	Truth          int
}

type Collector interface {
	Start(goroutines int, difficulty string)
	AddExpanded(n int)
	AddRollout()
	AddPruned()
	AddPly()
	Complete() SearchMetric
}

type collector struct {
	goroutines int
	difficulty string
	startTime  time.Time
	expanded   atomic.Int32
	rollouts   atomic.Int32
	pruned     atomic.Int32
	plies      atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int, difficulty string) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.difficulty = difficulty
	m.expanded.Store(0)
	m.rollouts.Store(0)
	m.pruned.Store(0)
	m.plies.Store(0)
}

func (m *collector) AddExpanded(n int) {
	m.expanded.Add(int32(n))
}

func (m *collector) AddRollout() {
	m.rollouts.Add(1)
}

func (m *collector) AddPruned() {
	m.pruned.Add(1)
}

func (m *collector) AddPly() {
	m.plies.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines: m.goroutines,
		Difficulty: m.difficulty,
		Duration:   time.Since(m.startTime),
		Expanded:   int(m.expanded.Load()),
		Rollouts:   int(m.rollouts.Load()),
		Pruned:     int(m.pruned.Load()),
		Plies:      int(m.plies.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int, difficulty string) {}
func (m *dummyCollector) AddExpanded(n int)                       {}
func (m *dummyCollector) AddRollout()                             {}
func (m *dummyCollector) AddPruned()                              {}
func (m *dummyCollector) AddPly()                                 {}
func (m *dummyCollector) Complete() SearchMetric                  { return SearchMetric{} }
