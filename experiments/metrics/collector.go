package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Depth        int // Rollout depth, counting the first move
	Rollouts     int // Rollouts per legal first move
	Episodes     int // Rollouts actually played across all candidates
	FullPlayouts int // Rollouts that ended on a move that changed nothing
	Legal        int // Candidates whose first move changed the board
}

type MoveMetric struct {
	Step      int
	Direction string
	Score     int
	Changed   bool
	SearchMetric
}

type GameMetric struct {
	Seed       uint64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Score      int
	MaxTile    int
	Terminal   bool // False when the game was cut off by a move limit
}

// Collector is shared by the rollout workers of one search.
type Collector interface {
	Start(goroutines, depth, rollouts int)
	AddEpisodes(n int)
	AddFullPlayouts(n int)
	SetLegal(n int)
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	depth        int
	rollouts     int
	startTime    time.Time
	episodes     atomic.Int64
	fullPlayouts atomic.Int64
	legal        atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(goroutines, depth, rollouts int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.depth = depth
	m.rollouts = rollouts
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.legal.Store(0)
}

func (m *collector) AddEpisodes(n int) {
	m.episodes.Add(int64(n))
}

func (m *collector) AddFullPlayouts(n int) {
	m.fullPlayouts.Add(int64(n))
}

func (m *collector) SetLegal(n int) {
	m.legal.Store(int32(n))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Depth:        m.depth,
		Rollouts:     m.rollouts,
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Legal:        int(m.legal.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, depth, rollouts int) {}
func (m *dummyCollector) AddEpisodes(n int)                     {}
func (m *dummyCollector) AddFullPlayouts(n int)                 {}
func (m *dummyCollector) SetLegal(n int)                        {}
func (m *dummyCollector) Complete() SearchMetric                { return SearchMetric{} }
