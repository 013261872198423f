// Package stats keeps in-memory statistics about finished games of one run.
package stats

import (
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

// MaxRecords bounds the number of games kept for averages and the score graph
const MaxRecords = 500

// Outcome is how a game ended
type Outcome string

const (
	OutcomeCollided  Outcome = "collided"
	OutcomeBoardFull Outcome = "board-full"
	OutcomeAbandoned Outcome = "abandoned"
)

// GameRecord holds the result of one game
type GameRecord struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Score     int       `json:"score"`
	Length    int       `json:"length"`
	Outcome   Outcome   `json:"outcome"`
}

// Duration returns how long the game lasted
func (r GameRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Summary aggregates every game recorded so far
type Summary struct {
	Games           int     `json:"games"`
	Wins            int     `json:"wins"`
	BestScore       int     `json:"best"`
	AverageScore    float64 `json:"avg"`
	MedianScore     float64 `json:"median"`
	AverageDuration float64 `json:"avgDuration"`
}

// GameStats collects GameRecords. It is safe for concurrent use.
type GameStats struct {
	games []GameRecord
	total int
	wins  int
	best  int
	mutex sync.RWMutex
}

func NewGameStats() *GameStats {
	return &GameStats{
		games: make([]GameRecord, 0),
	}
}

// AddGame records a finished game. Only the most recent MaxRecords games are
// kept for averages; the total, win and best counters cover the whole run.
func (s *GameStats) AddGame(record GameRecord) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.games) >= MaxRecords {
		s.games = s.games[1:]
	}
	s.games = append(s.games, record)

	s.total++
	if record.Outcome == OutcomeBoardFull {
		s.wins++
	}
	if record.Score > s.best {
		s.best = record.Score
	}
}

// GetStats returns a copy of the kept records, oldest first
func (s *GameStats) GetStats() []GameRecord {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]GameRecord, len(s.games))
	copy(out, s.games)
	return out
}

// Recent returns up to n of the latest scores, oldest first
func (s *GameStats) Recent(n int) []int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if n > len(s.games) {
		n = len(s.games)
	}
	scores := make([]int, 0, n)
	for _, g := range s.games[len(s.games)-n:] {
		scores = append(scores, g.Score)
	}
	return scores
}

func (s *GameStats) GetMaxScore() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.best
}

func (s *GameStats) GetGamesPlayed() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.total
}

// Summary computes mean and median over the kept records
func (s *GameStats) Summary() Summary {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	sum := Summary{
		Games:     s.total,
		Wins:      s.wins,
		BestScore: s.best,
	}
	if len(s.games) == 0 {
		return sum
	}

	scores := make([]float64, len(s.games))
	durations := make([]float64, len(s.games))
	for i, g := range s.games {
		scores[i] = float64(g.Score)
		durations[i] = g.Duration().Seconds()
	}

	sum.AverageScore = stat.Mean(scores, nil)
	sum.AverageDuration = stat.Mean(durations, nil)

	sort.Float64s(scores)
	sum.MedianScore = median(scores)
	return sum
}

// median expects sorted input. stat.Quantile with Empirical picks the lower
// middle value for even counts, so the two middles are averaged here.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return stat.Quantile(0.5, stat.Empirical, sorted, nil)
	}
	return stat.Mean(sorted[n/2-1:n/2+1], nil)
}
