// Package driver runs a game engine on a tick schedule. It owns pausing,
// restarts, speed and statistics, and serialises input coming from other
// goroutines with the ticks.
package driver

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"grid-snake/game"
	"grid-snake/game/types"
	"grid-snake/stats"
)

// Status is the outcome of a tick
type Status int

const (
	StatusContinue Status = iota
	StatusAteFood
	StatusCollided
	StatusBoardFull
	StatusPaused
)

func (s Status) String() string {
	switch s {
	case StatusContinue:
		return "continue"
	case StatusAteFood:
		return "ate-food"
	case StatusCollided:
		return "collided"
	case StatusBoardFull:
		return "board-full"
	case StatusPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Terminal reports whether the game has ended
func (s Status) Terminal() bool {
	return s == StatusCollided || s == StatusBoardFull
}

// Frame is everything a renderer needs to draw one picture
type Frame struct {
	SessionID string              `json:"session"`
	Game      int                 `json:"game"`
	Tick      int                 `json:"tick"`
	State     game.Snapshot       `json:"state"`
	Status    Status              `json:"status"`
	Paused    bool                `json:"paused"`
	Collision types.CollisionType `json:"collision"`
	Interval  time.Duration       `json:"interval"`
	Stats     stats.Summary       `json:"stats"`
	Recent    []int               `json:"recent,omitempty"`
}

// Renderer receives a frame after every tick
type Renderer interface {
	Render(Frame)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(Frame)

func (f RendererFunc) Render(fr Frame) { f(fr) }

// recentScores is how many past scores a frame carries for graphs
const recentScores = 50

type Options struct {
	Grid        types.Grid
	Random      types.Random
	Policy      Policy
	Stats       *stats.GameStats
	Logger      zerolog.Logger
	AutoRestart bool // start a new game as soon as one ends
	MaxGames    int  // Run returns after this many finished games, 0 for no limit. Restarts do not count.
}

// Session drives one engine. All methods are safe for concurrent use.
type Session struct {
	ID string

	mu        sync.Mutex
	engine    *game.Engine
	policy    Policy
	stats     *stats.GameStats
	log       zerolog.Logger
	restart   bool
	maxGames  int
	now       func() time.Time
	gameNo    int
	finished  int // games that ended by collision or a full board
	tick      int
	status    Status
	paused    bool
	collision types.CollisionType
	startTime time.Time
}

// NewSession creates the engine and starts the first game
func NewSession(opts Options) *Session {
	if opts.Stats == nil {
		opts.Stats = stats.NewGameStats()
	}
	id := uuid.New().String()
	s := &Session{
		ID:       id,
		engine:   game.NewEngine(opts.Grid, opts.Random),
		policy:   opts.Policy,
		stats:    opts.Stats,
		log:      opts.Logger.With().Str("session", id).Logger(),
		restart:  opts.AutoRestart,
		maxGames: opts.MaxGames,
		now:      time.Now,
	}

	s.mu.Lock()
	s.startLocked()
	s.mu.Unlock()
	return s
}

func (s *Session) startLocked() {
	s.engine.GenerateStart()
	s.gameNo++
	s.tick = 0
	s.status = StatusContinue
	s.paused = false
	s.collision = types.NoCollision
	s.startTime = s.now()

	head := s.engine.Snake()[0]
	s.log.Info().
		Int("game", s.gameNo).
		Int("rows", s.engine.Grid().Rows).
		Int("cols", s.engine.Grid().Columns).
		Stringer("head", head).
		Stringer("dir", s.engine.Direction()).
		Msg("game started")
}

// Tick advances the game by one step. It checks for a collision first and,
// if there is one, ends the game without moving the snake.
func (s *Session) Tick() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.Terminal() {
		return s.status
	}
	if s.paused {
		return StatusPaused
	}
	s.tick++

	if c := s.engine.Collision(); c != types.NoCollision {
		s.collision = c
		s.finishLocked(StatusCollided)
		return s.status
	}

	res := s.engine.Step()
	s.status = StatusContinue
	if res.AteFood {
		s.status = StatusAteFood
		s.log.Debug().
			Int("score", s.engine.Score()).
			Int("length", s.engine.Length()).
			Msg("food eaten")
	}

	if s.engine.IsGameOver() {
		s.finishLocked(StatusBoardFull)
	}
	return s.status
}

func (s *Session) finishLocked(status Status) {
	s.status = status
	s.finished++
	outcome := stats.OutcomeCollided
	if status == StatusBoardFull {
		outcome = stats.OutcomeBoardFull
	}
	s.recordLocked(outcome)

	ev := s.log.Info()
	if status == StatusCollided {
		ev = ev.Stringer("collision", s.collision)
	}
	ev.Int("game", s.gameNo).
		Int("score", s.engine.Score()).
		Int("ticks", s.tick).
		Str("outcome", string(outcome)).
		Msg("game over")
}

func (s *Session) recordLocked(outcome stats.Outcome) {
	s.stats.AddGame(stats.GameRecord{
		StartTime: s.startTime,
		EndTime:   s.now(),
		Score:     s.engine.Score(),
		Length:    s.engine.Length(),
		Outcome:   outcome,
	})
}

// RequestDirection forwards a direction change to the engine. The latest
// accepted request wins at the next tick.
func (s *Session) RequestDirection(d types.Direction) game.DirectionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.engine.RequestDirection(d)
	s.log.Trace().Stringer("dir", d).Stringer("result", res).Msg("direction requested")
	return res
}

// TogglePause flips the paused flag and returns the new value. Finished
// games cannot be paused.
func (s *Session) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.Terminal() {
		return false
	}
	s.paused = !s.paused
	s.log.Info().Bool("paused", s.paused).Int("game", s.gameNo).Msg("pause toggled")
	return s.paused
}

// Restart throws the current game away and starts a new one. A game still in
// progress is recorded as abandoned.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.status.Terminal() && s.tick > 0 {
		s.recordLocked(stats.OutcomeAbandoned)
	}
	s.startLocked()
}

// Interval is the current tick interval according to the speed policy
func (s *Session) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy.Interval(s.engine.Score())
}

// Status returns the result of the latest tick
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused {
		return StatusPaused
	}
	return s.status
}

func (s *Session) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Frame{
		SessionID: s.ID,
		Game:      s.gameNo,
		Tick:      s.tick,
		State:     s.engine.Snapshot(),
		Status:    s.status,
		Paused:    s.paused,
		Collision: s.collision,
		Interval:  s.policy.Interval(s.engine.Score()),
		Stats:     s.stats.Summary(),
		Recent:    s.stats.Recent(recentScores),
	}
}

// Finished counts games that ended by collision or a full board. Restarted
// games are not included.
func (s *Session) Finished() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

func (s *Session) Stats() *stats.GameStats {
	return s.stats
}

func render(fr Frame, renderers []Renderer) {
	for _, r := range renderers {
		r.Render(fr)
	}
}

// Run ticks the session until ctx is done or MaxGames games have finished,
// handing a frame to every renderer after each tick. The ticker follows the
// speed policy as the score changes.
func (s *Session) Run(ctx context.Context, renderers ...Renderer) error {
	interval := s.Interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	render(s.Frame(), renderers)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		status := s.Tick()
		render(s.Frame(), renderers)

		if status.Terminal() {
			if n := s.Finished(); s.maxGames > 0 && n >= s.maxGames {
				s.log.Info().Int("games", n).Msg("game limit reached")
				return nil
			}
			if s.restart {
				s.Restart()
				render(s.Frame(), renderers)
			}
		}

		if next := s.Interval(); next != interval {
			interval = next
			ticker.Reset(interval)
		}
	}
}
