// Package game coordinates a single solitaire session: the engine state,
// the selection machine, the undo stack, and the play timer, behind one
// mutex. It holds no rendering or input-decoding concerns; callers feed
// it decoded activate/cancel events and read back snapshots and
// messages.
package game

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gorpong/PySolitaire/engine"
)

// OnWinFunc is invoked once when the finishing move completes the four
// foundations. It receives the final move count and elapsed play time,
// the only data the leaderboard layer consumes.
type OnWinFunc func(moves int, elapsed time.Duration)

// Session owns one game from deal to win/stall. All exported methods are
// safe for use from a single caller goroutine plus observers; mutation
// is serialized by the internal mutex.
type Session struct {
	ID    uuid.UUID
	Seed  uint64
	Rules engine.TableRules

	state    engine.GameState
	selector engine.Selector
	undo     engine.UndoStack
	Timer    *Timer

	message string
	won     bool

	OnWin OnWinFunc

	mu  sync.Mutex
	log *logrus.Entry
}

// New deals a fresh session. A zero seed draws one from the process
// entropy source, so unseeded games differ run to run.
func New(rules engine.TableRules, seed uint64) *Session {
	if seed == 0 {
		seed = rand.Uint64()
	}
	id := uuid.New()
	s := &Session{
		ID:    id,
		Seed:  seed,
		Rules: rules,
		Timer: &Timer{},
		log: logrus.WithFields(logrus.Fields{
			"session": id,
			"seed":    seed,
			"draw":    rules.DrawCount,
		}),
	}
	s.state = engine.NewGame(seed, rules)
	s.state.Deal()
	s.message = "New game dealt."
	s.log.Info("session created")
	return s
}

// Restore rebuilds a session around a previously saved state, used by
// the persistence layer when resuming a game.
func Restore(id uuid.UUID, seed uint64, state engine.GameState, elapsed time.Duration) *Session {
	s := &Session{
		ID:    id,
		Seed:  seed,
		Rules: state.Rules,
		state: state,
		Timer: &Timer{},
		log: logrus.WithFields(logrus.Fields{
			"session": id,
			"seed":    seed,
			"draw":    state.Rules.DrawCount,
		}),
	}
	s.Timer.SetElapsed(elapsed)
	s.message = "Game resumed."
	s.log.WithField("moves", state.MoveCount).Info("session restored")
	return s
}

// Snapshot returns a value copy of the game state for rendering or
// persistence. The copy shares nothing with the live state.
func (s *Session) Snapshot() engine.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Message returns the last user-facing status message.
func (s *Session) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Holding returns the live selection, if any.
func (s *Session) Holding() (engine.Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selector.Holding()
}

// MoveCount returns the number of committed moves.
func (s *Session) MoveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(s.state.MoveCount)
}

// Won reports whether the win has been reached.
func (s *Session) Won() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.won
}

// Activate resolves one decoded input event against the board.
func (s *Session) Activate(loc engine.Location) engine.Outcome {
	s.mu.Lock()
	out := s.selector.Activate(&s.state, &s.undo, loc)
	s.message = out.Message
	winNow := out.Move.Won && !s.won
	if winNow {
		s.won = true
	}
	moves := int(s.state.MoveCount)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"zone":   loc.Zone.String(),
		"pile":   loc.Pile,
		"result": out.Result,
	}).Debug("activate")

	if winNow {
		s.Timer.Pause()
		elapsed := s.Timer.Elapsed()
		s.log.WithFields(logrus.Fields{
			"moves":   moves,
			"elapsed": elapsed,
		}).Info("game won")
		if s.OnWin != nil {
			s.OnWin(moves, elapsed)
		}
	}
	return out
}

// Cancel releases the current selection, if any.
func (s *Session) Cancel() engine.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.selector.Cancel()
	if out.Message != "" {
		s.message = out.Message
	}
	return out
}

// Undo restores the most recent snapshot. Returns false with a message
// when there is nothing to undo.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.undo.Pop()
	if !ok {
		s.message = "Nothing to undo."
		return false
	}
	s.state.Restore(snap)
	s.selector.Reset()
	s.message = "Undone."
	s.log.WithField("moves", s.state.MoveCount).Debug("undo")
	return true
}

// CanUndo reports whether a snapshot is available.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.undo.CanUndo()
}

// Bury performs the draw-3 stall recovery when the engine offers it.
func (s *Session) Bury() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.CanOfferBury() {
		s.message = "Burying is not available."
		return false
	}
	if _, err := s.state.BuryTopCard(); err != nil {
		s.message = err.Error()
		return false
	}
	s.message = "Buried the top waste card."
	s.log.WithField("burials", s.state.Burials).Debug("bury")
	return true
}

// Stalled reports the loss condition.
func (s *Session) Stalled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsStalled()
}

// NewDeal replaces the board with a fresh deal, clearing the undo stack,
// the selection, and the timer. A zero seed draws a random one.
func (s *Session) NewDeal(seed uint64) {
	if seed == 0 {
		seed = rand.Uint64()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Seed = seed
	s.state = engine.NewGame(seed, s.Rules)
	s.state.Deal()
	s.selector.Reset()
	s.undo.Clear()
	s.won = false
	s.Timer.Reset()
	s.message = "New game dealt."
	s.log.WithField("seed", seed).Info("new deal")
}
