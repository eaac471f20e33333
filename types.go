package main

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"showdoidioma/internal/config"
	"showdoidioma/internal/game"
	"showdoidioma/internal/types"
)

type contextKey string

// App holds the server's shared state. Handlers are methods on it.
type App struct {
	Config    config.Config
	Generator game.Generator
	Logger    zerolog.Logger
	StartTime time.Time

	// ControllerOptions is the template for every session's controller.
	// Effects and Logger are filled in per session.
	ControllerOptions game.Options

	Sessions     map[string]*gameSession
	SessionMutex sync.RWMutex

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex
}

// gameSession is one browser session's controller and pending sound cues.
type gameSession struct {
	ID         string
	Controller *game.Controller
	Effects    *effectQueue

	mu         sync.Mutex
	lastAccess time.Time
}

func (s *gameSession) touch(now time.Time) {
	s.mu.Lock()
	s.lastAccess = now
	s.mu.Unlock()
}

func (s *gameSession) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

// effectQueue collects effects until the client polls for them.
type effectQueue struct {
	mu      sync.Mutex
	pending []types.Effect
}

const maxQueuedEffects = 32

// Play implements game.Effects.
func (q *effectQueue) Play(e types.Effect) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, e)
	if n := len(q.pending); n > maxQueuedEffects {
		q.pending = q.pending[n-maxQueuedEffects:]
	}
}

// Drain returns the queued effects and empties the queue.
func (q *effectQueue) Drain() []types.Effect {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	if out == nil {
		out = []types.Effect{}
	}
	return out
}

// stateView is the JSON the client renders from.
type stateView struct {
	game.State
	Mood    Mood           `json:"mood"`
	Options []optionView   `json:"options,omitempty"`
	Effects []types.Effect `json:"effects"`
}

type optionView struct {
	Index    int    `json:"index"`
	Text     string `json:"text"`
	Hidden   bool   `json:"hidden"`
	Selected bool   `json:"selected"`
	Votes    *int   `json:"votes,omitempty"`
}

// startRequest is the body of POST /api/game/start.
type startRequest struct {
	Language string `json:"language" binding:"required"`
}

// answerRequest is the body of POST /api/game/answer.
type answerRequest struct {
	Index *int `json:"index" binding:"required"`
}
