package game

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"showdoidioma/internal/types"
)

// Generator produces questions and host lines. Both calls may be slow and
// may fail.
type Generator interface {
	GenerateQuestion(ctx context.Context, lang types.Language, level int) (types.Question, error)
	HostCommentary(ctx context.Context, event types.CommentaryEvent) (string, error)
}

// Effects receives side effects at transition points. Play is called with
// the controller lock held and must not call back into the controller.
type Effects interface {
	Play(effect types.Effect)
}

// NopEffects discards every effect.
type NopEffects struct{}

func (NopEffects) Play(types.Effect) {}

const (
	DefaultSettleDelay    = 1500 * time.Millisecond
	DefaultAdvanceDelay   = 2500 * time.Millisecond
	DefaultRequestTimeout = 30 * time.Second
)

// Options configures a Controller. Zero values fall back to defaults.
type Options struct {
	SettleDelay    time.Duration
	AdvanceDelay   time.Duration
	RequestTimeout time.Duration
	Scheduler      Scheduler
	Effects        Effects
	Rand           Rand
	// PickWrong chooses which wrong options the cards lifeline hides.
	PickWrong func(wrong []int, n int) []int
	// Spawn runs async work. Defaults to a new goroutine.
	Spawn  func(func())
	Logger *zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.SettleDelay <= 0 {
		o.SettleDelay = DefaultSettleDelay
	}
	if o.AdvanceDelay <= 0 {
		o.AdvanceDelay = DefaultAdvanceDelay
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = DefaultRequestTimeout
	}
	if o.Scheduler == nil {
		o.Scheduler = RealScheduler{}
	}
	if o.Effects == nil {
		o.Effects = NopEffects{}
	}
	if o.Rand == nil {
		o.Rand = globalRand{}
	}
	if o.PickWrong == nil {
		o.PickWrong = SampleWrong
	}
	if o.Spawn == nil {
		o.Spawn = func(f func()) { go f() }
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	return o
}

// token identifies the session epoch and acquisition cycle an async callback
// belongs to.
type token struct {
	epoch uint64
	cycle uint64
}

// Controller drives one Session. Every mutation happens under one lock, and
// every timer callback or generator result carries a token that must still
// be current when it lands.
type Controller struct {
	mu      sync.Mutex
	gen     Generator
	opts    Options
	log     zerolog.Logger
	session *Session

	epoch       uint64
	epochCtx    context.Context
	epochCancel context.CancelFunc
	cycle       uint64
	cycleCtx    context.Context
	cycleCancel context.CancelFunc

	timerSeq uint64
	timers   map[uint64]func() bool
}

// NewController returns a controller with a fresh, not yet started session.
func NewController(gen Generator, opts Options) *Controller {
	opts = opts.withDefaults()
	c := &Controller{
		gen:     gen,
		opts:    opts,
		log:     *opts.Logger,
		session: NewSession(),
		timers:  make(map[uint64]func() bool),
	}
	c.epochCtx, c.epochCancel = context.WithCancel(context.Background())
	c.cycleCtx, c.cycleCancel = context.WithCancel(c.epochCtx)
	return c
}

// Start begins a game in lang and requests the first question.
func (c *Controller) Start(lang types.Language) error {
	if !lang.Valid() {
		return fmt.Errorf("%w: %q", types.ErrUnknownLanguage, lang)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.session.Begin(lang); err != nil {
		return err
	}
	c.log.Info().Str("language", string(lang)).Msg("game started")
	c.opts.Effects.Play(types.EffectMusicStart)
	c.acquireLocked()
	return nil
}

// SubmitAnswer locks index as the answer to the question on display. It is
// ignored unless a question is presented and still unanswered.
func (c *Controller) SubmitAnswer(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.session.LockAnswer(index) {
		c.log.Debug().Int("index", index).Str("stage", string(c.session.Stage())).Msg("answer ignored")
		return
	}
	c.opts.Effects.Play(types.EffectSelect)
	c.scheduleLocked(c.opts.SettleDelay, c.revealLocked)
}

func (c *Controller) revealLocked() {
	correct, ok := c.session.RevealAnswer()
	if !ok {
		return
	}
	if !correct {
		c.opts.Effects.Play(types.EffectIncorrect)
		c.commentaryLocked(types.CommentaryIncorrect, types.MessageIncorrectFallback, func(msg string) {
			if c.session.Lose(msg) {
				c.opts.Effects.Play(types.EffectMusicStop)
				c.log.Info().Str("prize", c.session.finalPrize).Msg("game lost")
			}
		})
		return
	}
	c.opts.Effects.Play(types.EffectCorrect)
	if c.session.Terminal() {
		c.opts.Effects.Play(types.EffectMusicStop)
		c.log.Info().Str("prize", c.session.finalPrize).Msg("game won")
		return
	}
	c.scheduleLocked(c.opts.AdvanceDelay, func() {
		if c.session.Advance() {
			c.acquireLocked()
		}
	})
}

// UseLifeline applies kind to the question on display. Unavailable or
// already spent lifelines are ignored.
func (c *Controller) UseLifeline(kind types.Lifeline) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch kind {
	case types.LifelineSkip:
		if !c.session.UseSkip() {
			c.ignoredLocked(kind)
			return
		}
		c.opts.Effects.Play(types.EffectLifeline)
		c.acquireLocked()
	case types.LifelineReveal:
		hidden, ok := c.session.UseReveal(c.opts.PickWrong)
		if !ok {
			c.ignoredLocked(kind)
			return
		}
		c.log.Debug().Ints("hidden", hidden).Msg("cards lifeline used")
		c.opts.Effects.Play(types.EffectLifeline)
		c.lifelineCommentaryLocked()
	case types.LifelinePoll:
		poll, ok := c.session.UsePoll(c.opts.Rand)
		if !ok {
			c.ignoredLocked(kind)
			return
		}
		c.log.Debug().Ints("poll", poll).Msg("students lifeline used")
		c.opts.Effects.Play(types.EffectLifeline)
		c.lifelineCommentaryLocked()
	default:
		c.ignoredLocked(kind)
	}
}

func (c *Controller) ignoredLocked(kind types.Lifeline) {
	c.log.Debug().Str("lifeline", string(kind)).Str("stage", string(c.session.Stage())).Msg("lifeline ignored")
}

func (c *Controller) lifelineCommentaryLocked() {
	c.commentaryLocked(types.CommentaryLifeline, types.MessageLifelineFallback, func(msg string) {
		if c.session.Stage() == StagePresenting {
			c.session.SetHostMessage(msg)
		}
	})
}

// Retry requests the question again after a failed acquisition.
func (c *Controller) Retry() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.session.Retry() {
		c.log.Debug().Str("stage", string(c.session.Stage())).Msg("retry ignored")
		return
	}
	c.acquireLocked()
}

// Restart throws the finished game away and returns to NotStarted. Pending
// timers and requests from the old game are invalidated.
func (c *Controller) Restart() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.session.Reset(); err != nil {
		return err
	}
	c.invalidateLocked()
	c.log.Info().Msg("game restarted")
	return nil
}

// Close invalidates all pending work. The controller must not be used
// afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateLocked()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Snapshot()
}

func (c *Controller) invalidateLocked() {
	c.epoch++
	c.cycleCancel()
	c.epochCancel()
	for id, stop := range c.timers {
		stop()
		delete(c.timers, id)
	}
	c.epochCtx, c.epochCancel = context.WithCancel(context.Background())
	c.cycleCtx, c.cycleCancel = context.WithCancel(c.epochCtx)
}

func (c *Controller) token() token {
	return token{epoch: c.epoch, cycle: c.cycle}
}

func (c *Controller) current(t token) bool {
	return t == c.token()
}

// scheduleLocked runs f under the lock after d, unless the epoch or cycle
// has moved on by then.
func (c *Controller) scheduleLocked(d time.Duration, f func()) {
	tok := c.token()
	c.timerSeq++
	id := c.timerSeq
	c.timers[id] = c.opts.Scheduler.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.timers, id)
		if !c.current(tok) {
			c.log.Debug().Uint64("cycle", tok.cycle).Msg("stale timer dropped")
			return
		}
		f()
	})
}

// acquireLocked starts a new acquisition cycle for the session's level.
// Whatever the previous cycle still had in flight is cancelled and its
// results will be dropped.
func (c *Controller) acquireLocked() {
	c.cycleCancel()
	c.cycle++
	c.cycleCtx, c.cycleCancel = context.WithCancel(c.epochCtx)
	tok := c.token()
	c.session.SetHostMessage(types.MessageLoading)

	lang, level := c.session.Language(), c.session.Level()
	event := types.CommentaryCorrect
	if level == 0 {
		event = types.CommentaryIntro
	}
	ctx, cancel := context.WithTimeout(c.cycleCtx, c.opts.RequestTimeout)
	logger := c.log.With().Uint64("cycle", tok.cycle).Int("level", level).Logger()
	logger.Debug().Str("language", string(lang)).Msg("requesting question")

	c.opts.Spawn(func() {
		defer cancel()
		q, msg, err := c.fetch(ctx, lang, level, event)

		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.current(tok) {
			logger.Debug().Err(err).Msg("stale question discarded")
			return
		}
		if err == nil {
			err = c.session.Install(q, msg)
		}
		if err != nil {
			logger.Warn().Err(err).Msg("question acquisition failed")
			c.session.Fail(types.MessageLoadError)
			return
		}
		logger.Info().Str("difficulty", q.Difficulty).Msg("question ready")
	})
}

// fetch requests the question and its commentary together and waits for
// both.
func (c *Controller) fetch(ctx context.Context, lang types.Language, level int, event types.CommentaryEvent) (types.Question, string, error) {
	var (
		q   types.Question
		msg string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		q, err = c.gen.GenerateQuestion(gctx, lang, level)
		if err != nil {
			return fmt.Errorf("generate question: %w", err)
		}
		return q.Validate()
	})
	g.Go(func() error {
		var err error
		msg, err = c.gen.HostCommentary(gctx, event)
		if err != nil {
			return fmt.Errorf("host commentary %s: %w", event, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return types.Question{}, "", err
	}
	if strings.TrimSpace(msg) == "" {
		msg = types.MessageCommentaryFallback
	}
	return q, msg, nil
}

// commentaryLocked asks for a host line and hands it, or fallback on
// failure, to apply if the current cycle is still the one that asked.
func (c *Controller) commentaryLocked(event types.CommentaryEvent, fallback string, apply func(msg string)) {
	tok := c.token()
	ctx, cancel := context.WithTimeout(c.cycleCtx, c.opts.RequestTimeout)
	c.opts.Spawn(func() {
		defer cancel()
		msg, err := c.gen.HostCommentary(ctx, event)
		if err != nil || strings.TrimSpace(msg) == "" {
			c.log.Warn().Err(err).Str("event", string(event)).Msg("host commentary unavailable, using fallback")
			msg = fallback
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.current(tok) {
			c.log.Debug().Str("event", string(event)).Msg("stale commentary discarded")
			return
		}
		apply(msg)
	})
}
