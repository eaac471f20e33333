package game

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"

	"showdoidioma/internal/types"
)

var errUnavailable = errors.New("service unavailable")

type questionCall struct {
	lang  types.Language
	level int
}

// fakeGenerator answers immediately. Its question and commentary hooks can
// be swapped per test.
type fakeGenerator struct {
	mu              sync.Mutex
	question        func(level int) (types.Question, error)
	commentary      func(event types.CommentaryEvent) (string, error)
	questionCalls   []questionCall
	commentaryCalls []types.CommentaryEvent
}

func newFakeGenerator() *fakeGenerator {
	return &fakeGenerator{
		question: func(level int) (types.Question, error) {
			return sampleQuestion(level), nil
		},
		commentary: func(event types.CommentaryEvent) (string, error) {
			return "host: " + string(event), nil
		},
	}
}

func (f *fakeGenerator) GenerateQuestion(_ context.Context, lang types.Language, level int) (types.Question, error) {
	f.mu.Lock()
	f.questionCalls = append(f.questionCalls, questionCall{lang: lang, level: level})
	fn := f.question
	f.mu.Unlock()
	return fn(level)
}

func (f *fakeGenerator) HostCommentary(_ context.Context, event types.CommentaryEvent) (string, error) {
	f.mu.Lock()
	f.commentaryCalls = append(f.commentaryCalls, event)
	fn := f.commentary
	f.mu.Unlock()
	return fn(event)
}

func (f *fakeGenerator) setQuestion(fn func(level int) (types.Question, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.question = fn
}

func (f *fakeGenerator) setCommentary(fn func(event types.CommentaryEvent) (string, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commentary = fn
}

func (f *fakeGenerator) commentaryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.commentaryCalls)
}

func (f *fakeGenerator) calls() []questionCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]questionCall(nil), f.questionCalls...)
}

// sampleQuestion puts the correct answer at level%4 so tests can tell
// questions for different levels apart.
func sampleQuestion(level int) types.Question {
	return types.Question{
		Text:         fmt.Sprintf("Pergunta %d", level),
		Options:      []string{"a", "b", "c", "d"},
		CorrectIndex: level % types.OptionCount,
		Explanation:  "porque sim",
		Difficulty:   types.DifficultyForLevel(level),
	}
}

// queueSpawner holds async work until the test runs it, which lets tests
// choose the order results land in.
type queueSpawner struct {
	mu   sync.Mutex
	work []func()
}

func (q *queueSpawner) spawn(f func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.work = append(q.work, f)
}

func (q *queueSpawner) pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, f := range q.work {
		if f != nil {
			n++
		}
	}
	return n
}

// take removes and returns the i-th queued job, counting every job ever
// queued.
func (q *queueSpawner) take(i int) func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	f := q.work[i]
	q.work[i] = nil
	return f
}

func (q *queueSpawner) queued() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.work)
}

// drain runs queued work in order, including work queued while draining.
func (q *queueSpawner) drain() {
	for {
		q.mu.Lock()
		var next func()
		for i, f := range q.work {
			if f != nil {
				next = f
				q.work[i] = nil
				break
			}
		}
		q.mu.Unlock()
		if next == nil {
			return
		}
		next()
	}
}

type recordingEffects struct {
	mu      sync.Mutex
	effects []types.Effect
}

func (r *recordingEffects) Play(e types.Effect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects = append(r.effects, e)
}

func (r *recordingEffects) count(e types.Effect) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, x := range r.effects {
		if x == e {
			n++
		}
	}
	return n
}

// seqRand returns its values in a loop.
type seqRand struct {
	values []int
	i      int
}

func (s *seqRand) IntN(n int) int {
	v := s.values[s.i%len(s.values)]
	s.i++
	if v >= n {
		return n - 1
	}
	return v
}

type harness struct {
	t     *testing.T
	c     *Controller
	gen   *fakeGenerator
	clock *ManualScheduler
	spawn *queueSpawner
	fx    *recordingEffects
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:     t,
		gen:   newFakeGenerator(),
		clock: NewManualScheduler(),
		spawn: &queueSpawner{},
		fx:    &recordingEffects{},
	}
	h.c = NewController(h.gen, Options{
		Scheduler: h.clock,
		Effects:   h.fx,
		Spawn:     h.spawn.spawn,
	})
	return h
}

func (h *harness) start(lang types.Language) {
	h.t.Helper()
	if err := h.c.Start(lang); err != nil {
		h.t.Fatalf("Start(%q) failed: %v", lang, err)
	}
	h.spawn.drain()
}

func (h *harness) state() State {
	return h.c.Snapshot()
}

func (h *harness) expectStage(want Stage) State {
	h.t.Helper()
	st := h.state()
	if st.Stage != want {
		h.t.Fatalf("stage = %s, want %s (host: %q)", st.Stage, want, st.HostMessage)
	}
	return st
}

// answer submits index and lets the settle delay pass.
func (h *harness) answer(index int) {
	h.t.Helper()
	h.c.SubmitAnswer(index)
	h.clock.Advance(DefaultSettleDelay)
	h.spawn.drain()
}

// answerCorrectly answers the question on display correctly and waits for
// the next one to load.
func (h *harness) answerCorrectly() {
	h.t.Helper()
	st := h.expectStage(StagePresenting)
	h.answer(st.Question.CorrectIndex)
	h.clock.Advance(DefaultAdvanceDelay)
	h.spawn.drain()
}

func (h *harness) playToLevel(level int) {
	h.t.Helper()
	for h.state().Level < level {
		h.answerCorrectly()
	}
	h.expectStage(StagePresenting)
}

// wrongIndex returns a wrong option that is still visible.
func wrongIndex(st State) int {
	for i := range types.OptionCount {
		if i != st.Question.CorrectIndex && !slices.Contains(st.Hidden, i) {
			return i
		}
	}
	return -1
}
