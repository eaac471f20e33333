// Package game holds the Show do Idioma rules: the Session state machine and
// the Controller that drives it from question generation, timers and player
// input.
package game

import (
	"errors"
	"fmt"
	"slices"

	"showdoidioma/internal/types"
)

var (
	ErrNotTerminal    = errors.New("game is not over")
	ErrAlreadyStarted = errors.New("game already started")
)

// Phase is the coarse position of a session in its lifecycle.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseAwaitingQuestion
	PhaseLoadFailed
	PhaseInPlay
	PhaseWon
	PhaseLost
)

var phaseNames = [...]string{"not_started", "awaiting_question", "load_failed", "in_play", "won", "lost"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// AnswerState tracks the answer for the question on display.
type AnswerState int

const (
	Unanswered AnswerState = iota
	SelectedPending
	RevealedCorrect
	RevealedIncorrect
)

var answerStateNames = [...]string{"unanswered", "selected_pending", "revealed_correct", "revealed_incorrect"}

func (a AnswerState) String() string {
	if int(a) < len(answerStateNames) {
		return answerStateNames[a]
	}
	return fmt.Sprintf("answer(%d)", int(a))
}

// Stage is the combined Phase x AnswerState, named the way players see it.
type Stage string

const (
	StageNotStarted        Stage = "not_started"
	StageAwaitingQuestion  Stage = "awaiting_question"
	StageLoadFailed        Stage = "load_failed"
	StagePresenting        Stage = "presenting"
	StageAnswerLocked      Stage = "answer_locked"
	StageFeedbackCorrect   Stage = "feedback_correct"
	StageFeedbackIncorrect Stage = "feedback_incorrect"
	StageWon               Stage = "won"
	StageLost              Stage = "lost"
)

// Outcome is how a finished game ended.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
)

// DefaultSkips is the skip budget a new game starts with.
const DefaultSkips = 3

// Lifelines is the per-session lifeline inventory.
type Lifelines struct {
	Skip   int  `json:"skip"`
	Reveal bool `json:"cards"`
	Poll   bool `json:"students"`
}

// DefaultLifelines returns a full inventory.
func DefaultLifelines() Lifelines {
	return Lifelines{Skip: DefaultSkips, Reveal: true, Poll: true}
}

// Session is the canonical state of one play-through. All transition methods
// report whether they were applied; an illegal call leaves the session
// untouched.
type Session struct {
	language    types.Language
	level       int
	score       int
	lifelines   Lifelines
	phase       Phase
	question    *types.Question
	answer      AnswerState
	selected    int
	hidden      []int
	poll        []int
	outcome     Outcome
	finalPrize  string
	hostMessage string
}

// NewSession returns a session in the NotStarted state.
func NewSession() *Session {
	return &Session{
		lifelines:   DefaultLifelines(),
		selected:    -1,
		hostMessage: types.MessageWelcome,
	}
}

// Begin resets the session for lang and moves it to AwaitingQuestion for
// level 0.
func (s *Session) Begin(lang types.Language) error {
	if s.phase != PhaseNotStarted {
		return ErrAlreadyStarted
	}
	s.language = lang
	s.level = 0
	s.score = 0
	s.lifelines = DefaultLifelines()
	s.outcome = OutcomeNone
	s.finalPrize = ""
	s.awaitQuestion()
	return nil
}

func (s *Session) awaitQuestion() {
	s.phase = PhaseAwaitingQuestion
	s.question = nil
	s.clearQuestionMarks()
}

func (s *Session) clearQuestionMarks() {
	s.answer = Unanswered
	s.selected = -1
	s.hidden = nil
	s.poll = nil
}

// Install puts q on display. Only legal while a question is awaited; a
// question that breaks its contract is rejected.
func (s *Session) Install(q types.Question, hostMessage string) error {
	if s.phase != PhaseAwaitingQuestion {
		return fmt.Errorf("install question: unexpected phase %s", s.phase)
	}
	if err := q.Validate(); err != nil {
		return err
	}
	if q.Difficulty == "" {
		q.Difficulty = types.DifficultyForLevel(s.level)
	}
	q = q.Clone()
	s.question = &q
	s.clearQuestionMarks()
	s.phase = PhaseInPlay
	s.hostMessage = hostMessage
	return nil
}

// Fail records a failed acquisition. The session stays out of play until
// Retry.
func (s *Session) Fail(hostMessage string) bool {
	if s.phase != PhaseAwaitingQuestion {
		return false
	}
	s.phase = PhaseLoadFailed
	s.hostMessage = hostMessage
	return true
}

// Retry moves a failed session back to AwaitingQuestion for the same level.
func (s *Session) Retry() bool {
	if s.phase != PhaseLoadFailed {
		return false
	}
	s.awaitQuestion()
	return true
}

func (s *Session) presenting() bool {
	return s.phase == PhaseInPlay && s.question != nil && s.answer == Unanswered
}

// LockAnswer records index as the player's answer.
func (s *Session) LockAnswer(index int) bool {
	if !s.presenting() {
		return false
	}
	if index < 0 || index >= len(s.question.Options) {
		return false
	}
	if slices.Contains(s.hidden, index) {
		return false
	}
	s.selected = index
	s.answer = SelectedPending
	return true
}

// RevealAnswer evaluates the locked answer. A correct answer on the last
// level wins the game outright.
func (s *Session) RevealAnswer() (correct bool, ok bool) {
	if s.phase != PhaseInPlay || s.answer != SelectedPending {
		return false, false
	}
	correct = s.selected == s.question.CorrectIndex
	if !correct {
		s.answer = RevealedIncorrect
		return false, true
	}
	s.answer = RevealedCorrect
	s.score++
	if s.level+1 >= types.PrizeCount {
		s.level = types.PrizeCount
		s.phase = PhaseWon
		s.outcome = OutcomeWon
		s.finalPrize = types.Prizes[types.PrizeCount-1]
		s.hostMessage = types.MessageWinner
	}
	return true, true
}

// Advance moves past a correctly answered question to the next level.
func (s *Session) Advance() bool {
	if s.phase != PhaseInPlay || s.answer != RevealedCorrect {
		return false
	}
	s.level++
	s.awaitQuestion()
	return true
}

// Lose ends the game after an incorrect answer. The prize is the last level
// cleared.
func (s *Session) Lose(hostMessage string) bool {
	if s.phase != PhaseInPlay || s.answer != RevealedIncorrect {
		return false
	}
	s.phase = PhaseLost
	s.outcome = OutcomeLost
	s.finalPrize = PrizeBelow(s.level)
	s.hostMessage = hostMessage
	return true
}

// PrizeBelow returns the prize for the level under level, or NoPrize.
func PrizeBelow(level int) string {
	if level <= 0 {
		return types.NoPrize
	}
	if level > types.PrizeCount {
		level = types.PrizeCount
	}
	return types.Prizes[level-1]
}

// UseSkip spends one skip and discards the question on display.
func (s *Session) UseSkip() bool {
	if !s.presenting() || s.lifelines.Skip <= 0 {
		return false
	}
	s.lifelines.Skip--
	s.awaitQuestion()
	return true
}

// UseReveal hides two wrong options picked by pick and spends the lifeline.
func (s *Session) UseReveal(pick func(wrong []int, n int) []int) ([]int, bool) {
	if !s.presenting() || !s.lifelines.Reveal {
		return nil, false
	}
	s.hidden = revealWrongOptions(s.question.CorrectIndex, pick)
	s.lifelines.Reveal = false
	return append([]int(nil), s.hidden...), true
}

// UsePoll synthesizes the audience distribution and spends the lifeline.
func (s *Session) UsePoll(rng Rand) ([]int, bool) {
	if !s.presenting() || !s.lifelines.Poll {
		return nil, false
	}
	s.poll = pollDistribution(s.question.CorrectIndex, rng)
	s.lifelines.Poll = false
	return append([]int(nil), s.poll...), true
}

// Reset discards everything and returns to NotStarted. Only legal once the
// game is over.
func (s *Session) Reset() error {
	if !s.Terminal() {
		return ErrNotTerminal
	}
	*s = *NewSession()
	return nil
}

// SetHostMessage replaces the host line.
func (s *Session) SetHostMessage(msg string) {
	s.hostMessage = msg
}

// Terminal reports whether the game is over.
func (s *Session) Terminal() bool {
	return s.phase == PhaseWon || s.phase == PhaseLost
}

// Stage names the current combined state.
func (s *Session) Stage() Stage {
	switch s.phase {
	case PhaseNotStarted:
		return StageNotStarted
	case PhaseAwaitingQuestion:
		return StageAwaitingQuestion
	case PhaseLoadFailed:
		return StageLoadFailed
	case PhaseWon:
		return StageWon
	case PhaseLost:
		return StageLost
	}
	switch s.answer {
	case SelectedPending:
		return StageAnswerLocked
	case RevealedCorrect:
		return StageFeedbackCorrect
	case RevealedIncorrect:
		return StageFeedbackIncorrect
	}
	return StagePresenting
}

func (s *Session) Phase() Phase             { return s.phase }
func (s *Session) Level() int               { return s.level }
func (s *Session) Language() types.Language { return s.language }
func (s *Session) Lifelines() Lifelines     { return s.lifelines }
func (s *Session) HostMessage() string      { return s.hostMessage }

// State is a point-in-time copy of a session, safe to hand to renderers.
type State struct {
	Stage       Stage           `json:"stage"`
	Phase       Phase           `json:"-"`
	Language    types.Language  `json:"language,omitempty"`
	Level       int             `json:"level"`
	Score       int             `json:"score"`
	Prize       string          `json:"prize"`
	Lifelines   Lifelines       `json:"lifelines"`
	Question    *types.Question `json:"question,omitempty"`
	Answer      AnswerState     `json:"-"`
	Selected    int             `json:"selected"`
	Hidden      []int           `json:"hidden,omitempty"`
	Poll        []int           `json:"poll,omitempty"`
	Loading     bool            `json:"loading"`
	Terminal    bool            `json:"terminal"`
	Outcome     Outcome         `json:"outcome,omitempty"`
	FinalPrize  string          `json:"finalPrize,omitempty"`
	HostMessage string          `json:"hostMessage"`
}

// Snapshot copies the session into a State.
func (s *Session) Snapshot() State {
	st := State{
		Stage:       s.Stage(),
		Phase:       s.phase,
		Language:    s.language,
		Level:       s.level,
		Score:       s.score,
		Prize:       types.Prizes[min(s.level, types.PrizeCount-1)],
		Lifelines:   s.lifelines,
		Answer:      s.answer,
		Selected:    s.selected,
		Hidden:      append([]int(nil), s.hidden...),
		Poll:        append([]int(nil), s.poll...),
		Loading:     s.phase == PhaseAwaitingQuestion,
		Terminal:    s.Terminal(),
		Outcome:     s.outcome,
		FinalPrize:  s.finalPrize,
		HostMessage: s.hostMessage,
	}
	if s.question != nil {
		q := s.question.Clone()
		st.Question = &q
	}
	return st
}
