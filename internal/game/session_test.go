package game

import (
	"errors"
	"testing"

	"showdoidioma/internal/types"
)

func presentedSession(t *testing.T, level int) *Session {
	t.Helper()
	s := NewSession()
	if err := s.Begin(types.English); err != nil {
		t.Fatal(err)
	}
	for s.Level() < level {
		if err := s.Install(sampleQuestion(s.Level()), "ok"); err != nil {
			t.Fatal(err)
		}
		s.LockAnswer(s.question.CorrectIndex)
		s.RevealAnswer()
		s.Advance()
	}
	if err := s.Install(sampleQuestion(level), "ok"); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewSessionNotStarted(t *testing.T) {
	s := NewSession()
	if s.Stage() != StageNotStarted {
		t.Errorf("stage = %s", s.Stage())
	}
	if s.HostMessage() != types.MessageWelcome {
		t.Errorf("host message = %q", s.HostMessage())
	}
	if s.LockAnswer(0) || s.UseSkip() {
		t.Error("input accepted before start")
	}
}

func TestSessionStages(t *testing.T) {
	s := NewSession()
	steps := []struct {
		name string
		do   func() bool
		want Stage
	}{
		{"begin", func() bool { return s.Begin(types.English) == nil }, StageAwaitingQuestion},
		{"install", func() bool { return s.Install(sampleQuestion(0), "hi") == nil }, StagePresenting},
		{"lock", func() bool { return s.LockAnswer(0) }, StageAnswerLocked},
		{"reveal", func() bool { _, ok := s.RevealAnswer(); return ok }, StageFeedbackCorrect},
		{"advance", s.Advance, StageAwaitingQuestion},
		{"fail", func() bool { return s.Fail("err") }, StageLoadFailed},
		{"retry", s.Retry, StageAwaitingQuestion},
		{"install again", func() bool { return s.Install(sampleQuestion(1), "hi") == nil }, StagePresenting},
		{"lock wrong", func() bool { return s.LockAnswer(0) }, StageAnswerLocked},
		{"reveal wrong", func() bool { c, ok := s.RevealAnswer(); return ok && !c }, StageFeedbackIncorrect},
		{"lose", func() bool { return s.Lose("bye") }, StageLost},
	}
	for _, step := range steps {
		if !step.do() {
			t.Fatalf("%s: transition rejected at %s", step.name, s.Stage())
		}
		if s.Stage() != step.want {
			t.Fatalf("%s: stage = %s, want %s", step.name, s.Stage(), step.want)
		}
	}
}

func TestSessionRejectsOutOfOrderTransitions(t *testing.T) {
	s := presentedSession(t, 0)
	if s.Advance() {
		t.Error("advanced without an answer")
	}
	if s.Lose("x") {
		t.Error("lost without an answer")
	}
	if _, ok := s.RevealAnswer(); ok {
		t.Error("revealed without a locked answer")
	}
	if s.Fail("x") {
		t.Error("failed while presenting")
	}
	if err := s.Install(sampleQuestion(0), "x"); err == nil {
		t.Error("installed a second question over the first")
	}
	if s.LockAnswer(types.OptionCount) || s.LockAnswer(-1) {
		t.Error("accepted an out-of-range answer")
	}
	if err := s.Reset(); !errors.Is(err, ErrNotTerminal) {
		t.Errorf("Reset mid-game = %v", err)
	}
}

func TestInstallRejectsMalformedQuestion(t *testing.T) {
	s := NewSession()
	_ = s.Begin(types.English)
	err := s.Install(types.Question{Text: "q", Options: []string{"a", "b"}}, "x")
	if !errors.Is(err, types.ErrMalformedQuestion) {
		t.Fatalf("Install = %v, want ErrMalformedQuestion", err)
	}
	if s.Stage() != StageAwaitingQuestion {
		t.Errorf("stage = %s after rejected question", s.Stage())
	}
}

func TestInstallFillsDifficulty(t *testing.T) {
	s := presentedSession(t, 7)
	s.LockAnswer(s.question.CorrectIndex)
	s.RevealAnswer()
	s.Advance()
	q := sampleQuestion(8)
	q.Difficulty = ""
	if err := s.Install(q, "x"); err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot().Question.Difficulty; got != types.DifficultyMedium {
		t.Errorf("difficulty = %q, want %q", got, types.DifficultyMedium)
	}
}

func TestPrizeBelow(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{-1, types.NoPrize},
		{0, types.NoPrize},
		{1, "R$ 1.000"},
		{5, "R$ 5.000"},
		{15, "R$ 500.000"},
		{16, "R$ 1 MILHÃO"},
		{40, "R$ 1 MILHÃO"},
	}
	for _, tt := range tests {
		if got := PrizeBelow(tt.level); got != tt.want {
			t.Errorf("PrizeBelow(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := presentedSession(t, 0)
	s.UseReveal(nil)
	st := s.Snapshot()
	st.Question.Options[0] = "changed"
	st.Hidden[0] = 99
	again := s.Snapshot()
	if again.Question.Options[0] == "changed" || again.Hidden[0] == 99 {
		t.Error("snapshot shares memory with the session")
	}
}

func TestSnapshotPrizeTracksLevel(t *testing.T) {
	s := presentedSession(t, 3)
	if got := s.Snapshot().Prize; got != types.Prizes[3] {
		t.Errorf("prize = %q, want %q", got, types.Prizes[3])
	}
}

func TestResetAfterWin(t *testing.T) {
	s := presentedSession(t, types.PrizeCount-1)
	s.LockAnswer(s.question.CorrectIndex)
	if correct, ok := s.RevealAnswer(); !correct || !ok {
		t.Fatal("final answer not accepted")
	}
	if s.Stage() != StageWon || s.Level() != types.PrizeCount {
		t.Fatalf("stage=%s level=%d", s.Stage(), s.Level())
	}
	if s.Advance() {
		t.Error("advanced past the last level")
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset = %v", err)
	}
	if s.Stage() != StageNotStarted || s.Lifelines() != DefaultLifelines() {
		t.Errorf("reset left %s %+v", s.Stage(), s.Lifelines())
	}
}
