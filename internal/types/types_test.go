package types

import (
	"errors"
	"testing"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"Inglês", English},
		{"  inglês ", English},
		{"ALEMÃO", German},
		{"Português (PT)", Portuguese},
		{"en", English},
		{"en-US", English},
		{"es", Spanish},
		{"fr-CA", French},
		{"de-AT", German},
		{"it", Italian},
		{"pt-PT", Portuguese},
	}
	for _, tt := range tests {
		got, err := ParseLanguage(tt.in)
		if err != nil {
			t.Errorf("ParseLanguage(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseLanguageUnknown(t *testing.T) {
	for _, in := range []string{"", "ja", "Klingon!", "zh-Hant"} {
		if _, err := ParseLanguage(in); !errors.Is(err, ErrUnknownLanguage) {
			t.Errorf("ParseLanguage(%q) = %v, want ErrUnknownLanguage", in, err)
		}
	}
}

func TestLanguagesHaveTags(t *testing.T) {
	for _, l := range Languages {
		if !l.Valid() {
			t.Errorf("%q not valid", l)
		}
		back, err := ParseLanguage(l.Tag().String())
		if err != nil || back != l {
			t.Errorf("tag %s of %q parsed back to %q, %v", l.Tag(), l, back, err)
		}
	}
	if Language("Latim").Valid() {
		t.Error("Latim should not be valid")
	}
}

func validQuestion() Question {
	return Question{
		Text:         "Como se diz 'gato'?",
		Options:      []string{"cat", "dog", "cow", "owl"},
		CorrectIndex: 0,
	}
}

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *Question)
		ok     bool
	}{
		{"valid", func(*Question) {}, true},
		{"blank text", func(q *Question) { q.Text = "  " }, false},
		{"three options", func(q *Question) { q.Options = q.Options[:3] }, false},
		{"five options", func(q *Question) { q.Options = append(q.Options, "pig") }, false},
		{"empty option", func(q *Question) { q.Options[2] = "" }, false},
		{"negative index", func(q *Question) { q.CorrectIndex = -1 }, false},
		{"index too large", func(q *Question) { q.CorrectIndex = 4 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(&q)
			err := q.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate() = %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrMalformedQuestion) {
				t.Fatalf("Validate() = %v, want ErrMalformedQuestion", err)
			}
		})
	}
}

func TestQuestionClone(t *testing.T) {
	q := validQuestion()
	c := q.Clone()
	c.Options[0] = "changed"
	if q.Options[0] != "cat" {
		t.Error("Clone shares options with the original")
	}
}

func TestDifficultyForLevel(t *testing.T) {
	tests := map[int]string{
		0: DifficultyEasy, 5: DifficultyEasy,
		6: DifficultyMedium, 10: DifficultyMedium,
		11: DifficultyHard, 15: DifficultyHard,
		16: DifficultyExpert,
	}
	for level, want := range tests {
		if got := DifficultyForLevel(level); got != want {
			t.Errorf("DifficultyForLevel(%d) = %q, want %q", level, got, want)
		}
	}
}

func TestParseLifeline(t *testing.T) {
	tests := []struct {
		in   string
		want Lifeline
		ok   bool
	}{
		{"skip", LifelineSkip, true},
		{"SKIP", LifelineSkip, true},
		{"cards", LifelineReveal, true},
		{"reveal", LifelineReveal, true},
		{"students", LifelinePoll, true},
		{"poll", LifelinePoll, true},
		{"phone", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseLifeline(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLifeline(%q) = %q, %v", tt.in, got, ok)
		}
	}
}

func TestPrizeLadder(t *testing.T) {
	if PrizeCount != 16 {
		t.Fatalf("PrizeCount = %d, want 16", PrizeCount)
	}
	if Prizes[PrizeCount-1] != "R$ 1 MILHÃO" {
		t.Errorf("top prize = %q", Prizes[PrizeCount-1])
	}
}
