package types

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the six languages a game can be played in.
type Language string

const (
	English    Language = "Inglês"
	Spanish    Language = "Espanhol"
	French     Language = "Francês"
	German     Language = "Alemão"
	Italian    Language = "Italiano"
	Portuguese Language = "Português (PT)"
)

// Languages lists the playable languages in menu order.
var Languages = []Language{English, Spanish, French, German, Italian, Portuguese}

var languageTags = map[Language]language.Tag{
	English:    language.English,
	Spanish:    language.Spanish,
	French:     language.French,
	German:     language.German,
	Italian:    language.Italian,
	Portuguese: language.EuropeanPortuguese,
}

var languageMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Spanish,
	language.French,
	language.German,
	language.Italian,
	language.EuropeanPortuguese,
})

var ErrUnknownLanguage = errors.New("unknown language")

// Tag returns the BCP 47 tag for the language.
func (l Language) Tag() language.Tag {
	return languageTags[l]
}

// Valid reports whether l is one of the playable languages.
func (l Language) Valid() bool {
	_, ok := languageTags[l]
	return ok
}

// ParseLanguage accepts either the display name ("Inglês") or a BCP 47 tag
// ("en", "pt-PT").
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrUnknownLanguage
	}
	for _, l := range Languages {
		if strings.EqualFold(string(l), s) {
			return l, nil
		}
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
	}
	_, idx, conf := languageMatcher.Match(tag)
	if conf == language.No {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
	}
	return Languages[idx], nil
}

// Difficulty labels as produced by the generator.
const (
	DifficultyEasy   = "fácil"
	DifficultyMedium = "médio"
	DifficultyHard   = "difícil"
	DifficultyExpert = "expert"
)

// DifficultyForLevel maps a zero-based level to its difficulty label.
func DifficultyForLevel(level int) string {
	switch {
	case level <= 5:
		return DifficultyEasy
	case level <= 10:
		return DifficultyMedium
	case level <= 15:
		return DifficultyHard
	default:
		return DifficultyExpert
	}
}

// OptionCount is the number of options every question carries.
const OptionCount = 4

// Question is a single multiple-choice question. It is never mutated after
// it has been received from a generator.
type Question struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
	Difficulty   string   `json:"difficulty"`
}

var ErrMalformedQuestion = errors.New("malformed question")

// Validate checks the question contract: non-empty text, exactly four
// non-empty options and a correct index pointing into them.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: empty text", ErrMalformedQuestion)
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("%w: %d options, want %d", ErrMalformedQuestion, len(q.Options), OptionCount)
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: option %d is empty", ErrMalformedQuestion, i)
		}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: correct index %d out of range", ErrMalformedQuestion, q.CorrectIndex)
	}
	return nil
}

// Clone returns a copy that shares no memory with q.
func (q Question) Clone() Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}

// Prizes is the prize ladder, lowest first.
var Prizes = [...]string{
	"R$ 1.000", "R$ 2.000", "R$ 3.000", "R$ 4.000", "R$ 5.000",
	"R$ 10.000", "R$ 20.000", "R$ 30.000", "R$ 40.000", "R$ 50.000",
	"R$ 100.000", "R$ 200.000", "R$ 300.000", "R$ 400.000", "R$ 500.000",
	"R$ 1 MILHÃO",
}

// PrizeCount is the number of tiers on the ladder.
const PrizeCount = len(Prizes)

// NoPrize is awarded when the first question is answered incorrectly.
const NoPrize = "R$ 0"

// Lifeline identifies one of the three player aids.
type Lifeline string

const (
	LifelineSkip   Lifeline = "skip"
	LifelineReveal Lifeline = "cards"
	LifelinePoll   Lifeline = "students"
)

// ParseLifeline maps a request value to a Lifeline.
func ParseLifeline(s string) (Lifeline, bool) {
	switch Lifeline(strings.ToLower(strings.TrimSpace(s))) {
	case LifelineSkip:
		return LifelineSkip, true
	case LifelineReveal, "reveal":
		return LifelineReveal, true
	case LifelinePoll, "poll":
		return LifelinePoll, true
	}
	return "", false
}

// CommentaryEvent is the moment the host is asked to comment on.
type CommentaryEvent string

const (
	CommentaryIntro     CommentaryEvent = "intro"
	CommentaryCorrect   CommentaryEvent = "correct"
	CommentaryIncorrect CommentaryEvent = "incorrect"
	CommentaryLifeline  CommentaryEvent = "lifeline"
)

// Effect is a side effect (sound cue) the presentation layer should play.
type Effect string

const (
	EffectSelect     Effect = "select"
	EffectCorrect    Effect = "correct"
	EffectIncorrect  Effect = "incorrect"
	EffectLifeline   Effect = "lifeline"
	EffectMusicStart Effect = "music_start"
	EffectMusicStop  Effect = "music_stop"
)

// Host messages used when no commentary is available.
const (
	MessageWelcome            = "Bem-vindo ao Show do Idioma! Escolha um idioma para começar."
	MessageLoading            = "Gerando nova questão..."
	MessageLoadError          = "Erro técnico ao carregar a questão. Tente novamente."
	MessageCommentaryFallback = "Vamos ver se você acerta!"
	MessageIncorrectFallback  = "Que pena! Não foi dessa vez."
	MessageLifelineFallback   = "Boa escolha! Use a ajuda com sabedoria."
	MessageWinner             = "PARABÉNS! VOCÊ É O NOVO MILIONÁRIO DOS IDIOMAS!"
)
