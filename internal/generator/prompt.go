// Package generator produces questions and host commentary, either from an
// OpenAI-compatible chat completion service or from a built-in bank.
package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"showdoidioma/internal/types"
)

// ErrEmptyResponse is returned when the service answers without content.
var ErrEmptyResponse = errors.New("empty response from generation service")

const systemPrompt = `Você gera conteúdo para um game show de idiomas estilo 'Show do Milhão'. Responda somente com o que for pedido, sem markdown.`

func questionPrompt(lang types.Language, level int) string {
	return fmt.Sprintf(`Gere uma pergunta de múltipla escolha para aprender o idioma %[1]s.
O nível de dificuldade é %[2]s (Questão número %[3]d de %[4]d).
A pergunta deve focar em gramática, vocabulário ou expressões comuns.
O texto da pergunta deve estar em Português, mas as opções e o conteúdo gramatical devem ser no idioma %[1]s.
Forneça uma explicação curta do porquê a resposta está correta.
Responda apenas com um objeto JSON no formato:
{"text": "enunciado", "options": ["4 opções"], "correctIndex": 0, "explanation": "explicação", "difficulty": "%[2]s"}`,
		lang, types.DifficultyForLevel(level), level+1, types.PrizeCount)
}

func commentaryPrompt(event types.CommentaryEvent) string {
	return fmt.Sprintf(`Você é o apresentador de um game show de idiomas estilo 'Show do Milhão'.
Gere uma frase curta e carismática para o momento: %s. Seja encorajador e divertido.`, event)
}

// parseQuestion decodes a question from model output, tolerating a markdown
// code fence around the JSON.
func parseQuestion(content string, level int) (types.Question, error) {
	body := stripFence(content)
	if body == "" {
		return types.Question{}, ErrEmptyResponse
	}
	var q types.Question
	if err := json.Unmarshal([]byte(body), &q); err != nil {
		return types.Question{}, fmt.Errorf("%w: decode: %v", types.ErrMalformedQuestion, err)
	}
	if q.Difficulty == "" {
		q.Difficulty = types.DifficultyForLevel(level)
	}
	return q, nil
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
