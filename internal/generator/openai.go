package generator

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"

	"showdoidioma/internal/types"
)

const DefaultModel = "gemini-2.5-flash"

// Options configures a Client.
type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	// MaxRetries is how often a failed request is retried.
	MaxRetries int
	Logger     *zerolog.Logger
}

// Client talks to an OpenAI-compatible chat completion endpoint.
type Client struct {
	api   openai.Client
	model string
	log   zerolog.Logger
}

// New builds a Client.
func New(opts Options) *Client {
	reqOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}
	reqOpts = append(reqOpts, option.WithMaxRetries(max(opts.MaxRetries, 0)))
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Client{
		api:   openai.NewClient(reqOpts...),
		model: model,
		log:   logger.With().Str("component", "generator").Str("model", model).Logger(),
	}
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateQuestion asks the service for a question in lang at level.
func (c *Client) GenerateQuestion(ctx context.Context, lang types.Language, level int) (types.Question, error) {
	content, err := c.complete(ctx, questionPrompt(lang, level))
	if err != nil {
		c.log.Warn().Err(err).Str("language", string(lang)).Int("level", level).Msg("question request failed")
		return types.Question{}, fmt.Errorf("generate question: %w", err)
	}
	q, err := parseQuestion(content, level)
	if err != nil {
		c.log.Warn().Err(err).Int("level", level).Msg("unusable question payload")
		return types.Question{}, fmt.Errorf("generate question: %w", err)
	}
	c.log.Debug().Str("language", string(lang)).Int("level", level).Msg("question generated")
	return q, nil
}

// HostCommentary asks the service for a one-line host remark. Blank output is
// replaced with the stock line.
func (c *Client) HostCommentary(ctx context.Context, event types.CommentaryEvent) (string, error) {
	content, err := c.complete(ctx, commentaryPrompt(event))
	if err != nil {
		c.log.Warn().Err(err).Str("event", string(event)).Msg("commentary request failed")
		return "", fmt.Errorf("host commentary: %w", err)
	}
	if text := strings.TrimSpace(content); text != "" {
		return text, nil
	}
	return types.MessageCommentaryFallback, nil
}
