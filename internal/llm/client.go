// Package llm wraps the OpenAI chat-completions API behind the small client
// surface the coach needs: one synchronous prompt in, one text response out.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"
)

var (
	// ErrUnavailable indicates the model endpoint could not be reached or
	// refused the request (network or auth failure).
	ErrUnavailable = errors.New("model unavailable")

	// ErrEmptyResponse indicates the model returned no content.
	ErrEmptyResponse = errors.New("model returned empty response")
)

// Client generates text from a prompt.
type Client interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

type openAIClient struct {
	client  openai.Client
	model   string
	timeout time.Duration
	log     zerolog.Logger
}

// New creates a Client backed by the OpenAI API.
func New(apiKey, model string, timeout time.Duration, log zerolog.Logger) Client {
	return &openAIClient{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		timeout: timeout,
		log:     log,
	}
}

func (c *openAIClient) Generate(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.log.Debug().
		Str("model", c.model).
		Dur("latency", time.Since(start)).
		Msg("chat completion")

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return completion.Choices[0].Message.Content, nil
}
