package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/dkoval/interview-trainer/internal/ai"
	"github.com/dkoval/interview-trainer/internal/logger"
	"github.com/dkoval/interview-trainer/internal/util"
)

const (
	defaultModel        = openai.GPT4oMini
	defaultMaxLogLength = 200
)

// sleep is swapped out in tests to avoid waiting for real backoff delays.
var sleep = util.WaitFor

// chatCompleter is the narrow slice of the OpenAI SDK used by the client.
// Tests substitute a fake.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client calls an OpenAI-compatible chat-completions API.
type Client struct {
	api        chatCompleter
	model      string
	maxRetries int
	maxLogLen  int
	logger     *zap.Logger
}

// Config holds the provider settings.
type Config struct {
	APIKey       string
	Model        string
	BaseURL      string
	MaxRetries   int
	MaxLogLength int
}

// New creates a client for the OpenAI API or any compatible endpoint when a
// base URL is configured.
func New(cfg *Config, log *zap.Logger) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("openai configuration is required")
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		clientCfg.BaseURL = base
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}

	maxLogLen := cfg.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	return &Client{
		api:        openai.NewClientWithConfig(clientCfg),
		model:      model,
		maxRetries: maxRetries,
		maxLogLen:  maxLogLen,
		logger:     logger.WithFields(log, logger.CommonFields("openai", model)...),
	}, nil
}

// GenerateChatCompletion sends the conversation upstream and returns the
// first choice's text. Transient failures are retried with a linear backoff;
// exhausted retries surface as ai.ErrUpstream.
func (c *Client) GenerateChatCompletion(ctx context.Context, messages []ai.Message) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("at least one message is required")
	}

	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: toChatMessages(messages),
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		resp, err := c.api.CreateChatCompletion(ctx, req)
		if err != nil {
			lastErr = err
			c.logger.Warn("chat completion attempt failed",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)

			if !retryable(err) || attempt == c.maxRetries {
				break
			}
			if waitErr := sleep(ctx, backoff(attempt)); waitErr != nil {
				return "", fmt.Errorf("%w: %v", ai.ErrUpstream, waitErr)
			}
			continue
		}

		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("%w: response contains no choices", ai.ErrUpstream)
		}

		content := strings.TrimSpace(resp.Choices[0].Message.Content)
		if content == "" {
			return "", fmt.Errorf("%w: response is empty", ai.ErrUpstream)
		}

		c.logger.Debug("chat completion succeeded",
			zap.Int("attempt", attempt),
			zap.String("content_preview", util.TruncateForLog(content, c.maxLogLen)),
		)

		return content, nil
	}

	return "", fmt.Errorf("%w: %v", ai.ErrUpstream, lastErr)
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

func toChatMessages(messages []ai.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	return out
}

// retryable reports whether the error is worth another attempt: rate limits
// and server-side failures. Network-level errors get one more try too.
func retryable(err error) bool {
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		return true
	}

	return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= http.StatusInternalServerError
}

func backoff(attempt int) time.Duration {
	return time.Duration(attempt) * time.Second
}
