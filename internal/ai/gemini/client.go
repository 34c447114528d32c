package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/dkoval/interview-trainer/internal/ai"
	"github.com/dkoval/interview-trainer/internal/logger"
	"github.com/dkoval/interview-trainer/internal/util"
)

const (
	defaultModel        = "gemini-2.5-pro"
	defaultMaxLogLength = 200
)

// sleep is swapped out in tests to avoid waiting for real backoff delays.
var sleep = util.WaitFor

// contentGenerator is the slice of the GenAI SDK used by the client. Tests
// substitute a fake.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client calls the Gemini API through the Google GenAI SDK.
type Client struct {
	models     contentGenerator
	model      string
	maxRetries int
	maxLogLen  int
	logger     *zap.Logger
}

// Config holds the provider settings.
type Config struct {
	APIKey       string
	Model        string
	MaxRetries   int
	MaxLogLength int
}

// New creates a client configured for the Gemini API backend.
func New(ctx context.Context, cfg *Config, log *zap.Logger) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("gemini configuration is required")
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
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
		models:     client.Models,
		model:      model,
		maxRetries: maxRetries,
		maxLogLen:  maxLogLen,
		logger:     logger.WithFields(log, logger.CommonFields("gemini", model)...),
	}, nil
}

// GenerateChatCompletion sends the conversation to Gemini and returns the
// combined candidate text. Transient failures are retried with a linear
// backoff; exhausted retries surface as ai.ErrUpstream.
func (c *Client) GenerateChatCompletion(ctx context.Context, messages []ai.Message) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("at least one message is required")
	}

	contents := toContents(messages)

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		resp, err := c.models.GenerateContent(ctx, c.model, contents, nil)
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

		output := collectText(resp)
		if output == "" {
			return "", fmt.Errorf("%w: response is empty", ai.ErrUpstream)
		}

		c.logger.Debug("chat completion succeeded",
			zap.Int("attempt", attempt),
			zap.String("content_preview", util.TruncateForLog(output, c.maxLogLen)),
		)

		return output, nil
	}

	return "", fmt.Errorf("%w: %v", ai.ErrUpstream, lastErr)
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// toContents maps the provider-neutral conversation onto GenAI contents.
// System messages keep the user role since the Gemini API has no system
// turn in content history.
func toContents(messages []ai.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := genai.RoleUser
		if m.Role == ai.RoleAssistant {
			role = genai.RoleModel
		}

		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}

	return contents
}

func collectText(resp *genai.GenerateContentResponse) string {
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}

func retryable(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return true
	}

	return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
}

func backoff(attempt int) time.Duration {
	return time.Duration(attempt) * time.Second
}
