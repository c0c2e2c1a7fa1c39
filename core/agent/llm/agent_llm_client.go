package llm

import (
	"context"
	"errors"
	"net"
	"time"
	"unicode/utf8"

	"agent_server/pkg/apperr"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
)

const DefaultModel = "gpt-4o-mini"

// Client is the enrichment client: a thin adapter over the OpenAI chat
// completion API. Responses are never cached; every call is a fresh
// round trip because email content and prompts change between calls.
type Client struct {
	client          *openai.Client
	model           string
	maxTokens       int
	temperature     float32
	timeout         time.Duration
	maxContentChars int
	cb              *gobreaker.CircuitBreaker
	log             zerolog.Logger
}

// ClientConfig holds client construction parameters.
type ClientConfig struct {
	APIKey          string
	BaseURL         string // optional override, e.g. a self-hosted gateway
	Model           string
	MaxTokens       int
	Temperature     float64
	Timeout         time.Duration
	MaxContentChars int
}

// NewClient creates a new enrichment client.
func NewClient(cfg ClientConfig, log zerolog.Logger) *Client {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2048
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.7
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	maxContentChars := cfg.MaxContentChars
	if maxContentChars == 0 {
		maxContentChars = 6000
	}

	openaiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		openaiCfg.BaseURL = cfg.BaseURL
	}

	clientLog := log.With().Str("component", "llm_client").Logger()

	cbSettings := gobreaker.Settings{
		Name:        "openai",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures > 5 ||
				(counts.Requests >= 10 && failureRatio >= 0.6)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			clientLog.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
		IsSuccessful: func(err error) bool {
			// Permanent failures are the caller's problem, not the
			// service's health; only transient failures trip the breaker.
			return err == nil || apperr.IsPermanent(err)
		},
	}

	return &Client{
		client:          openai.NewClientWithConfig(openaiCfg),
		model:           model,
		maxTokens:       maxTokens,
		temperature:     float32(temperature),
		timeout:         timeout,
		maxContentChars: maxContentChars,
		cb:              gobreaker.NewCircuitBreaker(cbSettings),
		log:             clientLog,
	}
}

// Complete sends one instruction plus content to the model and returns
// the raw output. Content longer than the configured limit is cut to
// its head rather than sent as a request guaranteed to fail.
func (c *Client) Complete(ctx context.Context, instruction, content string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	content = TruncateContent(content, c.maxContentChars)

	result, err := c.cb.Execute(func() (interface{}, error) {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.model,
			MaxTokens:   c.maxTokens,
			Temperature: c.temperature,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: instruction,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: content,
				},
			},
		})
		if err != nil {
			return "", classifyError(err)
		}
		if len(resp.Choices) == 0 {
			return "", nil
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", apperr.Transient("openai", err)
		}
		return "", err
	}

	return result.(string), nil
}

// classifyError maps transport and API errors onto the transient vs
// permanent taxonomy. Rate limits, server errors and network failures
// are retryable; malformed requests and auth failures are not.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500:
			return apperr.Transient("openai", err)
		case apiErr.HTTPStatusCode == 400 || apiErr.HTTPStatusCode == 401 ||
			apiErr.HTTPStatusCode == 403 || apiErr.HTTPStatusCode == 404:
			return apperr.Permanent("openai", err)
		}
		return apperr.Transient("openai", err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode == 429 || reqErr.HTTPStatusCode >= 500 {
			return apperr.Transient("openai", err)
		}
		return apperr.Permanent("openai", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return apperr.Transient("openai", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Transient("openai", err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	return apperr.Transient("openai", err)
}

// TruncateContent keeps the first maxLen bytes of content, backing up
// to a rune boundary so a multi-byte character is never split. Most
// actionable information in an email appears early in the body.
func TruncateContent(content string, maxLen int) string {
	if maxLen <= 0 || len(content) <= maxLen {
		return content
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut]
}
