// Package analysis provides the vision-analysis collaborator behind the
// cascade's auto branch: an OpenAI-backed client that describes reference
// images, plus a recorder for call observability and mock helpers for
// tests. The cascade only sees a plain function; everything here is
// replaceable.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	defaultModel      = "gpt-4o-mini"
	defaultTimeout    = 60 * time.Second
	defaultMaxRetries = 3
	defaultRetryDelay = 2 * time.Second
)

// ClientConfig holds configuration for the vision analysis client.
type ClientConfig struct {
	APIKey     string
	Model      string        // default: gpt-4o-mini
	BaseURL    string        // optional (tests, proxies)
	Timeout    time.Duration // per-call timeout
	MaxRetries int           // transport retry attempts
	RetryDelay time.Duration // base delay between retries
	Recorder   *Recorder     // optional call recorder
	Logger     *slog.Logger
}

// Client calls a vision-capable model with reference images and an
// analysis instruction, returning the raw text response. Transport
// retries live here, not in the cascade.
type Client struct {
	client     openai.Client
	model      string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	recorder   *Recorder
	logger     *slog.Logger
}

// NewClient creates a vision analysis client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		client:     openai.NewClient(opts...),
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		recorder:   cfg.Recorder,
		logger:     cfg.Logger,
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Analyze sends the instruction plus reference images (URLs or data URLs)
// and returns the raw text response. Satisfies the cascade's AnalyzeFunc
// contract as a method value.
func (c *Client) Analyze(ctx context.Context, images []string, instruction string) (string, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(images)+1)
	parts = append(parts, openai.TextContentPart(instruction))
	for _, img := range images {
		parts = append(parts, openai.ImageContentPart(
			openai.ChatCompletionContentPartImageImageURLParam{URL: img},
		))
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(parts),
		},
	}

	var content string
	err := retry.Do(
		func() error {
			resp, err := c.client.Chat.Completions.New(ctx, params)
			if err != nil {
				return err
			}
			if len(resp.Choices) == 0 {
				return fmt.Errorf("vision model returned no choices")
			}
			content = resp.Choices[0].Message.Content
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries)),
		retry.Delay(c.retryDelay),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("vision analysis retry", "attempt", n+1, "error", err)
		}),
	)

	c.record(CallRecord{
		Model:       c.model,
		Instruction: len(instruction),
		Images:      len(images),
		Duration:    time.Since(start),
		OK:          err == nil,
		Error:       errString(err),
	})

	if err != nil {
		return "", fmt.Errorf("vision analysis failed: %w", err)
	}
	return content, nil
}

func (c *Client) record(rec CallRecord) {
	if c.recorder != nil {
		c.recorder.Record(rec)
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
