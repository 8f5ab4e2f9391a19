package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"stratiq-api/pkg/llm"
)

const defaultMaxTokens = 1200

// ErrEmptyResponse is returned when a message carries no text blocks.
var ErrEmptyResponse = errors.New("anthropic: response has no text content")

// Provider implements llm.Completer on the Anthropic Messages API.
type Provider struct {
	client sdk.Client
	model  string
	logger llm.Logger
}

var _ llm.Completer = (*Provider)(nil)

// Option customises a Provider.
type Option func(*providerOptions)

type providerOptions struct {
	httpClient *http.Client
	logger     llm.Logger
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *providerOptions) { o.httpClient = client }
}

// WithLogger injects a logger.
func WithLogger(logger llm.Logger) Option {
	return func(o *providerOptions) { o.logger = logger }
}

// NewProvider builds a Provider from the anthropic section of cfg.
func NewProvider(cfg *llm.Config, opts ...Option) (*Provider, error) {
	if cfg == nil {
		return nil, errors.New("anthropic: config cannot be nil")
	}
	ac := cfg.Anthropic
	if strings.TrimSpace(ac.APIKey) == "" {
		return nil, errors.New("anthropic: api key is required")
	}

	state := providerOptions{}
	for _, opt := range opts {
		opt(&state)
	}
	if state.logger == nil {
		state.logger = llm.NewLogger(cfg.LogLevel)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(ac.APIKey),
		option.WithMaxRetries(0),
	}
	if ac.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(ac.BaseURL))
	}
	if cfg.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(cfg.Timeout))
	}
	if state.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(state.httpClient))
	}

	return &Provider{
		client: sdk.NewClient(reqOpts...),
		model:  ac.Model,
		logger: state.logger,
	}, nil
}

// Complete sends the prompt pair as one user turn with a system block and
// joins the text blocks of the reply.
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	params := sdk.MessageNewParams{
		Model:       sdk.Model(p.model),
		MaxTokens:   int64(maxTokens),
		Messages:    []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(req.User))},
		Temperature: sdk.Float(req.Temperature),
	}
	if strings.TrimSpace(req.System) != "" {
		params.System = []sdk.TextBlockParam{{Text: req.System}}
	}

	start := time.Now()
	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		p.logger.Error(ctx, fmt.Errorf("anthropic: create message: %w", err), llm.Fields{"model": p.model})
		return "", fmt.Errorf("anthropic: create message: %w", err)
	}

	var parts []string
	for _, block := range msg.Content {
		if block.Type == "text" && block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	p.logger.Info(ctx, "anthropic message success", llm.Fields{
		"model":         p.model,
		"duration_ms":   time.Since(start).Milliseconds(),
		"input_tokens":  msg.Usage.InputTokens,
		"output_tokens": msg.Usage.OutputTokens,
		"stop_reason":   string(msg.StopReason),
	})
	if len(parts) == 0 {
		return "", ErrEmptyResponse
	}
	return strings.Join(parts, ""), nil
}

// Model returns the model id requests are sent with.
func (p *Provider) Model() string { return p.model }
