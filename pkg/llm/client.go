package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// ErrNoChoices is returned when the provider answers without any completion.
var ErrNoChoices = errors.New("llm: empty completion")

var errNoMessages = errors.New("llm: request requires at least one message")

// Client sends strategy prompts to an OpenAI-compatible chat endpoint.
type Client struct {
	cfg  *Config
	api  *openai.Client
	log  Logger
	http *http.Client
}

var _ Completer = (*Client)(nil)

// ClientOption customises a Client before its SDK handle is built.
type ClientOption func(*Client)

// WithLogger replaces the logx-backed logger.
func WithLogger(logger Logger) ClientOption {
	return func(c *Client) { c.log = logger }
}

// WithHTTPClient routes requests through client, e.g. a recorder transport.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) { c.http = client }
}

// NewClient validates cfg and builds a client. SDK retries are off: the
// generator falls back to canned content rather than waiting on a retry.
func NewClient(cfg *Config, opts ...ClientOption) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("llm: config cannot be nil")
	}
	own := cfg.Clone()
	if err := own.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(own.APIKey) == "" {
		return nil, errors.New("llm: api key is required")
	}

	c := &Client{cfg: own}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = NewLogger(own.LogLevel)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(own.APIKey),
		option.WithBaseURL(own.BaseURL),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(own.Timeout),
	}
	if own.Project != "" {
		reqOpts = append(reqOpts, option.WithProject(own.Project))
	}
	if c.http != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(c.http))
	}
	api := openai.NewClient(reqOpts...)
	c.api = &api
	return c, nil
}

// Complete runs one system/user exchange and returns the first choice.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	temp := req.Temperature
	chat := &ChatRequest{
		Messages:    []Message{{Role: "system", Content: req.System}, {Role: "user", Content: req.User}},
		Temperature: &temp,
	}
	if req.MaxTokens > 0 {
		limit := req.MaxTokens
		chat.MaxTokens = &limit
	}
	if req.JSON {
		chat.ResponseFormat = &ResponseFormat{Type: "json_object"}
	}

	resp, err := c.Chat(ctx, chat)
	switch {
	case err != nil:
		return "", err
	case len(resp.Choices) == 0:
		return "", ErrNoChoices
	}
	return resp.Text(), nil
}

// Chat performs a single completion request.
func (c *Client) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if req == nil {
		return nil, errors.New("llm: request cannot be nil")
	}
	if len(req.Messages) == 0 {
		return nil, errNoMessages
	}

	model := c.modelFor(req.Model)
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: toSDKMessages(req.Messages),
	}
	if err := applyFormat(&params, req.ResponseFormat); err != nil {
		return nil, err
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}
	if req.MaxTokens != nil {
		params.MaxCompletionTokens = openai.Int(int64(*req.MaxTokens))
	}
	return c.send(ctx, model, len(req.Messages), params)
}

func (c *Client) send(ctx context.Context, model string, n int, params openai.ChatCompletionNewParams) (*ChatResponse, error) {
	began := time.Now()
	c.log.Debug(ctx, "llm chat request", Fields{"model": model, "messages": n})

	out, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		c.log.Error(ctx, fmt.Errorf("chat completion failed: %w", err), Fields{"model": model})
		return nil, err
	}

	resp := fromSDK(out)
	c.log.Info(ctx, "llm chat success", Fields{
		"model":             model,
		"duration_ms":       time.Since(began).Milliseconds(),
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
	})
	return resp, nil
}

// modelFor maps an alias (or the configured default) to a provider model id.
func (c *Client) modelFor(alias string) string {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		alias = c.cfg.DefaultModel
	}
	mc, _ := c.cfg.Model(alias)
	return ResolveModelID(alias, mc)
}

// GetConfig returns a copy of the client configuration.
func (c *Client) GetConfig() *Config { return c.cfg.Clone() }

// Close drops idle connections on an injected HTTP client.
func (c *Client) Close() error {
	if c.http != nil {
		c.http.CloseIdleConnections()
	}
	return nil
}

// toSDKMessages drops blank system messages; unknown roles are sent as user.
func toSDKMessages(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		role := strings.ToLower(m.Role)
		if role == "system" {
			if strings.TrimSpace(m.Content) != "" {
				out = append(out, openai.SystemMessage(m.Content))
			}
			continue
		}
		if role == "assistant" {
			out = append(out, openai.ChatCompletionMessageParamOfAssistant(m.Content))
			continue
		}
		user := openai.UserMessage(m.Content)
		if m.Name != "" && user.OfUser != nil {
			user.OfUser.Name = openai.String(m.Name)
		}
		out = append(out, user)
	}
	return out
}

func applyFormat(params *openai.ChatCompletionNewParams, f *ResponseFormat) error {
	if f == nil {
		return nil
	}
	switch strings.ToLower(f.Type) {
	case "", "text":
		return nil
	case "json_object":
		obj := shared.NewResponseFormatJSONObjectParam()
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{OfJSONObject: &obj}
		return nil
	default:
		return fmt.Errorf("llm: unsupported response format %q", f.Type)
	}
}

func fromSDK(in *openai.ChatCompletion) *ChatResponse {
	if in == nil {
		return &ChatResponse{}
	}
	resp := &ChatResponse{
		ID:      in.ID,
		Model:   in.Model,
		Created: in.Created,
		Usage: Usage{
			PromptTokens:     int(in.Usage.PromptTokens),
			CompletionTokens: int(in.Usage.CompletionTokens),
			TotalTokens:      int(in.Usage.TotalTokens),
		},
		Choices: make([]Choice, 0, len(in.Choices)),
	}
	for _, ch := range in.Choices {
		resp.Choices = append(resp.Choices, Choice{
			Index:        int(ch.Index),
			Message:      Message{Role: string(ch.Message.Role), Content: ch.Message.Content},
			FinishReason: ch.FinishReason,
		})
	}
	return resp
}
