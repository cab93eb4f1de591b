package llm

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BaSui01/agentchat/types"
)

// Config holds the configuration for an OpenAI-compatible provider.
type Config struct {
	// ProviderName is the unique identifier for this provider (e.g. "openai").
	ProviderName string

	// APIKey is the authentication key for the provider's API.
	APIKey string

	// BaseURL is the base URL for the provider's API.
	BaseURL string

	// DefaultModel is the model to use when none is specified in the request.
	DefaultModel string

	// Timeout is the HTTP client timeout. Defaults to 30s if zero.
	Timeout time.Duration

	// EndpointPath is the chat completions endpoint path.
	// Defaults to "/v1/chat/completions".
	EndpointPath string

	// BuildHeaders is an optional function to set custom headers on each
	// request. If nil, the default "Authorization: Bearer <apiKey>" is used.
	BuildHeaders func(req *http.Request, apiKey string)
}

// OpenAICompatProvider talks to any OpenAI Chat Completions compatible API.
type OpenAICompatProvider struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
	tracer trace.Tracer
}

// NewOpenAICompat creates a provider from the given config.
func NewOpenAICompat(cfg Config, logger *zap.Logger) *OpenAICompatProvider {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = "/v1/chat/completions"
	}
	if cfg.ProviderName == "" {
		cfg.ProviderName = "openai-compat"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAICompatProvider{
		cfg: cfg,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
			},
		},
		logger: logger.With(zap.String("component", "llm_provider"), zap.String("provider", cfg.ProviderName)),
		tracer: otel.Tracer("agentchat/llm"),
	}
}

// Name returns the provider name.
func (p *OpenAICompatProvider) Name() string { return p.cfg.ProviderName }

type compatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float32       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type compatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends one chat completion request.
func (p *OpenAICompatProvider) Complete(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	model := req.Model
	if model == "" {
		model = p.cfg.DefaultModel
	}

	ctx, span := p.tracer.Start(ctx, "llm.complete", trace.WithAttributes(
		attribute.String("llm.provider", p.cfg.ProviderName),
		attribute.String("llm.model", model),
	))
	defer span.End()

	body, err := json.Marshal(compatRequest{
		Model:       model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, types.NewError(types.ErrCodeInvalidRequest, "marshal request").
			WithProvider(p.cfg.ProviderName).WithCause(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+p.cfg.EndpointPath, bytes.NewReader(body))
	if err != nil {
		return nil, types.NewError(types.ErrCodeInvalidRequest, "build request").
			WithProvider(p.cfg.ProviderName).WithCause(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.cfg.BuildHeaders != nil {
		p.cfg.BuildHeaders(httpReq, p.cfg.APIKey)
	} else {
		httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	}

	start := time.Now()
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, types.NewError(types.ErrCodeProviderUnavailable, "request failed").
			WithProvider(p.cfg.ProviderName).WithRetryable(true).WithCause(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, types.NewError(types.ErrCodeUpstreamError, "read response").
			WithProvider(p.cfg.ProviderName).WithRetryable(true).WithCause(err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, p.mapHTTPError(resp.StatusCode, raw)
	}

	var parsed compatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, types.NewError(types.ErrCodeUpstreamError, "decode response").
			WithProvider(p.cfg.ProviderName).WithCause(err)
	}
	if len(parsed.Choices) == 0 {
		return nil, types.NewError(types.ErrCodeUpstreamError, "response has no choices").
			WithProvider(p.cfg.ProviderName)
	}

	p.logger.Debug("completion finished",
		zap.String("model", parsed.Model),
		zap.Int("total_tokens", parsed.Usage.TotalTokens),
		zap.Duration("took", time.Since(start)),
	)

	return &ChatResponse{
		ID:      parsed.ID,
		Model:   parsed.Model,
		Content: parsed.Choices[0].Message.Content,
		Usage: types.TokenUsage{
			PromptTokens:     parsed.Usage.PromptTokens,
			CompletionTokens: parsed.Usage.CompletionTokens,
			TotalTokens:      parsed.Usage.TotalTokens,
		},
	}, nil
}

func (p *OpenAICompatProvider) mapHTTPError(status int, raw []byte) *types.Error {
	msg := upstreamMessage(raw)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return types.NewError(types.ErrCodeAuthentication, msg).
			WithProvider(p.cfg.ProviderName).WithHTTPStatus(status)
	case status == http.StatusTooManyRequests:
		return types.NewError(types.ErrCodeRateLimited, msg).
			WithProvider(p.cfg.ProviderName).WithHTTPStatus(status).WithRetryable(true)
	case status >= 500:
		return types.NewError(types.ErrCodeUpstreamError, msg).
			WithProvider(p.cfg.ProviderName).WithHTTPStatus(status).WithRetryable(true)
	default:
		return types.NewError(types.ErrCodeInvalidRequest, msg).
			WithProvider(p.cfg.ProviderName).WithHTTPStatus(status)
	}
}

func upstreamMessage(raw []byte) string {
	var parsed compatResponse
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error != nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return fmt.Sprintf("upstream error: %s", bytes.TrimSpace(raw))
}
