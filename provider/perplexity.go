package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"praktikasud-backend/logger"
)

const (
	PerplexityModel       = "sonar"
	perplexityTemperature = 0.1
	perplexityMaxTokens   = 4000
	perplexityTimeout     = 45 * time.Second
)

var (
	ErrMissingAPIKey   = errors.New("api key is not set")
	ErrUnauthorized    = errors.New("knowledge provider rejected the api key")
	ErrRateLimited     = errors.New("knowledge provider rate limit exceeded")
	ErrBadRequest      = errors.New("knowledge provider rejected the request")
	ErrUpstreamFailure = errors.New("knowledge provider returned an error")
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type perplexityRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type perplexityResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// PerplexityClient searches current legal information through the Perplexity chat API
type PerplexityClient struct {
	client *resty.Client
	log    logger.Logger
}

// PerplexityOption configures a PerplexityClient
type PerplexityOption func(*PerplexityClient)

// PerplexityWithLogger sets the logger
func PerplexityWithLogger(l logger.Logger) PerplexityOption {
	return func(c *PerplexityClient) {
		c.log = l
	}
}

// PerplexityWithTimeout overrides the request timeout
func PerplexityWithTimeout(d time.Duration) PerplexityOption {
	return func(c *PerplexityClient) {
		c.client.SetTimeout(d)
	}
}

// NewPerplexityClient creates a new Perplexity client
func NewPerplexityClient(baseURL, apiKey string, opts ...PerplexityOption) (*PerplexityClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("perplexity: %w", ErrMissingAPIKey)
	}
	c := &PerplexityClient{
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(perplexityTimeout).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json").
			SetAuthToken(apiKey).
			SetRetryCount(0),
		log: logger.FromContext(context.Background()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Search sends one system+user exchange and returns the first choice text.
// An empty choice list is not an error and yields "".
func (c *PerplexityClient) Search(ctx context.Context, system, query string) (string, error) {
	var out perplexityResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(perplexityRequest{
			Model: PerplexityModel,
			Messages: []chatMessage{
				{Role: "system", Content: system},
				{Role: "user", Content: query},
			},
			Temperature: perplexityTemperature,
			MaxTokens:   perplexityMaxTokens,
			Stream:      false,
		}).
		SetResult(&out).
		Post("/chat/completions")
	if err != nil {
		c.log.Error("Perplexity request failed", "error", err)
		return "", fmt.Errorf("failed to call perplexity: %w", err)
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusOK:
	case code == http.StatusBadRequest:
		c.log.Error("Perplexity rejected request", "status", code, "body", truncate(resp.String(), 500))
		return "", fmt.Errorf("%w: status %d", ErrBadRequest, code)
	case code == http.StatusUnauthorized:
		c.log.Error("Perplexity rejected api key", "status", code)
		return "", fmt.Errorf("%w: status %d", ErrUnauthorized, code)
	case code == http.StatusTooManyRequests:
		c.log.Warn("Perplexity rate limit exceeded", "status", code)
		return "", fmt.Errorf("%w: status %d", ErrRateLimited, code)
	default:
		c.log.Error("Perplexity returned an error", "status", code, "body", truncate(resp.String(), 500))
		return "", fmt.Errorf("%w: status %d", ErrUpstreamFailure, code)
	}

	if ct := resp.Header().Get("Content-Type"); !strings.Contains(ct, "json") {
		c.log.Error("Perplexity returned a non-json body", "content_type", ct, "body", truncate(resp.String(), 500))
		return "", fmt.Errorf("%w: unexpected content type %q", ErrUpstreamFailure, ct)
	}

	if len(out.Choices) == 0 {
		c.log.Warn("Perplexity returned no choices")
		return "", nil
	}
	text := out.Choices[0].Message.Content
	c.log.Debug("Perplexity answer received", "chars", len([]rune(text)))
	return text, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
