package rest

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/creastat/assistant"
	"github.com/creastat/assistant/gateway"
)

const (
	// DefaultBaseURL is the local development backend.
	DefaultBaseURL = "http://localhost:8000/api"

	// DefaultTimeout bounds a request when none is configured.
	DefaultTimeout = 60 * time.Second

	defaultUserAgent = "creastat-assistant/1.0"

	welcomePath = "/welcome"
	chatPath    = "/chat"

	// maxErrorBody caps how much of a failed response ends up in the error.
	maxErrorBody = 512
)

// Config holds backend connection configuration.
type Config struct {
	// BaseURL is the backend origin including the API prefix
	// (e.g., "https://assistente.example.it/api").
	BaseURL string

	// Timeout bounds a single request. Default: 60 seconds.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string
}

// Client implements gateway.Gateway over HTTP.
type Client struct {
	http    *resty.Client
	baseURL string
}

// New creates a new backend client.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: backend url must be http or https, got %q", assistant.ErrInvalidConfig, raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: backend url has no host", assistant.ErrInvalidConfig)
	}
	base := strings.TrimRight(u.String(), "/")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	client := resty.New().
		SetBaseURL(base).
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")

	return &Client{http: client, baseURL: base}, nil
}

// BaseURL returns the normalized backend origin.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchWelcome implements gateway.Gateway.
func (c *Client) FetchWelcome(ctx context.Context, hint assistant.Language) (*gateway.WelcomePayload, error) {
	var result gateway.WelcomePayload
	req := c.http.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(&result)
	if hint != "" {
		req.SetQueryParam("lang", string(hint))
	}

	start := time.Now()
	resp, err := req.Get(welcomePath)
	if err := checkResponse("fetch welcome", resp, err); err != nil {
		log.Debug().Err(err).Str("lang", string(hint)).Dur("duration", time.Since(start)).Msg("welcome request failed")
		return nil, err
	}

	log.Debug().
		Str("lang", string(hint)).
		Int("suggestions", len(result.Suggestions)).
		Strs("languages", result.Languages).
		Dur("duration", time.Since(start)).
		Msg("welcome fetched")
	return &result, nil
}

// SendChatMessage implements gateway.Gateway.
func (c *Client) SendChatMessage(ctx context.Context, chat gateway.ChatRequest) (*gateway.ChatPayload, error) {
	chat.Message = strings.TrimSpace(chat.Message)
	if chat.Message == "" {
		return nil, assistant.ErrEmptyMessage
	}

	var result gateway.ChatPayload
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		ForceContentType("application/json").
		SetBody(chat).
		SetResult(&result).
		Post(chatPath)
	if err := checkResponse("send chat message", resp, err); err != nil {
		log.Debug().Err(err).Str("conversation_id", chat.ConversationID).Dur("duration", time.Since(start)).Msg("chat request failed")
		return nil, err
	}

	log.Debug().
		Str("conversation_id", chat.ConversationID).
		Int("sources", len(result.Sources)).
		Int("links", len(result.Links)).
		Strs("stores_used", result.StoresUsed).
		Dur("duration", time.Since(start)).
		Msg("chat answered")
	return &result, nil
}

// checkResponse maps transport errors and non-2xx statuses to gateway.NetworkError.
func checkResponse(op string, resp *resty.Response, err error) error {
	if err != nil {
		return &gateway.NetworkError{Op: op, Err: err}
	}
	if !resp.IsSuccess() {
		body := resp.String()
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return &gateway.NetworkError{
			Op:         op,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("%s: %s", resp.Status(), strings.TrimSpace(body)),
		}
	}
	return nil
}

// Compile-time check that Client implements Gateway.
var _ gateway.Gateway = (*Client)(nil)
