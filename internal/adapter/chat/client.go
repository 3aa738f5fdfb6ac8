package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"
)

const defaultRetryAfter = 5 * time.Second

// RateLimitedError represents a rate limiting signal from the chat platform.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// Sender delivers rendered messages to the chat platform.
type Sender interface {
	SendChannelMessage(ctx context.Context, channelID string, msg Message) error
	SendDirectMessage(ctx context.Context, userID string, msg Message) error
}

// HTTPClient implements Sender via the platform REST API.
type HTTPClient struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

type dmChannelRequest struct {
	RecipientID string `json:"recipient_id"`
}

type channelResponse struct {
	ID string `json:"id"`
}

type rateLimitResponse struct {
	RetryAfter float64 `json:"retry_after"`
}

// NewHTTPClient creates chat client with default timeout.
func NewHTTPClient(baseURL, token string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse chat api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("chat api url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		token:   token,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// SendChannelMessage posts msg into a channel.
func (c *HTTPClient) SendChannelMessage(ctx context.Context, channelID string, msg Message) error {
	return c.do(ctx, http.MethodPost, path.Join("channels", channelID, "messages"), msg, nil)
}

// SendDirectMessage opens a direct message channel with the user and posts msg into it.
func (c *HTTPClient) SendDirectMessage(ctx context.Context, userID string, msg Message) error {
	var channel channelResponse
	if err := c.do(ctx, http.MethodPost, "users/@me/channels", dmChannelRequest{RecipientID: userID}, &channel); err != nil {
		return fmt.Errorf("open dm channel: %w", err)
	}
	if channel.ID == "" {
		return fmt.Errorf("open dm channel: empty channel id")
	}
	return c.SendChannelMessage(ctx, channel.ID, msg)
}

func (c *HTTPClient) do(ctx context.Context, method, route string, payload, out any) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, route)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bot "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode chat response: %w", err)
		}
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		data, _ := io.ReadAll(resp.Body)
		return RateLimitedError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), data)}
	default:
		data, _ := io.ReadAll(resp.Body)
		c.logger.Error("chat request failed",
			slog.String("route", route),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(data)),
		)
		return fmt.Errorf("chat api error: %s", resp.Status)
	}
}

func parseRetryAfter(header string, body []byte) time.Duration {
	if header != "" {
		if seconds, err := strconv.ParseFloat(header, 64); err == nil {
			return time.Duration(seconds * float64(time.Second))
		}
		if t, err := http.ParseTime(header); err == nil {
			return time.Until(t)
		}
	}
	var data rateLimitResponse
	if err := json.Unmarshal(body, &data); err == nil && data.RetryAfter > 0 {
		return time.Duration(data.RetryAfter * float64(time.Second))
	}
	return defaultRetryAfter
}
