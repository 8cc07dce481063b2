package twitch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"vodframes/internal/core/domain"
)

// DefaultBaseURL is the production Helix endpoint.
const DefaultBaseURL = "https://api.twitch.tv/helix"

// maxErrorBody caps how much of an error response is kept for diagnostics.
const maxErrorBody = 4 << 10

// Config carries the credentials and endpoint for one client.
type Config struct {
	BaseURL     string
	ClientID    string
	AccessToken string
	Timeout     time.Duration
}

// Client calls the Twitch Helix REST API.
type Client struct {
	cfg    Config
	client *http.Client
	logger zerolog.Logger
}

// New creates a Client. An empty BaseURL selects the production endpoint.
func New(cfg Config, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// ResolveChannel maps a channel login name to its opaque user ID.
func (c *Client) ResolveChannel(ctx context.Context, login string) (string, error) {
	if err := c.checkCredentials(); err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("login", login)

	var payload struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := c.get(ctx, "resolve_channel", "/users", q, &payload); err != nil {
		return "", err
	}

	if len(payload.Data) == 0 {
		return "", &domain.APIError{
			Sentinel:  domain.ErrChannelNotFound,
			Operation: "resolve_channel",
			Body:      fmt.Sprintf("no user for login %q", login),
		}
	}

	id := payload.Data[0].ID
	c.logger.Debug().Str("event", "catalog.resolved").Str("login", login).Str("channel_id", id).Msg("channel resolved")
	return id, nil
}

// ListVideos returns the channel's most recent archived broadcasts in the
// order Helix reports them (newest first). Entries without an ID are dropped.
func (c *Client) ListVideos(ctx context.Context, channelID string, limit int) ([]domain.Video, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("user_id", channelID)
	q.Set("type", "archive")
	q.Set("sort", "time")
	q.Set("first", strconv.Itoa(limit))

	var payload struct {
		Data []struct {
			ID        string `json:"id"`
			Title     string `json:"title"`
			CreatedAt string `json:"created_at"`
			URL       string `json:"url"`
		} `json:"data"`
	}
	if err := c.get(ctx, "list_videos", "/videos", q, &payload); err != nil {
		return nil, err
	}

	videos := make([]domain.Video, 0, len(payload.Data))
	for _, item := range payload.Data {
		if item.ID == "" {
			c.logger.Warn().Str("event", "catalog.skip_entry").Msg("video entry without id skipped")
			continue
		}
		title := item.Title
		if title == "" {
			title = "Untitled Video"
		}
		createdAt, _ := time.Parse(time.RFC3339, item.CreatedAt)
		videos = append(videos, domain.Video{
			ID:        item.ID,
			Title:     title,
			CreatedAt: createdAt,
			URL:       item.URL,
		})
	}
	c.logger.Debug().Str("event", "catalog.listed").Str("channel_id", channelID).Int("count", len(videos)).Msg("videos listed")
	return videos, nil
}

func (c *Client) checkCredentials() error {
	if c.cfg.ClientID == "" || c.cfg.AccessToken == "" {
		return fmt.Errorf("%w: twitch credentials not configured", domain.ErrConfig)
	}
	return nil
}

func (c *Client) get(ctx context.Context, op, path string, q url.Values, out any) error {
	u := c.cfg.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &domain.APIError{Sentinel: domain.ErrAPIUnavailable, Operation: op, Err: err}
	}
	req.Header.Set("Client-ID", c.cfg.ClientID)
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	res, err := c.client.Do(req)
	if err != nil {
		return &domain.APIError{Sentinel: domain.ErrAPIUnavailable, Operation: op, Err: err}
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return &domain.APIError{
			Sentinel:  domain.ErrAuth,
			Operation: op,
			Status:    res.StatusCode,
			Body:      readErrorBody(res.Body),
		}
	case res.StatusCode != http.StatusOK:
		return &domain.APIError{
			Sentinel:  domain.ErrAPIUnavailable,
			Operation: op,
			Status:    res.StatusCode,
			Body:      readErrorBody(res.Body),
		}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &domain.APIError{Sentinel: domain.ErrAPIUnavailable, Operation: op, Err: err}
	}
	return nil
}

func readErrorBody(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return strings.TrimSpace(string(body))
}
