// Package mattermost implements the chat.Gateway contract against the
// Mattermost v4 REST API.
package mattermost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jwlab/attendbot/internal/chat"
)

const teamMembersPerPage = 200

// Client is a chat.Gateway backed by a Mattermost server.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a Client for the server at baseURL authenticating with the
// given access token. A zero requestTimeout leaves calls unbounded.
func New(baseURL, token string, requestTimeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api/v4",
		token:   token,
		http:    &http.Client{Timeout: requestTimeout},
		logger:  logger.With("component", "gateway"),
	}
}

func (c *Client) Me(ctx context.Context) (chat.User, error) {
	var u chat.User
	if err := c.get(ctx, "/users/me", &u); err != nil {
		return chat.User{}, fmt.Errorf("failed to get bot identity: %w", err)
	}
	return u, nil
}

func (c *Client) GetChannel(ctx context.Context, channelID string) (chat.Channel, error) {
	var ch chat.Channel
	if err := c.get(ctx, "/channels/"+url.PathEscape(channelID), &ch); err != nil {
		return chat.Channel{}, fmt.Errorf("failed to get channel %s: %w", channelID, err)
	}
	return ch, nil
}

func (c *Client) GetTeamMembers(ctx context.Context, teamID string) ([]chat.TeamMember, error) {
	var all []chat.TeamMember
	for page := 0; ; page++ {
		path := fmt.Sprintf("/teams/%s/members?page=%d&per_page=%d",
			url.PathEscape(teamID), page, teamMembersPerPage)

		var members []chat.TeamMember
		if err := c.get(ctx, path, &members); err != nil {
			return nil, fmt.Errorf("failed to get members of team %s: %w", teamID, err)
		}
		all = append(all, members...)
		if len(members) < teamMembersPerPage {
			return all, nil
		}
	}
}

func (c *Client) GetUser(ctx context.Context, userID string) (chat.User, error) {
	var u chat.User
	if err := c.get(ctx, "/users/"+url.PathEscape(userID), &u); err != nil {
		return chat.User{}, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return u, nil
}

// postList mirrors the Mattermost post-list payload; posts arrive keyed by
// post ID.
type postList struct {
	Posts map[string]chat.Post `json:"posts"`
}

func (c *Client) PostsSince(ctx context.Context, channelID string, since int64) ([]chat.Post, error) {
	path := "/channels/" + url.PathEscape(channelID) + "/posts?since=" + strconv.FormatInt(since, 10)

	var list postList
	if err := c.get(ctx, path, &list); err != nil {
		return nil, fmt.Errorf("failed to get posts for channel %s: %w", channelID, err)
	}

	posts := make([]chat.Post, 0, len(list.Posts))
	for _, p := range list.Posts {
		posts = append(posts, p)
	}
	return posts, nil
}

func (c *Client) CreateDirectChannel(ctx context.Context, userID, otherID string) (chat.Channel, error) {
	var ch chat.Channel
	if err := c.post(ctx, "/channels/direct", [2]string{userID, otherID}, &ch); err != nil {
		return chat.Channel{}, fmt.Errorf("failed to create direct channel with %s: %w", otherID, err)
	}
	return ch, nil
}

func (c *Client) CreatePost(ctx context.Context, channelID, message string) error {
	body := map[string]string{
		"channel_id": channelID,
		"message":    message,
	}
	if err := c.post(ctx, "/posts", body, nil); err != nil {
		return fmt.Errorf("failed to create post in channel %s: %w", channelID, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, payload, out)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Error closing response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
