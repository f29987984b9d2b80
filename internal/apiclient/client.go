package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/anhbaysgalan1/balatro/internal/application/dto"
)

// ErrNotFound is returned when the API has no record for the request
var ErrNotFound = errors.New("not found")

// TransportError is any failed call to the API: an unreachable server, a
// non-success envelope or an unreadable body. Callers may retry; the client
// never does.
type TransportError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": HTTP %d", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

type Option func(*Client)

// WithHTTPClient replaces the default 30s timeout client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithToken sends a guest token with every request
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SaveGameState upserts the user's run
func (c *Client) SaveGameState(ctx context.Context, state dto.GameState) (*dto.SaveGameStateResult, error) {
	var result dto.SaveGameStateResult
	if err := c.makeRequest(ctx, "save game state", http.MethodPost, "/api/game-state", state, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LoadGameState returns the user's run or ErrNotFound
func (c *Client) LoadGameState(ctx context.Context, userID string) (*dto.GameState, error) {
	var state dto.GameState
	if err := c.makeRequest(ctx, "load game state", http.MethodGet, "/api/game-state/"+url.PathEscape(userID), nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// DeleteGameState removes the user's run, ErrNotFound if there was none
func (c *Client) DeleteGameState(ctx context.Context, userID string) error {
	return c.makeRequest(ctx, "delete game state", http.MethodDelete, "/api/game-state/"+url.PathEscape(userID), nil, nil)
}

// SaveHighscore records a finished run
func (c *Client) SaveHighscore(ctx context.Context, req dto.CreateHighscoreRequest) (*dto.CreateHighscoreResult, error) {
	var result dto.CreateHighscoreResult
	if err := c.makeRequest(ctx, "save highscore", http.MethodPost, "/api/highscores", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListHighscores returns a leaderboard page. An empty userID lists everyone.
func (c *Client) ListHighscores(ctx context.Context, limit, offset int, userID string) (*dto.HighscoreList, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	if userID != "" {
		query.Set("userId", userID)
	}

	var list dto.HighscoreList
	if err := c.makeRequest(ctx, "list highscores", http.MethodGet, "/api/highscores?"+query.Encode(), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// UserHighscore returns the user's best score and rank or ErrNotFound
func (c *Client) UserHighscore(ctx context.Context, userID string) (*dto.UserHighscore, error) {
	var best dto.UserHighscore
	if err := c.makeRequest(ctx, "user highscore", http.MethodGet, "/api/highscores/user/"+url.PathEscape(userID), nil, &best); err != nil {
		return nil, err
	}
	return &best, nil
}

func (c *Client) makeRequest(ctx context.Context, op, method, path string, body interface{}, response interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	var envelope struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody)), Err: err}
	}

	// Check for HTTP errors
	if resp.StatusCode >= 400 || !envelope.Success {
		transportErr := &TransportError{Op: op, StatusCode: resp.StatusCode, Message: envelope.Message}
		if envelope.Error != "" {
			transportErr.Message += " (" + envelope.Error + ")"
		}
		if resp.StatusCode == http.StatusNotFound {
			transportErr.Err = ErrNotFound
		}
		return transportErr
	}

	// Parse successful response
	if response != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, response); err != nil {
			return &TransportError{Op: op, StatusCode: resp.StatusCode, Message: "unreadable data", Err: err}
		}
	}

	return nil
}
