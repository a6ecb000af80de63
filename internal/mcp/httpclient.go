package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andreasknopke/MyWorkout/internal/engine"
	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/google/uuid"
)

// HTTPClient implements DataSource by calling the MyWorkout REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the engine and its data live on the server (reached over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. apiKey is
// sent on writes and may be empty for read-only use.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any, want int) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != want {
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, bytes.TrimSpace(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func profilePath(id uuid.UUID) string {
	if id == uuid.Nil {
		id = models.DefaultProfileID
	}
	return "/api/v1/profiles/" + id.String()
}

func (c *HTTPClient) Generate(ctx context.Context, req models.GenerateRequest) (*models.WorkoutSession, error) {
	var sess models.WorkoutSession
	if err := c.do(ctx, http.MethodPost, "/api/v1/workouts/generate", req, &sess, http.StatusCreated); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (c *HTTPClient) RecordFeedback(ctx context.Context, sub models.FeedbackSubmission) (*models.WorkoutSession, error) {
	var sess models.WorkoutSession
	if err := c.do(ctx, http.MethodPost, "/api/v1/workouts/feedback", sub, &sess, http.StatusOK); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (c *HTTPClient) Readiness(ctx context.Context, profileID uuid.UUID) (*engine.Readiness, error) {
	var r engine.Readiness
	if err := c.do(ctx, http.MethodGet, profilePath(profileID)+"/readiness", nil, &r, http.StatusOK); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) Profile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodGet, profilePath(id), nil, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Exercises(ctx context.Context) ([]models.Exercise, error) {
	var list []models.Exercise
	if err := c.do(ctx, http.MethodGet, "/api/v1/exercises", nil, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) Session(ctx context.Context, id uuid.UUID) (*models.WorkoutSession, error) {
	var sess models.WorkoutSession
	if err := c.do(ctx, http.MethodGet, "/api/v1/workouts/"+id.String(), nil, &sess, http.StatusOK); err != nil {
		return nil, err
	}
	return &sess, nil
}
