package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jwebster45206/escape-legacy/internal/handlers"
	"github.com/jwebster45206/escape-legacy/pkg/catalog"
	"github.com/jwebster45206/escape-legacy/pkg/state"
)

// APIClient wraps the HTTP API for the console.
type APIClient struct {
	client  *http.Client
	baseURL string
}

func NewAPIClient(client *http.Client, baseURL string) *APIClient {
	return &APIClient{client: client, baseURL: baseURL}
}

func (c *APIClient) TestConnection() bool {
	resp, err := c.client.Get(c.baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// do runs one request and decodes the response into out, translating
// API error envelopes into errors.
func (c *APIClient) do(method, path string, payload any, out any, wantStatus int) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		var errorResp handlers.ErrorResponse
		if err := json.Unmarshal(data, &errorResp); err != nil || errorResp.Error == "" {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(data))
		}
		return fmt.Errorf("%s", errorResp.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *APIClient) CreateSession() (*handlers.SessionResponse, error) {
	var session handlers.SessionResponse
	if err := c.do(http.MethodPost, "/v1/session", nil, &session, http.StatusCreated); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &session, nil
}

func (c *APIClient) GetSession(id uuid.UUID) (*handlers.SessionResponse, error) {
	var session handlers.SessionResponse
	if err := c.do(http.MethodGet, "/v1/session/"+id.String(), nil, &session, http.StatusOK); err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

func (c *APIClient) ApplyAction(id uuid.UUID, action state.Action) (*handlers.SessionResponse, error) {
	jsonData, err := handlers.MarshalAction(action)
	if err != nil {
		return nil, err
	}
	var session handlers.SessionResponse
	if err := c.do(http.MethodPost, "/v1/session/"+id.String()+"/action", json.RawMessage(jsonData), &session, http.StatusOK); err != nil {
		return nil, fmt.Errorf("failed to apply action: %w", err)
	}
	return &session, nil
}

func (c *APIClient) SolvePuzzle(id uuid.UUID, req handlers.SolveRequest) (*handlers.SolveResponse, error) {
	var result handlers.SolveResponse
	if err := c.do(http.MethodPost, "/v1/session/"+id.String()+"/solve", req, &result, http.StatusOK); err != nil {
		return nil, fmt.Errorf("failed to solve puzzle: %w", err)
	}
	return &result, nil
}

func (c *APIClient) CombineItems(id uuid.UUID, item1ID, item2ID string) (*handlers.CombineResponse, error) {
	req := handlers.CombineRequest{Item1ID: item1ID, Item2ID: item2ID}
	var result handlers.CombineResponse
	if err := c.do(http.MethodPost, "/v1/session/"+id.String()+"/combine", req, &result, http.StatusOK); err != nil {
		return nil, fmt.Errorf("failed to combine items: %w", err)
	}
	return &result, nil
}

func (c *APIClient) MarkInstructionsSeen(id uuid.UUID) error {
	return c.do(http.MethodPost, "/v1/session/"+id.String()+"/instructions", nil, nil, http.StatusNoContent)
}

// LoadCatalog assembles the full authored content from the levels
// endpoints so puzzle and hunt interactions can run locally.
func (c *APIClient) LoadCatalog() (*catalog.Catalog, error) {
	var summaries []handlers.LevelSummary
	if err := c.do(http.MethodGet, "/v1/levels", nil, &summaries, http.StatusOK); err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}

	cat := &catalog.Catalog{}
	for _, summary := range summaries {
		var level catalog.Level
		if err := c.do(http.MethodGet, "/v1/levels/"+summary.ID, nil, &level, http.StatusOK); err != nil {
			return nil, fmt.Errorf("failed to load level %s: %w", summary.ID, err)
		}
		cat.Levels = append(cat.Levels, level)
	}
	return cat, nil
}
