package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hollowmoor/haunt-engine/pkg/game"
)

// APIClient is a thin HTTP client for the haunt-engine API.
type APIClient struct {
	baseURL string
	client  *http.Client
}

type turnRequest struct {
	UserChoice        string          `json:"userChoice"`
	PreviousGameBoard *game.GameState `json:"previousGameBoard"`
}

type turnResponse struct {
	Data *game.GameState `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// TestConnection checks the API is reachable.
func (c *APIClient) TestConnection() bool {
	resp, err := c.client.Get(c.baseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusServiceUnavailable
}

// NewGame fetches the opening state for a variant.
func (c *APIClient) NewGame(variant string) (*game.GameState, error) {
	resp, err := c.client.Get(c.baseURL + "/v1/turn/" + variant)
	if err != nil {
		return nil, fmt.Errorf("failed to reach API: %w", err)
	}
	defer resp.Body.Close()

	return decodeTurnResponse(resp)
}

// PlayTurn submits a choice against the previous state and returns
// the new state.
func (c *APIClient) PlayTurn(variant string, prev *game.GameState, choice string) (*game.GameState, error) {
	body, err := json.Marshal(turnRequest{
		UserChoice:        choice,
		PreviousGameBoard: prev,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal turn request: %w", err)
	}

	resp, err := c.client.Post(c.baseURL+"/v1/turn/"+variant, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to reach API: %w", err)
	}
	defer resp.Body.Close()

	return decodeTurnResponse(resp)
}

func decodeTurnResponse(resp *http.Response) (*game.GameState, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error != "" {
			return nil, fmt.Errorf("%s", errResp.Error)
		}
		return nil, fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var turnResp turnResponse
	if err := json.Unmarshal(data, &turnResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if turnResp.Data == nil {
		return nil, fmt.Errorf("response contained no game state")
	}
	return turnResp.Data, nil
}
