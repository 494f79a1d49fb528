package warmlib

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// PredictionStatus is the lifecycle state of a warming prediction resource.
type PredictionStatus string

const (
	StatusPending   PredictionStatus = "pending"
	StatusSucceeded PredictionStatus = "succeeded"
	StatusFailed    PredictionStatus = "failed"
)

// Prediction is a snapshot of the remote prediction resource created by a
// warm call. It is never mutated locally; each poll replaces the snapshot
// with a freshly fetched one.
type Prediction struct {
	// ID is the unique identifier of the prediction resource.
	ID string `json:"predictionId"`
	// Status is the lifecycle state reported by the inference service.
	Status PredictionStatus `json:"status"`
	// Logs holds initial log lines emitted by the inference service.
	Logs []string `json:"logs,omitempty"`
	// Error is the failure reason when Status is failed.
	Error string `json:"error,omitempty"`
}

// Terminal reports whether the prediction has stopped changing.
func (p *Prediction) Terminal() bool {
	return p.Status == StatusSucceeded || p.Status == StatusFailed
}

// WarmRequest is the payload of the warm creation call. Source is a
// data-URI-encoded placeholder image; Target is a fixed small animation
// reference the inference backend runs against.
type WarmRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// PredictionClient talks to the remote inference warming endpoints.
type PredictionClient struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewPredictionClient creates a client for the warming endpoints rooted at
// baseURL. If client is nil, http.DefaultClient is used. An empty token
// disables the Authorization header.
func NewPredictionClient(client *http.Client, baseURL, token string) *PredictionClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &PredictionClient{
		client:  client,
		baseURL: baseURL,
		token:   token,
	}
}

// CreateWarm sends the warm creation request and parses the returned
// prediction resource. A non-2xx response yields a *StatusError.
func (c *PredictionClient) CreateWarm(wr *WarmRequest) (*Prediction, error) {
	body, err := json.Marshal(wr)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/predictions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuth(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}
	var p Prediction
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("error parsing warming response: %w", err)
	}
	return &p, nil
}

// GetPrediction fetches the current snapshot of a prediction resource by id.
// A non-2xx response yields a *StatusError.
func (c *PredictionClient) GetPrediction(id string) (*Prediction, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/predictions/"+id, nil)
	if err != nil {
		return nil, err
	}
	c.setAuth(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}
	var p Prediction
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("error parsing prediction status: %w", err)
	}
	return &p, nil
}

func (c *PredictionClient) setAuth(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
