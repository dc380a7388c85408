package indicator

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// DefaultBaseURL is the public mindicador.cl API.
const DefaultBaseURL = "https://mindicador.cl/api"

// Client talks to the indicator API over HTTP.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{BaseURL: baseURL, HTTP: &http.Client{Timeout: 15 * time.Second}}
}

// FetchIPC returns the monthly IPC variation series (percent per month).
func (c *Client) FetchIPC(ctx context.Context) (Series, error) {
	return c.fetch(ctx, "ipc")
}

// FetchUF returns the daily UF value series (CLP per UF).
func (c *Client) FetchUF(ctx context.Context) (Series, error) {
	return c.fetch(ctx, "uf")
}

func (c *Client) fetch(ctx context.Context, code string) (Series, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/"+code, nil)
	if err != nil {
		return nil, &FetchError{Indicator: code, Err: err}
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &FetchError{Indicator: code, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Indicator: code, Status: resp.StatusCode}
	}
	var payload struct {
		Serie Series `json:"serie"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &FetchError{Indicator: code, Err: err}
	}
	return payload.Serie, nil
}
