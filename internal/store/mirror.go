package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Mirror is an optional remote backup for domain writes. Implementations are
// best-effort: the store logs failures and carries on.
type Mirror interface {
	SaveDocument(ctx context.Context, collection, id string, doc any) error
	DeleteDocument(ctx context.Context, collection, id string) error
}

// HTTPMirror pushes documents to a remote JSON store
// (PUT/DELETE {base}/{collection}/{id}).
type HTTPMirror struct {
	BaseURL string
	HTTP    *http.Client
}

func NewHTTPMirror(baseURL string) *HTTPMirror {
	return &HTTPMirror{BaseURL: baseURL, HTTP: &http.Client{Timeout: 10 * time.Second}}
}

func (m *HTTPMirror) SaveDocument(ctx context.Context, collection, id string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, m.url(collection, id), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return m.do(req)
}

func (m *HTTPMirror) DeleteDocument(ctx context.Context, collection, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, m.url(collection, id), nil)
	if err != nil {
		return err
	}
	return m.do(req)
}

func (m *HTTPMirror) url(collection, id string) string {
	return fmt.Sprintf("%s/%s/%s", m.BaseURL, collection, id)
}

func (m *HTTPMirror) do(req *http.Request) error {
	resp, err := m.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("mirror responded %d", resp.StatusCode)
	}
	return nil
}
