package indicator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientDecodesSerie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ipc" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{
			"codigo": "ipc",
			"serie": [
				{"fecha": "2024-05-01T04:00:00.000Z", "valor": 0.3},
				{"fecha": "2024-04-01T04:00:00.000Z", "valor": 0.5}
			]
		}`)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	series, err := c.FetchIPC(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("got %d points, want 2", len(series))
	}
	if series[0].Value != 0.3 || series[0].Date.Month() != 5 {
		t.Fatalf("first point = %+v", series[0])
	}
}

func TestClientNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.FetchUF(context.Background())
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("err = %v, want ErrFetchFailed", err)
	}
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Status != http.StatusServiceUnavailable {
		t.Fatalf("fetch error = %+v", err)
	}
}

func TestClientBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("not json")); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.FetchIPC(context.Background()); !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("err = %v, want ErrFetchFailed", err)
	}
}
