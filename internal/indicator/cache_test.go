package indicator

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingSource struct {
	ipcCalls int
	ufCalls  int
	ipc      Series
	err      error
}

func (c *countingSource) FetchIPC(ctx context.Context) (Series, error) {
	c.ipcCalls++
	return c.ipc, c.err
}

func (c *countingSource) FetchUF(ctx context.Context) (Series, error) {
	c.ufCalls++
	return nil, c.err
}

func TestCachedSourceReusesWithinTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	src := &countingSource{ipc: Series{{Date: now, Value: 0.4}}}
	cached := NewCachedSourceWithClock(src, 24*time.Hour, func() time.Time { return now })

	for i := 0; i < 3; i++ {
		series, err := cached.FetchIPC(context.Background())
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if len(series) != 1 || series[0].Value != 0.4 {
			t.Fatalf("fetch %d returned %+v", i, series)
		}
	}
	if src.ipcCalls != 1 {
		t.Fatalf("inner fetched %d times, want 1", src.ipcCalls)
	}
}

func TestCachedSourceRefetchesAfterExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	src := &countingSource{ipc: Series{{Date: now, Value: 0.4}}}
	cached := NewCachedSourceWithClock(src, time.Hour, func() time.Time { return now })

	if _, err := cached.FetchIPC(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	now = now.Add(2 * time.Hour)
	if _, err := cached.FetchIPC(context.Background()); err != nil {
		t.Fatalf("fetch after expiry: %v", err)
	}
	if src.ipcCalls != 2 {
		t.Fatalf("inner fetched %d times, want 2", src.ipcCalls)
	}
}

func TestCachedSourceKeepsIndicatorsSeparate(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	src := &countingSource{}
	cached := NewCachedSourceWithClock(src, time.Hour, func() time.Time { return now })

	if _, err := cached.FetchIPC(context.Background()); err != nil {
		t.Fatalf("ipc: %v", err)
	}
	if _, err := cached.FetchUF(context.Background()); err != nil {
		t.Fatalf("uf: %v", err)
	}
	if src.ipcCalls != 1 || src.ufCalls != 1 {
		t.Fatalf("calls ipc=%d uf=%d, want 1 each", src.ipcCalls, src.ufCalls)
	}
}

func TestCachedSourceDoesNotCacheErrors(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	src := &countingSource{err: &FetchError{Indicator: "ipc", Status: 503}}
	cached := NewCachedSourceWithClock(src, time.Hour, func() time.Time { return now })

	for i := 0; i < 2; i++ {
		if _, err := cached.FetchIPC(context.Background()); !errors.Is(err, ErrFetchFailed) {
			t.Fatalf("fetch %d: err = %v, want ErrFetchFailed", i, err)
		}
	}
	if src.ipcCalls != 2 {
		t.Fatalf("inner fetched %d times, want 2 (errors must not be cached)", src.ipcCalls)
	}
}
