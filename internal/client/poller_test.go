package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// fakeAPI is a controllable data endpoint: swap the document or fail it
// between polls.
type fakeAPI struct {
	mu   sync.Mutex
	doc  map[string]any
	fail bool
}

func (f *fakeAPI) set(doc map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.doc = doc
	f.fail = false
}

func (f *fakeAPI) breakIt() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = true
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "store down"})
		return
	}
	json.NewEncoder(w).Encode(f.doc)
}

func startPoller(t *testing.T, api *fakeAPI, interval time.Duration) (*Poller, context.CancelFunc) {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := NewPoller(New(srv.URL), interval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	go p.Run(ctx)
	return p, cancel
}

func next(t *testing.T, p *Poller) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-p.Snapshots():
		if !ok {
			t.Fatal("snapshots channel closed unexpectedly")
		}
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a snapshot")
		return Snapshot{}
	}
}

func TestPollerInitialLoad(t *testing.T) {
	api := &fakeAPI{doc: map[string]any{"name": "cup"}}
	p, cancel := startPoller(t, api, time.Hour)
	defer cancel()

	snap := next(t, p)
	if !snap.Loading {
		t.Fatalf("expected a loading snapshot first, got %+v", snap)
	}

	snap = next(t, p)
	if snap.Loading || snap.Err != nil {
		t.Fatalf("expected a data snapshot, got %+v", snap)
	}
	if snap.Data["name"] != "cup" {
		t.Errorf("data = %v", snap.Data)
	}
}

func TestPollerInitialFailureThenRecovery(t *testing.T) {
	api := &fakeAPI{}
	api.breakIt()
	p, cancel := startPoller(t, api, 20*time.Millisecond)
	defer cancel()

	next(t, p) // loading

	snap := next(t, p)
	if snap.Err == nil {
		t.Fatalf("expected an error snapshot, got %+v", snap)
	}
	if snap.Data != nil {
		t.Errorf("initial failure must not carry data, got %v", snap.Data)
	}

	// A later successful poll must leave the error state, not stay stuck.
	api.set(map[string]any{"name": "cup"})
	for snap = next(t, p); snap.Err != nil; snap = next(t, p) {
	}
	if snap.Data["name"] != "cup" {
		t.Errorf("expected recovered data, got %+v", snap)
	}
}

func TestPollerKeepsLastKnownGoodOnFailure(t *testing.T) {
	api := &fakeAPI{doc: map[string]any{"name": "cup"}}
	p, cancel := startPoller(t, api, 20*time.Millisecond)
	defer cancel()

	next(t, p) // loading
	snap := next(t, p)
	if snap.Data["name"] != "cup" {
		t.Fatalf("expected initial data, got %+v", snap)
	}

	api.breakIt()
	snap = next(t, p)
	if snap.Err == nil {
		t.Fatalf("expected an error snapshot, got %+v", snap)
	}
	if snap.Data["name"] != "cup" {
		t.Errorf("failure must keep last-known-good data, got %v", snap.Data)
	}

	// Recovery republishes even though the document is unchanged, so the
	// error state clears. Failure snapshots from polls already in flight
	// may arrive first.
	api.set(map[string]any{"name": "cup"})
	for snap = next(t, p); snap.Err != nil; snap = next(t, p) {
	}
	if snap.Data["name"] != "cup" {
		t.Errorf("data = %v", snap.Data)
	}
}

func TestPollerSuppressesUnchangedDocuments(t *testing.T) {
	api := &fakeAPI{doc: map[string]any{"name": "cup", "n": float64(1)}}
	p, cancel := startPoller(t, api, 10*time.Millisecond)
	defer cancel()

	next(t, p) // loading
	next(t, p) // first data

	// Let several identical polls pass, then change the document. The
	// next snapshot must be the changed one: the identical polls in
	// between published nothing.
	time.Sleep(100 * time.Millisecond)
	api.set(map[string]any{"name": "cup", "n": float64(2)})

	snap := next(t, p)
	if snap.Err != nil {
		t.Fatalf("unexpected error: %v", snap.Err)
	}
	if snap.Data["n"] != float64(2) {
		t.Errorf("expected only the changed document to be published, got %v", snap.Data)
	}
}

func TestPollerRefetch(t *testing.T) {
	api := &fakeAPI{doc: map[string]any{"v": float64(1)}}
	p, cancel := startPoller(t, api, time.Hour)
	defer cancel()

	next(t, p) // loading
	next(t, p) // first data

	api.set(map[string]any{"v": float64(2)})
	p.Refetch()

	snap := next(t, p)
	if snap.Data["v"] != float64(2) {
		t.Errorf("expected refetched document, got %v", snap.Data)
	}
}

func TestPollerStopsOnCancel(t *testing.T) {
	api := &fakeAPI{doc: map[string]any{}}
	p, cancel := startPoller(t, api, 10*time.Millisecond)

	next(t, p) // loading
	cancel()

	// The channel must close once Run returns; drain whatever was in
	// flight.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-p.Snapshots():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("snapshots channel never closed after cancel")
		}
	}
}
