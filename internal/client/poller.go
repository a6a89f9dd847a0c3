package client

import (
	"context"
	"log/slog"
	"time"

	"github.com/monashcoding/tourneysite/internal/document"
)

// DefaultInterval matches the original site's one-minute poll.
const DefaultInterval = 60 * time.Second

// Snapshot is one published view state. Loading is true only while the
// initial fetch is outstanding. After the first successful fetch, Err is
// set alongside the last-known-good Data so a transient failure never
// blanks an already-rendered view.
type Snapshot struct {
	Data     map[string]any
	Warnings []document.Warning
	Err      error
	Loading  bool
}

// Poller keeps a read-only view eventually consistent with the remote
// document. It republishes only when the document actually changed, so
// identical payloads never cause view churn.
type Poller struct {
	client    *Client
	interval  time.Duration
	logger    *slog.Logger
	snapshots chan Snapshot
	refetch   chan struct{}
}

func NewPoller(c *Client, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		client:    c,
		interval:  interval,
		logger:    logger,
		snapshots: make(chan Snapshot, 1),
		refetch:   make(chan struct{}, 1),
	}
}

// Snapshots delivers published view states. The channel closes when Run
// returns.
func (p *Poller) Snapshots() <-chan Snapshot {
	return p.snapshots
}

// Refetch requests an immediate poll ahead of the next tick.
func (p *Poller) Refetch() {
	select {
	case p.refetch <- struct{}{}:
	default:
	}
}

// Run polls until ctx is cancelled: one immediate fetch, then one per
// interval. The ticker is stopped on return; no timer leaks past the
// owning view.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.snapshots)

	p.publish(ctx, Snapshot{Loading: true})

	var last map[string]any
	var lastErr error
	loaded := false

	poll := func() {
		doc, warns, err := p.client.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Warn("poll failed", "error", err)
			if !loaded {
				// Initial load failure: error state, no data.
				p.publish(ctx, Snapshot{Err: err})
			} else {
				// Keep last-known-good data visible.
				p.publish(ctx, Snapshot{Data: last, Err: err})
			}
			lastErr = err
			return
		}

		changed := !loaded || !document.Equal(last, doc)
		if changed || lastErr != nil {
			p.publish(ctx, Snapshot{Data: doc, Warnings: warns})
		}
		last = doc
		lastErr = nil
		loaded = true
	}

	poll()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			poll()
		case <-p.refetch:
			poll()
		}
	}
}

func (p *Poller) publish(ctx context.Context, snap Snapshot) {
	select {
	case p.snapshots <- snap:
	case <-ctx.Done():
	}
}
