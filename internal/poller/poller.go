// Package poller implements the session-scoped pending-request watcher.
// One poller runs per connected console session; it observes pending counts
// across the categories the session's operator may see and raises an alert
// signal exactly when new unprocessed work appears.
package poller

import (
	"context"
	"log"
	"time"

	"go-rental-console/internal/model"

	"github.com/sony/gobreaker"
)

// DefaultInterval is the cadence of the combined pending-count refresh,
// matching the console's 10 second badge poll
const DefaultInterval = 10 * time.Second

// CountSource supplies the current pending-request count per category
type CountSource interface {
	PendingCounts(ctx context.Context, categories []model.Category) (map[model.Category]int64, error)
}

// Snapshot is one complete observation of pending work. Snapshots are
// replaced wholesale, never mutated, so concurrent readers never see a
// partially updated view.
type Snapshot struct {
	PerCategory map[model.Category]int64 `json:"per_category"`
	Total       int64                    `json:"total"`
}

// NewSnapshot builds a snapshot from raw per-category counts
func NewSnapshot(counts map[model.Category]int64) *Snapshot {
	snap := &Snapshot{PerCategory: make(map[model.Category]int64, len(counts))}
	for category, count := range counts {
		snap.PerCategory[category] = count
		snap.Total += count
	}
	return snap
}

// Sink receives the poller's output signals. CountsUpdated fires on every
// successful observation (badge refresh); PendingIncrease fires only on a
// strict increase over the immediately preceding observation (the audible
// alert).
type Sink interface {
	CountsUpdated(snapshot Snapshot)
	PendingIncrease(snapshot Snapshot)
}

// Poller drives the edge-triggered pending-count refresh for one session
type Poller struct {
	source     CountSource
	sink       Sink
	categories []model.Category
	interval   time.Duration
	breaker    *gobreaker.CircuitBreaker
}

// New creates a poller for the given category set. The categories are fixed
// for the poller's lifetime; they come from the operator's authorized
// sections at session start.
func New(source CountSource, sink Sink, categories []model.Category, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		source:     source,
		sink:       sink,
		categories: categories,
		interval:   interval,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "pending-counts",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// Run polls until the context is cancelled. The first observation is taken
// immediately and establishes the baseline without alerting; every later
// observation is compared against the one before it.
func (p *Poller) Run(ctx context.Context) {
	if len(p.categories) == 0 {
		// Operator cannot see any request section; nothing to watch.
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	snapshot := p.Tick(ctx, nil)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snapshot = p.Tick(ctx, snapshot)
		}
	}
}

// Tick performs one fetch-compare-replace cycle against an explicitly owned
// previous snapshot and returns the snapshot the next cycle should compare
// against. On a failed fetch the previous snapshot is returned unchanged:
// the tick is abandoned without alerting, and the pre-failure baseline stays
// authoritative.
func (p *Poller) Tick(ctx context.Context, prev *Snapshot) *Snapshot {
	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.source.PendingCounts(ctx, p.categories)
	})
	if err != nil {
		// Transient by definition; the regular timer is the only retry.
		log.Printf("poller: pending count fetch failed: %v", err)
		return prev
	}

	next := NewSnapshot(result.(map[model.Category]int64))
	p.sink.CountsUpdated(*next)

	if prev != nil && next.Total > prev.Total {
		p.sink.PendingIncrease(*next)
	}
	return next
}
