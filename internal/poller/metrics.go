package poller

import (
	"context"
	"log"
	"time"
)

// MetricsInterval is the cadence of the lightweight dashboard metric
// refresh. It is deliberately shorter than the pending-count interval and
// shares no state with it.
const MetricsInterval = 5 * time.Second

// Broadcaster pushes a payload to every connected console session
type Broadcaster interface {
	BroadcastJSON(payload interface{})
}

// MetricsTicker periodically fetches dashboard statistics and broadcasts
// them to all sessions. It carries no comparison state and never alerts;
// fetch failures are logged and the tick skipped.
type MetricsTicker struct {
	fetch    func(ctx context.Context) (interface{}, error)
	hub      Broadcaster
	interval time.Duration
}

func NewMetricsTicker(fetch func(ctx context.Context) (interface{}, error), hub Broadcaster, interval time.Duration) *MetricsTicker {
	if interval <= 0 {
		interval = MetricsInterval
	}
	return &MetricsTicker{fetch: fetch, hub: hub, interval: interval}
}

// Run broadcasts until the context is cancelled
func (m *MetricsTicker) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats, err := m.fetch(ctx)
			if err != nil {
				log.Printf("poller: metrics fetch failed: %v", err)
				continue
			}
			m.hub.BroadcastJSON(map[string]interface{}{
				"type":  "stats_update",
				"stats": stats,
			})
		}
	}
}
