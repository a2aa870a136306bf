package poller

import (
	"context"
	"errors"
	"testing"

	"go-rental-console/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays a fixed sequence of count observations
type scriptedSource struct {
	steps []map[model.Category]int64
	errs  []error
	call  int
}

func (s *scriptedSource) PendingCounts(ctx context.Context, categories []model.Category) (map[model.Category]int64, error) {
	i := s.call
	s.call++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	return s.steps[i], nil
}

type recordingSink struct {
	updates []Snapshot
	alerts  []Snapshot
}

func (r *recordingSink) CountsUpdated(s Snapshot)   { r.updates = append(r.updates, s) }
func (r *recordingSink) PendingIncrease(s Snapshot) { r.alerts = append(r.alerts, s) }

func counts(rental, kyc int64) map[model.Category]int64 {
	return map[model.Category]int64{
		model.CategoryRental: rental,
		model.CategoryKYC:    kyc,
	}
}

func runTicks(t *testing.T, source *scriptedSource, sink Sink, n int) *Snapshot {
	t.Helper()
	p := New(source, sink, model.Categories, 0)
	var snap *Snapshot
	for i := 0; i < n; i++ {
		snap = p.Tick(context.Background(), snap)
	}
	return snap
}

func TestTick_AlertsOnlyOnStrictIncrease(t *testing.T) {
	// Totals 5, 5, 8, 3, 3, 9: alerts fire exactly for 8 and 9.
	source := &scriptedSource{steps: []map[model.Category]int64{
		counts(3, 2), // 5: baseline, no alert
		counts(2, 3), // 5: equal, no alert
		counts(5, 3), // 8: increase, alert
		counts(1, 2), // 3: drop, no alert
		counts(3, 0), // 3: equal, no alert
		counts(6, 3), // 9: increase, alert
	}}
	sink := &recordingSink{}

	runTicks(t, source, sink, 6)

	assert.Len(t, sink.updates, 6)
	require.Len(t, sink.alerts, 2)
	assert.Equal(t, int64(8), sink.alerts[0].Total)
	assert.Equal(t, int64(9), sink.alerts[1].Total)
}

func TestTick_FirstObservationEstablishesBaselineWithoutAlert(t *testing.T) {
	source := &scriptedSource{steps: []map[model.Category]int64{counts(4, 3)}}
	sink := &recordingSink{}

	snap := runTicks(t, source, sink, 1)

	assert.Empty(t, sink.alerts)
	require.NotNil(t, snap)
	assert.Equal(t, int64(7), snap.Total)
}

func TestTick_FailedFetchKeepsPreviousSnapshot(t *testing.T) {
	source := &scriptedSource{
		steps: []map[model.Category]int64{
			counts(3, 2), // 5
			nil,          // fetch error
			counts(4, 2), // 6: compared against pre-failure 5, alerts
		},
		errs: []error{nil, errors.New("backend unavailable"), nil},
	}
	sink := &recordingSink{}
	p := New(source, sink, model.Categories, 0)

	first := p.Tick(context.Background(), nil)
	require.NotNil(t, first)
	assert.Equal(t, int64(5), first.Total)

	// Failed tick: snapshot unchanged, no sink activity.
	afterFailure := p.Tick(context.Background(), first)
	assert.Same(t, first, afterFailure)
	assert.Len(t, sink.updates, 1)
	assert.Empty(t, sink.alerts)

	// Next success compares against the pre-failure baseline.
	final := p.Tick(context.Background(), afterFailure)
	require.Len(t, sink.alerts, 1)
	assert.Equal(t, int64(6), final.Total)
}

func TestTick_SnapshotCarriesPerCategoryBreakdown(t *testing.T) {
	source := &scriptedSource{steps: []map[model.Category]int64{
		counts(1, 0),
		counts(1, 2),
	}}
	sink := &recordingSink{}

	runTicks(t, source, sink, 2)

	require.Len(t, sink.alerts, 1)
	assert.Equal(t, int64(1), sink.alerts[0].PerCategory[model.CategoryRental])
	assert.Equal(t, int64(2), sink.alerts[0].PerCategory[model.CategoryKYC])
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	source := &scriptedSource{steps: []map[model.Category]int64{counts(0, 0)}}
	sink := &recordingSink{}
	p := New(source, sink, model.Categories, DefaultInterval)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	cancel()
	<-done
}

func TestRun_NoCategoriesNeverPolls(t *testing.T) {
	source := &scriptedSource{}
	sink := &recordingSink{}
	p := New(source, sink, nil, DefaultInterval)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	cancel()
	<-done
	assert.Zero(t, source.call)
	assert.Empty(t, sink.updates)
}
