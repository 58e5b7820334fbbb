package fleet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregatorSummarize(t *testing.T) {
	provider := newFakeProvider(
		Instance{ID: "i-1", Status: StatusRunning},
		Instance{ID: "i-2", Status: StatusRunning},
		Instance{ID: "i-3", Status: StatusStopped},
		Instance{ID: "i-4", Status: StatusPending},
	)
	repo := NewRepository(provider)
	agg := NewAggregator(repo)

	before := time.Now().UTC()
	summary, err := agg.Summarize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalInstances)
	assert.Equal(t, 2, summary.StatusBreakdown[StatusRunning])
	assert.Equal(t, 1, summary.StatusBreakdown[StatusStopped])
	assert.Equal(t, 1, summary.StatusBreakdown[StatusPending])

	// Zero-count statuses are omitted, not listed as zero.
	_, present := summary.StatusBreakdown[StatusTerminated]
	assert.False(t, present)

	// The timestamp is the computation time, not an instance field.
	assert.False(t, summary.Timestamp.Before(before))
	assert.False(t, summary.Timestamp.After(time.Now().UTC()))
}

func TestAggregatorSummarize_TotalsMatch(t *testing.T) {
	provider := newFakeProvider(testFleet()...)
	repo := NewRepository(provider)
	agg := NewAggregator(repo)

	instances, err := repo.List(context.Background(), ListFilter{})
	require.NoError(t, err)

	summary, err := agg.Summarize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, len(instances), summary.TotalInstances)

	sum := 0
	for _, count := range summary.StatusBreakdown {
		sum += count
	}
	assert.Equal(t, summary.TotalInstances, sum)
}

func TestAggregatorSummarize_Empty(t *testing.T) {
	agg := NewAggregator(NewRepository(newFakeProvider()))

	summary, err := agg.Summarize(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.TotalInstances)
	assert.Empty(t, summary.StatusBreakdown)
}

func TestAggregatorSummarize_ProviderError(t *testing.T) {
	provider := newFakeProvider()
	provider.listErr = &ProviderError{Op: "list", Err: context.DeadlineExceeded}
	agg := NewAggregator(NewRepository(provider))

	_, err := agg.Summarize(context.Background())
	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
}
