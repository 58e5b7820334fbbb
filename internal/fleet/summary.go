package fleet

import (
	"context"
	"time"
)

// Summary is a point-in-time census of the fleet. StatusBreakdown carries
// only statuses actually observed; zero-count statuses are omitted.
type Summary struct {
	TotalInstances  int            `json:"total_instances"`
	StatusBreakdown map[Status]int `json:"status_breakdown"`
	Timestamp       time.Time      `json:"timestamp"`
}

// Aggregator produces fleet-wide status summaries from the repository.
type Aggregator struct {
	repo *Repository
}

// NewAggregator creates an aggregator over the given repository.
func NewAggregator(repo *Repository) *Aggregator {
	return &Aggregator{repo: repo}
}

// Summarize lists the whole fleet and buckets it by status. The timestamp is
// the wall-clock time of the computation, not derived from any instance.
func (a *Aggregator) Summarize(ctx context.Context) (Summary, error) {
	instances, err := a.repo.List(ctx, ListFilter{})
	if err != nil {
		return Summary{}, err
	}

	breakdown := make(map[Status]int)
	for _, inst := range instances {
		breakdown[inst.Status]++
	}

	return Summary{
		TotalInstances:  len(instances),
		StatusBreakdown: breakdown,
		Timestamp:       time.Now().UTC(),
	}, nil
}
