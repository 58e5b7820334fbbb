package fleet

import "context"

// Repository is the read surface over the provider: list with optional
// filters, get by id. Filtering happens locally after an unfiltered list so
// the semantics stay exact-match regardless of provider filter behavior.
type Repository struct {
	provider Provider
}

// NewRepository creates a repository over the given provider.
func NewRepository(provider Provider) *Repository {
	return &Repository{provider: provider}
}

// List returns every instance satisfying the filter. Ordering is whatever the
// provider returned; callers must not rely on it.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Instance, error) {
	instances, err := r.provider.List(ctx)
	if err != nil {
		return nil, err
	}
	if filter == (ListFilter{}) {
		return instances, nil
	}

	filtered := make([]Instance, 0, len(instances))
	for _, inst := range instances {
		if filter.Matches(inst) {
			filtered = append(filtered, inst)
		}
	}
	return filtered, nil
}

// Get returns the instance with the given id, or NotFoundError.
func (r *Repository) Get(ctx context.Context, id string) (Instance, error) {
	return r.provider.Describe(ctx, id)
}
