package fleet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFleet() []Instance {
	return []Instance{
		{ID: "i-web1", InstanceType: "t2.micro", Environment: "production", Status: StatusRunning},
		{ID: "i-web2", InstanceType: "t2.micro", Environment: "staging", Status: StatusStopped},
		{ID: "i-db1", InstanceType: "m5.large", Environment: "production", Status: StatusRunning},
	}
}

func TestRepositoryList_NoFilter(t *testing.T) {
	repo := NewRepository(newFakeProvider(testFleet()...))

	instances, err := repo.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.Len(t, instances, 3)
}

func TestRepositoryList_EnvironmentFilter(t *testing.T) {
	repo := NewRepository(newFakeProvider(testFleet()...))

	all, err := repo.List(context.Background(), ListFilter{})
	require.NoError(t, err)

	production, err := repo.List(context.Background(), ListFilter{Environment: "production"})
	require.NoError(t, err)
	require.Len(t, production, 2)

	// Filtered result is exactly the matching subset of the unfiltered list.
	allIDs := make(map[string]bool)
	for _, inst := range all {
		allIDs[inst.ID] = true
	}
	for _, inst := range production {
		assert.Equal(t, "production", inst.Environment)
		assert.True(t, allIDs[inst.ID])
	}
}

func TestRepositoryList_CombinedFilters(t *testing.T) {
	repo := NewRepository(newFakeProvider(testFleet()...))

	instances, err := repo.List(context.Background(), ListFilter{
		Environment:  "production",
		InstanceType: "t2.micro",
	})
	require.NoError(t, err)
	require.Len(t, instances, 1)
	assert.Equal(t, "i-web1", instances[0].ID)
}

func TestRepositoryList_NoMatches(t *testing.T) {
	repo := NewRepository(newFakeProvider(testFleet()...))

	instances, err := repo.List(context.Background(), ListFilter{Environment: "qa"})
	require.NoError(t, err)
	assert.Empty(t, instances)
}

func TestRepositoryList_ProviderError(t *testing.T) {
	provider := newFakeProvider()
	provider.listErr = &ProviderError{Op: "list", Err: errors.New("throttled")}
	repo := NewRepository(provider)

	_, err := repo.List(context.Background(), ListFilter{})
	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
}

func TestRepositoryGet(t *testing.T) {
	repo := NewRepository(newFakeProvider(testFleet()...))

	inst, err := repo.Get(context.Background(), "i-db1")
	require.NoError(t, err)
	assert.Equal(t, "i-db1", inst.ID)
}

func TestRepositoryGet_NotFound(t *testing.T) {
	repo := NewRepository(newFakeProvider(testFleet()...))

	_, err := repo.Get(context.Background(), "i-doesnotexist")
	require.True(t, IsNotFound(err))
}
