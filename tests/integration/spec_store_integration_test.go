package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specdraft/specdraft/internal/store"
	"github.com/specdraft/specdraft/tests/helpers"
)

// TestSpecRetention verifies that the store never keeps more than five
// specs and evicts the oldest ones first.
func TestSpecRetention(t *testing.T) {
	db := helpers.NewTestDatabase(t)
	defer db.Close()
	db.CleanupSpecs(t)

	ctx := context.Background()
	output := helpers.SampleOutput()

	ids := make([]uuid.UUID, 0, store.RetentionLimit+1)
	for i := 0; i < store.RetentionLimit+1; i++ {
		spec, err := db.Store.Create(ctx, helpers.FeatureRequestN(i), output)
		require.NoError(t, err)
		ids = append(ids, spec.ID)
	}

	assert.Equal(t, store.RetentionLimit, db.GetSpecCount(t))

	// The first record created is the one evicted
	_, err := db.Store.Get(ctx, ids[0])
	assert.ErrorIs(t, err, store.ErrNotFound)

	for _, id := range ids[1:] {
		_, err := db.Store.Get(ctx, id)
		assert.NoError(t, err)
	}
}

func TestListRecentOrdering(t *testing.T) {
	db := helpers.NewTestDatabase(t)
	defer db.Close()
	db.CleanupSpecs(t)

	ctx := context.Background()
	output := helpers.SampleOutput()

	for i := 0; i < 3; i++ {
		_, err := db.Store.Create(ctx, helpers.FeatureRequestN(i), output)
		require.NoError(t, err)
	}

	specs, err := db.Store.ListRecent(ctx)
	require.NoError(t, err)
	require.Len(t, specs, 3)
	assert.Equal(t, "Feature 2", specs[0].Title)
	assert.Equal(t, "Feature 1", specs[1].Title)
	assert.Equal(t, "Feature 0", specs[2].Title)
}

func TestUpdateOutputRoundTrip(t *testing.T) {
	db := helpers.NewTestDatabase(t)
	defer db.Close()
	db.CleanupSpecs(t)

	ctx := context.Background()

	spec, err := db.Store.Create(ctx, helpers.DefaultFeatureRequest, helpers.SampleOutput())
	require.NoError(t, err)

	edited := helpers.SampleOutput()
	edited.Overview = "Edited after review"
	edited.Risks = append(edited.Risks, "Session fixation")

	// Applying the same update twice must be a no-op the second time
	for i := 0; i < 2; i++ {
		updated, err := db.Store.UpdateOutput(ctx, spec.ID, edited)
		require.NoError(t, err)
		assert.Equal(t, "Edited after review", updated.Output.Overview)
		assert.Equal(t, spec.Title, updated.Title)
		assert.Equal(t, spec.CreatedAt.UTC(), updated.CreatedAt.UTC())
	}

	fetched, err := db.Store.Get(ctx, spec.ID)
	require.NoError(t, err)
	assert.Equal(t, edited, fetched.Output)
}

func TestGetUnknownSpec(t *testing.T) {
	db := helpers.NewTestDatabase(t)
	defer db.Close()

	_, err := db.Store.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
