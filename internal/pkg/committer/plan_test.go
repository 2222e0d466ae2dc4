package committer

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitPlan_AddIgnoresNil(t *testing.T) {
	plan := NewPlan()
	require.True(t, plan.IsEmpty())

	plan.Add(nil)
	assert.True(t, plan.IsEmpty())

	plan.Add(spanner.Delete("tbl_product", spanner.Key{int64(1)}))
	assert.False(t, plan.IsEmpty())
	assert.Equal(t, 1, plan.Count())
}

func TestCommitPlan_AddMultiple(t *testing.T) {
	plan := NewPlan()
	plan.AddMultiple([]*spanner.Mutation{
		spanner.Delete("tbl_product", spanner.Key{int64(1)}),
		nil,
		spanner.Delete("tbl_product", spanner.Key{int64(2)}),
	})

	assert.Equal(t, 2, plan.Count())
	assert.Len(t, plan.Mutations(), 2)
}

func TestCommitter_ApplyEmptyPlanIsNoop(t *testing.T) {
	// No client: an empty plan must never reach Spanner.
	c := NewCommitter(nil)

	assert.NoError(t, c.Apply(context.Background(), NewPlan()))
}
