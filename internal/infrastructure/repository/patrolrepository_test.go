package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdesk/internal/domain/patrol"
)

func createTestPlan(t *testing.T, repo *PatrolRepository, patrolID string, equipmentIDs []uint) (*patrol.Plan, []*patrol.Detail) {
	t.Helper()
	plan, details, err := patrol.NewPlan(patrolID, 1, equipmentIDs, "2025-06-01", "2025-06-30")
	require.NoError(t, err)
	require.NoError(t, repo.CreatePlan(context.Background(), plan, details))
	return plan, details
}

func TestPatrolRepository_CreatePlan(t *testing.T) {
	repo := NewPatrolRepository(setupTestDB(t))
	ctx := context.Background()

	plan, details := createTestPlan(t, repo, "202506001", []uint{10, 11, 12})
	assert.NotZero(t, plan.ID)
	assert.Len(t, details, 3)

	got, err := repo.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 3, got.Unfinished)
	assert.Equal(t, patrol.StatusInProgress, got.Status)

	list, err := repo.ListDetails(ctx, plan.ID)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestPatrolRepository_CheckOffCompletesPlan(t *testing.T) {
	repo := NewPatrolRepository(setupTestDB(t))
	ctx := context.Background()

	plan, details := createTestPlan(t, repo, "202506001", []uint{10, 11})

	ok, err := repo.CheckOff(ctx, details[0].ID, plan.ID, 10)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Unfinished)
	assert.Equal(t, patrol.StatusInProgress, got.Status)

	ok, err = repo.CheckOff(ctx, details[1].ID, plan.ID, 11)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = repo.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Unfinished, "unfinished must hit zero when every detail is checked")
	assert.Equal(t, patrol.StatusCompleted, got.Status, "plan must complete exactly when unfinished reaches zero")
}

func TestPatrolRepository_CheckOffIsIdempotent(t *testing.T) {
	repo := NewPatrolRepository(setupTestDB(t))
	ctx := context.Background()

	plan, details := createTestPlan(t, repo, "202506001", []uint{10, 11})

	ok, err := repo.CheckOff(ctx, details[0].ID, plan.ID, 10)
	require.NoError(t, err)
	require.True(t, ok)

	// Second check of the same detail changes nothing.
	ok, err = repo.CheckOff(ctx, details[0].ID, plan.ID, 10)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Unfinished)
}

func TestPatrolRepository_CheckOffRejectsWrongEquipment(t *testing.T) {
	repo := NewPatrolRepository(setupTestDB(t))
	ctx := context.Background()

	plan, details := createTestPlan(t, repo, "202506001", []uint{10})

	ok, err := repo.CheckOff(ctx, details[0].ID, plan.ID, 99)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPatrolRepository_CancelPlan(t *testing.T) {
	repo := NewPatrolRepository(setupTestDB(t))
	ctx := context.Background()

	plan, _ := createTestPlan(t, repo, "202506001", []uint{10})

	ok, err := repo.CancelPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Already cancelled, the guard loses.
	ok, err = repo.CancelPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, patrol.StatusCancelled, got.Status)
}

func TestPatrolRepository_CancelOverdue(t *testing.T) {
	repo := NewPatrolRepository(setupTestDB(t))
	ctx := context.Background()

	createTestPlan(t, repo, "202505001", []uint{10})
	fresh, _, err := patrol.NewPlan("202507001", 1, []uint{11}, "2025-07-01", "2025-07-31")
	require.NoError(t, err)
	require.NoError(t, repo.CreatePlan(ctx, fresh, []*patrol.Detail{{EID: 11}}))

	swept, err := repo.CancelOverdue(ctx, "2025-07-01")
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)

	got, err := repo.GetPlan(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, patrol.StatusInProgress, got.Status)
}
