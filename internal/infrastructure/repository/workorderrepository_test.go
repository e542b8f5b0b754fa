package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"assetdesk/internal/domain/workorder"
)

func createTestOrder(t *testing.T, repo *WorkOrderRepository, orderID string) *workorder.WorkOrder {
	t.Helper()
	order, err := workorder.NewWorkOrder(orderID, 1, "printer", "IT", "paper jam", "hardware")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), order))
	return order
}

func TestWorkOrderRepository_DuplicateOrderID(t *testing.T) {
	repo := NewWorkOrderRepository(setupTestDB(t))

	createTestOrder(t, repo, "20250601001")

	dup, err := workorder.NewWorkOrder("20250601001", 2, "scanner", "IT", "broken", "hardware")
	require.NoError(t, err)

	err = repo.Create(context.Background(), dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "duplicate order id must surface as a duplicated key error")
}

func TestWorkOrderRepository_TransitionStatus(t *testing.T) {
	repo := NewWorkOrderRepository(setupTestDB(t))
	ctx := context.Background()

	order := createTestOrder(t, repo, "20250601001")

	pid := uint(7)
	ok, err := repo.TransitionStatus(ctx, order.ID, workorder.StatusReported, workorder.StatusDispatched, map[string]any{
		"pid":  pid,
		"name": "bob",
	})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, workorder.StatusDispatched, got.Status)
	require.NotNil(t, got.PID)
	assert.Equal(t, pid, *got.PID)
	assert.Equal(t, "bob", got.Name)
}

func TestWorkOrderRepository_TransitionStatusConflict(t *testing.T) {
	repo := NewWorkOrderRepository(setupTestDB(t))
	ctx := context.Background()

	order := createTestOrder(t, repo, "20250601001")

	ok, err := repo.TransitionStatus(ctx, order.ID, workorder.StatusReported, workorder.StatusDispatched, nil)
	require.NoError(t, err)
	require.True(t, ok)

	// A second writer still expecting R loses the conditional update and
	// must not change the row.
	ok, err = repo.TransitionStatus(ctx, order.ID, workorder.StatusReported, workorder.StatusEvaluating, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, workorder.StatusDispatched, got.Status)
}

func TestWorkOrderRepository_ListFilters(t *testing.T) {
	repo := NewWorkOrderRepository(setupTestDB(t))
	ctx := context.Background()

	createTestOrder(t, repo, "20250601001")
	createTestOrder(t, repo, "20250601002")
	other, err := workorder.NewWorkOrder("20250601003", 3, "router", "Finance", "no link", "network")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, other))

	dep := "IT"
	orders, total, err := repo.List(ctx, workorder.Filter{Department: &dep})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, orders, 2)

	status := workorder.StatusReported
	_, total, err = repo.List(ctx, workorder.Filter{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestWorkOrderRepository_CountByOrderIDPrefix(t *testing.T) {
	repo := NewWorkOrderRepository(setupTestDB(t))
	ctx := context.Background()

	createTestOrder(t, repo, "20250601001")
	createTestOrder(t, repo, "20250601002")
	createTestOrder(t, repo, "20250531009")

	n, err := repo.CountByOrderIDPrefix(ctx, "20250601")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestWorkOrderRepository_DistinctValues(t *testing.T) {
	repo := NewWorkOrderRepository(setupTestDB(t))
	ctx := context.Background()

	createTestOrder(t, repo, "20250601001")
	createTestOrder(t, repo, "20250601002")

	values, err := repo.DistinctValues(ctx, "department")
	require.NoError(t, err)
	assert.Equal(t, []string{"IT"}, values)

	_, err = repo.DistinctValues(ctx, "password_hash")
	assert.Error(t, err, "unlisted columns must be rejected")
}

func TestOrderHistoryRepository_AppendAndLatest(t *testing.T) {
	db := setupTestDB(t)
	orders := NewWorkOrderRepository(db)
	history := NewOrderHistoryRepository(db)
	ctx := context.Background()

	order := createTestOrder(t, orders, "20250601001")

	require.NoError(t, history.Append(ctx, &workorder.HistoryEntry{
		OID: order.ID, Status: workorder.StatusReported, Name: "alice", Content: "paper jam",
	}))
	require.NoError(t, history.Append(ctx, &workorder.HistoryEntry{
		OID: order.ID, Status: workorder.StatusDispatched, Name: "admin", Content: "dispatched to bob",
	}))

	entries, err := history.ListByOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, workorder.StatusReported, entries[0].Status)

	latest, err := history.LatestByStatus(ctx, order.ID, workorder.StatusReported)
	require.NoError(t, err)
	assert.Equal(t, "paper jam", latest.Content)
}
