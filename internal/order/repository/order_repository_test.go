package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdesk/internal/domain"
	"stockdesk/internal/errors"
	"stockdesk/internal/testutil"
)

// Unit Tests

func TestNewMySQLOrderRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLOrderRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
	assert.Equal(t, db, repo.lines.db)
}

// Integration Tests

func sampleOrder(id string) *domain.Order {
	return &domain.Order{
		ID: id,
		Lines: []domain.OrderLine{
			{ProductCode: "PAL-EUR", RequestedQty: 10, AvailableQty: 12, AllocatedQty: 10, UnitPrice: decimal.RequireFromString("18.50")},
			{ProductCode: "WRAP-500", RequestedQty: 5, AvailableQty: 3, AllocatedQty: 0, UnitPrice: decimal.RequireFromString("7.25")},
		},
	}
}

func TestOrderRepository_CreateAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleOrder("SO-1")))

	order, err := repo.FindByID(ctx, "SO-1")
	require.NoError(t, err)
	assert.Equal(t, "SO-1", order.ID)
	assert.False(t, order.CreatedAt.IsZero())
	require.Len(t, order.Lines, 2)
	assert.Equal(t, "PAL-EUR", order.Lines[0].ProductCode)
	assert.Equal(t, 10, order.Lines[0].AllocatedQty)
	assert.True(t, order.Lines[0].UnitPrice.Equal(decimal.RequireFromString("18.50")))
	assert.Equal(t, "WRAP-500", order.Lines[1].ProductCode)
}

func TestOrderRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)

	order, err := repo.FindByID(context.Background(), "missing")
	assert.Error(t, err)
	assert.Nil(t, order)

	nfe, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, nfe)
}

func TestOrderRepository_Create_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleOrder("SO-2")))

	err := repo.Create(ctx, sampleOrder("SO-2"))
	_, ok := errors.IsConflictError(err)
	assert.True(t, ok)
}

func TestOrderRepository_Update_ReplacesLines(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleOrder("SO-3")))

	updated := &domain.Order{
		ID: "SO-3",
		Lines: []domain.OrderLine{
			{ProductCode: "WRAP-500", RequestedQty: 5, AvailableQty: 3, AllocatedQty: 3},
		},
	}
	require.NoError(t, repo.Update(ctx, updated))

	order, err := repo.FindByID(ctx, "SO-3")
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, "WRAP-500", order.Lines[0].ProductCode)
	assert.Equal(t, 3, order.Lines[0].AllocatedQty)
}

func TestOrderRepository_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)

	err := repo.Update(context.Background(), sampleOrder("ghost"))
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderRepository_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleOrder("SO-B")))
	require.NoError(t, repo.Create(ctx, &domain.Order{ID: "SO-A"}))

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "SO-A", orders[0].ID)
	assert.Empty(t, orders[0].Lines)
	assert.Equal(t, "SO-B", orders[1].ID)
	assert.Len(t, orders[1].Lines, 2)
}
