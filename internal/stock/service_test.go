package stock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdesk/internal/domain"
)

func intPtr(i int) *int {
	return &i
}

type mockRepository struct {
	FindByCodesFunc func(ctx context.Context, codes []string) ([]domain.StockLevel, error)
}

func (m *mockRepository) FindByCodes(ctx context.Context, codes []string) ([]domain.StockLevel, error) {
	return m.FindByCodesFunc(ctx, codes)
}

func TestService_GetByCodes(t *testing.T) {
	repo := &mockRepository{
		FindByCodesFunc: func(ctx context.Context, codes []string) ([]domain.StockLevel, error) {
			return []domain.StockLevel{{ProductCode: "A", OnHand: intPtr(5)}}, nil
		},
	}

	found, notFound, err := NewService(repo).GetByCodes(context.Background(), []string{"A", "B", "C"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, []string{"B", "C"}, notFound)
}

func TestService_GetByCodes_RepositoryError(t *testing.T) {
	repo := &mockRepository{
		FindByCodesFunc: func(ctx context.Context, codes []string) ([]domain.StockLevel, error) {
			return nil, errors.New("connection refused")
		},
	}

	found, notFound, err := NewService(repo).GetByCodes(context.Background(), []string{"A"})
	assert.Error(t, err)
	assert.Nil(t, found)
	assert.Nil(t, notFound)
}

func TestService_AvailableByCodes(t *testing.T) {
	repo := &mockRepository{
		FindByCodesFunc: func(ctx context.Context, codes []string) ([]domain.StockLevel, error) {
			return []domain.StockLevel{
				{ProductCode: "A", OnHand: intPtr(10), Reserved: intPtr(4)},
				{ProductCode: "B", OnHand: intPtr(1), Reserved: intPtr(3)},
			}, nil
		},
	}

	available, err := NewService(repo).AvailableByCodes(context.Background(), []string{"A", "B", "C"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 6, "B": 0, "C": 0}, available)
}
