package stock

import (
	"context"

	"stockdesk/internal/domain"
)

type SearchUseCase interface {
	SearchStock(ctx context.Context, req SearchStockRequest) (*SearchStockResponse, error)
}

type Service interface {
	GetByCodes(ctx context.Context, codes []string) (found []domain.StockLevel, notFoundCodes []string, err error)
	AvailableByCodes(ctx context.Context, codes []string) (map[string]int, error)
}

type Repository interface {
	FindByCodes(ctx context.Context, codes []string) ([]domain.StockLevel, error)
}
