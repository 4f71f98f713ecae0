package stock

import (
	"context"
)

type searchUseCase struct {
	service Service
}

func NewSearchUseCase(service Service) SearchUseCase {
	return &searchUseCase{service: service}
}

func (uc *searchUseCase) SearchStock(ctx context.Context, req SearchStockRequest) (*SearchStockResponse, error) {
	found, notFoundCodes, err := uc.service.GetByCodes(ctx, req.ProductCodes)
	if err != nil {
		return nil, err
	}

	levels := make([]StockDTO, 0, len(found))
	for _, level := range found {
		levels = append(levels, StockDTO{
			ProductCode:    level.ProductCode,
			OnHand:         level.OnHand,
			Reserved:       level.Reserved,
			AvailableStock: level.AvailableStock(),
		})
	}

	if notFoundCodes == nil {
		notFoundCodes = []string{}
	}

	return &SearchStockResponse{
		Stock:    levels,
		NotFound: notFoundCodes,
	}, nil
}
