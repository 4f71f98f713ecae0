package stock

import (
	"context"

	"stockdesk/internal/domain"
)

type stockService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &stockService{repo: repo}
}

func (s *stockService) GetByCodes(ctx context.Context, codes []string) ([]domain.StockLevel, []string, error) {
	found, err := s.repo.FindByCodes(ctx, codes)
	if err != nil {
		return nil, nil, err
	}

	foundSet := make(map[string]struct{}, len(found))
	for _, level := range found {
		foundSet[level.ProductCode] = struct{}{}
	}

	var notFoundCodes []string
	for _, code := range codes {
		if _, ok := foundSet[code]; !ok {
			notFoundCodes = append(notFoundCodes, code)
		}
	}

	return found, notFoundCodes, nil
}

// AvailableByCodes maps every requested code to its available stock. Codes
// the warehouse does not know about map to zero.
func (s *stockService) AvailableByCodes(ctx context.Context, codes []string) (map[string]int, error) {
	found, err := s.repo.FindByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}

	available := make(map[string]int, len(codes))
	for _, code := range codes {
		available[code] = 0
	}
	for _, level := range found {
		available[level.ProductCode] = level.AvailableStock()
	}

	return available, nil
}
