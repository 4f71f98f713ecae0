package commons

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"go.yaml.in/yaml/v3"

	"stockdesk/internal/allocation"
	"stockdesk/internal/domain"
)

// Seed is the mock data set the back-office screens are demonstrated with.
type Seed struct {
	Orders []domain.Order
	Stock  []domain.StockLevel
}

type seedFile struct {
	Orders []seedOrder `yaml:"orders"`
	Stock  []seedStock `yaml:"stock"`
}

type seedOrder struct {
	ID    string     `yaml:"id"`
	Lines []seedLine `yaml:"lines"`
}

type seedLine struct {
	ProductCode  string `yaml:"productCode"`
	RequestedQty int    `yaml:"requestedQty"`
	AvailableQty int    `yaml:"availableQty"`
	AllocatedQty int    `yaml:"allocatedQty"`
	UnitPrice    string `yaml:"unitPrice"`
}

type seedStock struct {
	ProductCode string `yaml:"productCode"`
	OnHand      *int   `yaml:"onHand"`
	Reserved    *int   `yaml:"reserved"`
}

func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	return ParseSeed(data)
}

// ParseSeed decodes a seed document and validates every order through the
// domain constructors and the allocation engine's quantity checks, so a
// fixture the engine would reject never reaches a repository.
func ParseSeed(data []byte) (*Seed, error) {
	var raw seedFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}

	engine := allocation.NewEngine()
	seed := &Seed{
		Orders: make([]domain.Order, 0, len(raw.Orders)),
		Stock:  make([]domain.StockLevel, 0, len(raw.Stock)),
	}

	for _, o := range raw.Orders {
		lines := make([]domain.OrderLine, 0, len(o.Lines))
		for _, l := range o.Lines {
			price := decimal.Zero
			if l.UnitPrice != "" {
				parsed, err := decimal.NewFromString(l.UnitPrice)
				if err != nil {
					return nil, fmt.Errorf("order %s line %s: parsing unit price: %w", o.ID, l.ProductCode, err)
				}
				price = parsed
			}

			line, err := domain.NewOrderLine(l.ProductCode, l.RequestedQty, l.AvailableQty, l.AllocatedQty, price)
			if err != nil {
				return nil, fmt.Errorf("order %s: %w", o.ID, err)
			}
			lines = append(lines, line)
		}

		order, err := domain.NewOrder(o.ID, lines)
		if err != nil {
			return nil, fmt.Errorf("seed order %q: %w", o.ID, err)
		}
		if _, err := engine.ClassifyOrder(order.Lines); err != nil {
			return nil, fmt.Errorf("seed order %q: %w", o.ID, err)
		}
		seed.Orders = append(seed.Orders, *order)
	}

	for _, s := range raw.Stock {
		if s.ProductCode == "" {
			return nil, fmt.Errorf("seed stock entry without productCode")
		}
		seed.Stock = append(seed.Stock, domain.StockLevel{
			ProductCode: s.ProductCode,
			OnHand:      s.OnHand,
			Reserved:    s.Reserved,
		})
	}

	return seed, nil
}
