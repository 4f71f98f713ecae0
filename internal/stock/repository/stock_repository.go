package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"stockdesk/internal/domain"
)

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) FindByCodes(ctx context.Context, codes []string) ([]domain.StockLevel, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(codes))
	args := make([]interface{}, 0, len(codes))
	for i, code := range codes {
		placeholders[i] = "?"
		args = append(args, code)
	}

	query := fmt.Sprintf(`
		SELECT productCode, onHand, reserved, updatedAt
		FROM Stock
		WHERE productCode IN (%s)`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying stock: %w", err)
	}
	defer rows.Close()

	var levels []domain.StockLevel
	for rows.Next() {
		var s domain.StockLevel
		if err := rows.Scan(&s.ProductCode, &s.OnHand, &s.Reserved, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning stock row: %w", err)
		}
		levels = append(levels, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock rows: %w", err)
	}

	return levels, nil
}
