package repository

import (
	"context"
	"database/sql"
	"fmt"

	"stockdesk/internal/domain"
)

type MySQLOrderLineRepository struct {
	db *sql.DB
}

func NewMySQLOrderLineRepository(db *sql.DB) *MySQLOrderLineRepository {
	return &MySQLOrderLineRepository{db: db}
}

func (r *MySQLOrderLineRepository) FindByOrderID(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	query := `
		SELECT productCode, requestedQty, availableQty, allocatedQty, unitPrice
		FROM OrderLines
		WHERE orderId = ?
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying order lines: %w", err)
	}
	defer rows.Close()

	lines := []domain.OrderLine{}
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ProductCode, &line.RequestedQty, &line.AvailableQty, &line.AllocatedQty, &line.UnitPrice); err != nil {
			return nil, fmt.Errorf("scanning order line row: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order line rows: %w", err)
	}

	return lines, nil
}

// ReplaceAll swaps the lines of an order inside the caller's transaction,
// keeping entry order in the position column.
func (r *MySQLOrderLineRepository) ReplaceAll(ctx context.Context, tx *sql.Tx, orderID string, lines []domain.OrderLine) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM OrderLines WHERE orderId = ?`, orderID); err != nil {
		return fmt.Errorf("deleting order lines: %w", err)
	}

	query := `
		INSERT INTO OrderLines (orderId, position, productCode, requestedQty, availableQty, allocatedQty, unitPrice)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for position, line := range lines {
		_, err := tx.ExecContext(ctx, query,
			orderID, position, line.ProductCode,
			line.RequestedQty, line.AvailableQty, line.AllocatedQty, line.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("inserting order line %s: %w", line.ProductCode, err)
		}
	}

	return nil
}
