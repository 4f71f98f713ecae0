package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"stockdesk/internal/domain"
	apperrors "stockdesk/internal/errors"
)

const mysqlDuplicateEntry = 1062

type MySQLOrderRepository struct {
	db    *sql.DB
	lines *MySQLOrderLineRepository
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db, lines: NewMySQLOrderLineRepository(db)}
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, createdAt, updatedAt
		FROM Orders
		WHERE id = ?
	`

	var order domain.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	order.Lines, err = r.lines.FindByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *MySQLOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, createdAt, updatedAt FROM Orders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	for i := range orders {
		orders[i].Lines, err = r.lines.FindByOrderID(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func (r *MySQLOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO Orders (id) VALUES (?)`, order.ID)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return apperrors.NewConflictError(fmt.Sprintf("order with id %s already exists", order.ID))
		}
		return fmt.Errorf("inserting order: %w", err)
	}

	if err := r.lines.ReplaceAll(ctx, tx, order.ID, order.Lines); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing order: %w", err)
	}

	return nil
}

// Update replaces the lines of an existing order. The order row is locked
// first because MySQL reports zero affected rows for an unchanged UPDATE.
func (r *MySQLOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, `SELECT id FROM Orders WHERE id = ? FOR UPDATE`, order.ID).Scan(&id)
	if err == sql.ErrNoRows {
		return apperrors.NewNotFoundError(fmt.Sprintf("order with id %s not found", order.ID))
	}
	if err != nil {
		return fmt.Errorf("locking order: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE Orders SET updatedAt = CURRENT_TIMESTAMP WHERE id = ?`, order.ID); err != nil {
		return fmt.Errorf("touching order: %w", err)
	}

	if err := r.lines.ReplaceAll(ctx, tx, order.ID, order.Lines); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing order: %w", err)
	}

	return nil
}
