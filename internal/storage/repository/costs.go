package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pistonary/pistonary/internal/models"
)

// CreateCostEntry inserts a miscellaneous cost event and returns its ID.
func (s *Storage) CreateCostEntry(ctx context.Context, entry models.CostEntry) (int64, error) {
	const op = "storage.CreateCostEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO cost_entries (car_id, date, category, amount_cents, notes)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		entry.CarID, entry.Date, entry.Category, entry.AmountCents, entry.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListCostEntries returns the cost events of one car, newest first.
func (s *Storage) ListCostEntries(ctx context.Context, carID int64) ([]models.CostEntry, error) {
	const op = "storage.ListCostEntries"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, car_id, date, category, amount_cents, notes
			  FROM cost_entries
			  WHERE car_id = $1
			  ORDER BY date DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query, carID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.CostEntry
	for rows.Next() {
		var item models.CostEntry
		if err := rows.Scan(&item.ID, &item.CarID, &item.Date, &item.Category,
			&item.AmountCents, &item.Notes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveCostEntry deletes a cost event scoped to its car and returns the
// number of deleted rows.
func (s *Storage) RemoveCostEntry(ctx context.Context, id, carID int64) (int, error) {
	const op = "storage.RemoveCostEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM cost_entries WHERE id = $1 AND car_id = $2`
	result, err := s.DB.ExecContext(ctx, query, id, carID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// SumCostEntries totals the miscellaneous costs of one car in a date
// range, in euro cents.
func (s *Storage) SumCostEntries(ctx context.Context, carID int64, from, to time.Time) (int64, error) {
	const op = "storage.SumCostEntries"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var sum sql.NullInt64
	query := `SELECT SUM(amount_cents)
			  FROM cost_entries
			  WHERE car_id = $1 AND date >= $2 AND date <= $3`
	if err := s.DB.QueryRowContext(ctx, query, carID, from, to).Scan(&sum); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if !sum.Valid {
		return 0, nil
	}
	return sum.Int64, nil
}
