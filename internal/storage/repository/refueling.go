package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pistonary/pistonary/internal/models"
)

// CreateRefuelingEntry inserts a fill-up and returns its ID.
func (s *Storage) CreateRefuelingEntry(ctx context.Context, entry models.RefuelingEntry) (int64, error) {
	const op = "storage.CreateRefuelingEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO refueling_entries (car_id, date, mileage, liters, price_cents, partial)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		entry.CarID, entry.Date, entry.Mileage, entry.Liters, entry.PriceCents, entry.Partial).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListRefuelingEntries returns the fill-ups of one car ordered by
// mileage, which is the order consumption is computed in.
func (s *Storage) ListRefuelingEntries(ctx context.Context, carID int64) ([]models.RefuelingEntry, error) {
	const op = "storage.ListRefuelingEntries"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, car_id, date, mileage, liters, price_cents, partial
			  FROM refueling_entries
			  WHERE car_id = $1
			  ORDER BY mileage, id`
	rows, err := s.DB.QueryContext(ctx, query, carID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.RefuelingEntry
	for rows.Next() {
		var item models.RefuelingEntry
		if err := rows.Scan(&item.ID, &item.CarID, &item.Date, &item.Mileage,
			&item.Liters, &item.PriceCents, &item.Partial); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateRefuelingEntry updates a fill-up scoped to its car and returns
// the number of changed rows.
func (s *Storage) UpdateRefuelingEntry(ctx context.Context, entry models.RefuelingEntry, id, carID int64) (int, error) {
	const op = "storage.UpdateRefuelingEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE refueling_entries
			  SET date = $1, mileage = $2, liters = $3, price_cents = $4, partial = $5
			  WHERE id = $6 AND car_id = $7`
	result, err := s.DB.ExecContext(ctx, query,
		entry.Date, entry.Mileage, entry.Liters, entry.PriceCents, entry.Partial, id, carID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveRefuelingEntry deletes a fill-up scoped to its car and returns
// the number of deleted rows.
func (s *Storage) RemoveRefuelingEntry(ctx context.Context, id, carID int64) (int, error) {
	const op = "storage.RemoveRefuelingEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM refueling_entries WHERE id = $1 AND car_id = $2`
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

// SumFuelCosts totals the fuel spend of one car in a date range, in euro
// cents.
func (s *Storage) SumFuelCosts(ctx context.Context, carID int64, from, to time.Time) (int64, error) {
	const op = "storage.SumFuelCosts"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var sum sql.NullInt64
	query := `SELECT SUM(price_cents)
			  FROM refueling_entries
			  WHERE car_id = $1 AND date >= $2 AND date <= $3`
	if err := s.DB.QueryRowContext(ctx, query, carID, from, to).Scan(&sum); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if !sum.Valid {
		return 0, nil
	}
	return sum.Int64, nil
}
