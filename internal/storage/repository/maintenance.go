package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pistonary/pistonary/internal/models"
)

// CreateMaintenanceEntry inserts a maintenance record and returns its ID.
func (s *Storage) CreateMaintenanceEntry(ctx context.Context, entry models.MaintenanceEntry) (int64, error) {
	const op = "storage.CreateMaintenanceEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO maintenance_entries (car_id, type, done_date, done_mileage,
			      interval_months, interval_km, cost_cents, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		entry.CarID, entry.Type, entry.DoneDate, entry.DoneMileage,
		entry.IntervalMonths, entry.IntervalKm, entry.CostCents, entry.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListMaintenanceEntries returns the full maintenance history of one car.
func (s *Storage) ListMaintenanceEntries(ctx context.Context, carID int64) ([]models.MaintenanceEntry, error) {
	const op = "storage.ListMaintenanceEntries"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, car_id, type, done_date, done_mileage,
			      interval_months, interval_km, cost_cents, notes
			  FROM maintenance_entries
			  WHERE car_id = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, carID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.MaintenanceEntry
	for rows.Next() {
		var item models.MaintenanceEntry
		var doneDate sql.NullTime
		var doneMileage sql.NullInt64
		if err := rows.Scan(&item.ID, &item.CarID, &item.Type, &doneDate, &doneMileage,
			&item.IntervalMonths, &item.IntervalKm, &item.CostCents, &item.Notes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if doneDate.Valid {
			d := doneDate.Time
			item.DoneDate = &d
		}
		if doneMileage.Valid {
			m := int(doneMileage.Int64)
			item.DoneMileage = &m
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateMaintenanceEntry updates a record scoped to its car and returns
// the number of changed rows.
func (s *Storage) UpdateMaintenanceEntry(ctx context.Context, entry models.MaintenanceEntry, id, carID int64) (int, error) {
	const op = "storage.UpdateMaintenanceEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE maintenance_entries
			  SET type = $1, done_date = $2, done_mileage = $3,
			      interval_months = $4, interval_km = $5, cost_cents = $6, notes = $7
			  WHERE id = $8 AND car_id = $9`
	result, err := s.DB.ExecContext(ctx, query,
		entry.Type, entry.DoneDate, entry.DoneMileage,
		entry.IntervalMonths, entry.IntervalKm, entry.CostCents, entry.Notes, id, carID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveMaintenanceEntry deletes a record scoped to its car and returns
// the number of deleted rows.
func (s *Storage) RemoveMaintenanceEntry(ctx context.Context, id, carID int64) (int, error) {
	const op = "storage.RemoveMaintenanceEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM maintenance_entries WHERE id = $1 AND car_id = $2`
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

// SumMaintenanceCosts totals the recorded maintenance costs of one car
// in a date range, in euro cents. Undated records are excluded because
// they cannot be assigned to a period.
func (s *Storage) SumMaintenanceCosts(ctx context.Context, carID int64, from, to time.Time) (int64, error) {
	const op = "storage.SumMaintenanceCosts"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var sum sql.NullInt64
	query := `SELECT SUM(cost_cents)
			  FROM maintenance_entries
			  WHERE car_id = $1
			    AND done_date IS NOT NULL
			    AND done_date >= $2 AND done_date <= $3`
	if err := s.DB.QueryRowContext(ctx, query, carID, from, to).Scan(&sum); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if !sum.Valid {
		return 0, nil
	}
	return sum.Int64, nil
}
