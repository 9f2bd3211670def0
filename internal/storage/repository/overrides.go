package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pistonary/pistonary/internal/models"
)

// ListIntervalOverrides returns all override rows of one car, active or
// not.
func (s *Storage) ListIntervalOverrides(ctx context.Context, carID int64) ([]models.IntervalOverride, error) {
	const op = "storage.ListIntervalOverrides"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, car_id, name, time_interval, mileage_interval, is_active
			  FROM interval_overrides
			  WHERE car_id = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, carID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.IntervalOverride
	for rows.Next() {
		var item models.IntervalOverride
		var timeInterval, mileageInterval sql.NullInt64
		if err := rows.Scan(&item.ID, &item.CarID, &item.Name,
			&timeInterval, &mileageInterval, &item.IsActive); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if timeInterval.Valid {
			v := int(timeInterval.Int64)
			item.TimeInterval = &v
		}
		if mileageInterval.Valid {
			v := int(mileageInterval.Int64)
			item.MileageInterval = &v
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ReplaceIntervalOverrides swaps the full override set of one car in a
// single transaction.
func (s *Storage) ReplaceIntervalOverrides(ctx context.Context, carID int64, overrides []models.IntervalOverride) error {
	const op = "storage.ReplaceIntervalOverrides"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM interval_overrides WHERE car_id = $1`, carID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO interval_overrides (car_id, name, time_interval, mileage_interval, is_active)
			  VALUES ($1, $2, $3, $4, $5)`
	for _, o := range overrides {
		if _, err := tx.ExecContext(ctx, query, carID, o.Name, o.TimeInterval, o.MileageInterval, o.IsActive); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
