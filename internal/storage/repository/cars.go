package repository

import (
	"context"
	"fmt"

	"github.com/pistonary/pistonary/internal/models"
)

// CreateCar inserts a new car and returns its ID.
func (s *Storage) CreateCar(ctx context.Context, car models.Car) (int64, error) {
	const op = "storage.CreateCar"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO cars (username, name, make, model, license_plate, first_reg_year, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		car.Username, car.Name, car.Make, car.Model, car.LicensePlate, car.FirstRegYear, car.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadCar returns one car by ID.
func (s *Storage) ReadCar(ctx context.Context, id int64) (*models.Car, error) {
	const op = "storage.ReadCar"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, name, make, model, license_plate, first_reg_year, notes
			  FROM cars WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Car
	if err := row.Scan(&result.ID, &result.Username, &result.Name, &result.Make,
		&result.Model, &result.LicensePlate, &result.FirstRegYear, &result.Notes); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListCars returns all cars of one user ordered by ID.
func (s *Storage) ListCars(ctx context.Context, username string) ([]*models.Car, error) {
	const op = "storage.ListCars"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, name, make, model, license_plate, first_reg_year, notes
			  FROM cars
			  WHERE username = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Car
	for rows.Next() {
		var item models.Car
		if err := rows.Scan(&item.ID, &item.Username, &item.Name, &item.Make,
			&item.Model, &item.LicensePlate, &item.FirstRegYear, &item.Notes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateCar updates a car and returns the number of changed rows.
func (s *Storage) UpdateCar(ctx context.Context, car models.Car, id int64) (int, error) {
	const op = "storage.UpdateCar"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE cars
			  SET name = $1, make = $2, model = $3, license_plate = $4,
			      first_reg_year = $5, notes = $6
			  WHERE id = $7`
	result, err := s.DB.ExecContext(ctx, query,
		car.Name, car.Make, car.Model, car.LicensePlate, car.FirstRegYear, car.Notes, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveCar deletes a car by ID; all its logbook entries and overrides
// go with it via the FK cascade. Returns the number of deleted rows.
func (s *Storage) RemoveCar(ctx context.Context, id int64) (int, error) {
	const op = "storage.RemoveCar"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM cars WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CarOwner returns the username owning a car.
func (s *Storage) CarOwner(ctx context.Context, id int64) (string, error) {
	const op = "storage.CarOwner"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var username string
	if err := s.DB.QueryRowContext(ctx, `SELECT username FROM cars WHERE id = $1`, id).Scan(&username); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return username, nil
}

// CarWithOwner pairs a car with its owner's e-mail address for the
// reminder scheduler.
type CarWithOwner struct {
	Car   models.Car
	Email string
}

// ListAllCarsWithOwners returns every car in the system together with
// the owner's e-mail address.
func (s *Storage) ListAllCarsWithOwners(ctx context.Context) ([]CarWithOwner, error) {
	const op = "storage.ListAllCarsWithOwners"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.username, c.name, c.make, c.model, c.license_plate,
			      c.first_reg_year, c.notes, u.email
			  FROM cars c
			  JOIN users u ON u.username = c.username
			  ORDER BY c.id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []CarWithOwner
	for rows.Next() {
		var item CarWithOwner
		if err := rows.Scan(&item.Car.ID, &item.Car.Username, &item.Car.Name, &item.Car.Make,
			&item.Car.Model, &item.Car.LicensePlate, &item.Car.FirstRegYear, &item.Car.Notes,
			&item.Email); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
