package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/minimal-api/internal/model"
)

const vehicleColumns = `id, name, brand, year`

type VehicleRepository struct {
	db *Database
}

func NewVehicleRepository(db *Database) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, v *model.Vehicle) error {
	query := `
		INSERT INTO vehicles (name, brand, year)
		VALUES ($1, $2, $3)
		RETURNING ` + vehicleColumns
	if err := r.db.QueryRowxContext(ctx, query, v.Name, v.Brand, v.Year).StructScan(v); err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	var v model.Vehicle
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	if err := r.db.GetContext(ctx, &v, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find vehicle: %w", err)
	}
	return &v, nil
}

func (r *VehicleRepository) FindPage(ctx context.Context, page int) ([]model.Vehicle, error) {
	vehicles := []model.Vehicle{}
	var err error
	if page <= 0 {
		query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY id`
		err = r.db.SelectContext(ctx, &vehicles, query)
	} else {
		offset, ok := pageOffset(page)
		if !ok {
			return vehicles, nil
		}
		query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY id LIMIT $1 OFFSET $2`
		err = r.db.SelectContext(ctx, &vehicles, query, PageSize, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}

func (r *VehicleRepository) Update(ctx context.Context, v *model.Vehicle) error {
	query := `
		UPDATE vehicles SET name = $1, brand = $2, year = $3
		WHERE id = $4
		RETURNING ` + vehicleColumns
	err := r.db.QueryRowxContext(ctx, query, v.Name, v.Brand, v.Year, v.ID).StructScan(v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	return nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
