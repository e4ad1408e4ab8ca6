package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/minimal-api/internal/model"
)

const administratorColumns = `id, email, password_hash, role`

type AdministratorRepository struct {
	db *Database
}

func NewAdministratorRepository(db *Database) *AdministratorRepository {
	return &AdministratorRepository{db: db}
}

// Create inserts a and fills in its generated id.
func (r *AdministratorRepository) Create(ctx context.Context, a *model.Administrator) error {
	query := `
		INSERT INTO administrators (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING ` + administratorColumns
	err := r.db.QueryRowxContext(ctx, query, a.Email, a.PasswordHash, a.Role).StructScan(a)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create administrator: %w", err)
	}
	return nil
}

func (r *AdministratorRepository) FindByID(ctx context.Context, id int64) (*model.Administrator, error) {
	var a model.Administrator
	query := `SELECT ` + administratorColumns + ` FROM administrators WHERE id = $1`
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find administrator by ID: %w", err)
	}
	return &a, nil
}

// FindByEmail matches the email exactly, case included.
func (r *AdministratorRepository) FindByEmail(ctx context.Context, email string) (*model.Administrator, error) {
	var a model.Administrator
	query := `SELECT ` + administratorColumns + ` FROM administrators WHERE email = $1`
	if err := r.db.GetContext(ctx, &a, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find administrator by email: %w", err)
	}
	return &a, nil
}

func (r *AdministratorRepository) FindPage(ctx context.Context, page int) ([]model.Administrator, error) {
	admins := []model.Administrator{}
	var err error
	if page <= 0 {
		query := `SELECT ` + administratorColumns + ` FROM administrators ORDER BY id`
		err = r.db.SelectContext(ctx, &admins, query)
	} else {
		offset, ok := pageOffset(page)
		if !ok {
			return admins, nil
		}
		query := `SELECT ` + administratorColumns + ` FROM administrators ORDER BY id LIMIT $1 OFFSET $2`
		err = r.db.SelectContext(ctx, &admins, query, PageSize, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list administrators: %w", err)
	}
	return admins, nil
}

func (r *AdministratorRepository) Update(ctx context.Context, a *model.Administrator) error {
	query := `
		UPDATE administrators SET email = $1, password_hash = $2, role = $3
		WHERE id = $4
		RETURNING ` + administratorColumns
	err := r.db.QueryRowxContext(ctx, query, a.Email, a.PasswordHash, a.Role, a.ID).StructScan(a)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to update administrator: %w", err)
	}
	return nil
}

func (r *AdministratorRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM administrators WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete administrator: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete administrator: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
