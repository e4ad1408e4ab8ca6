package storage

import (
	"context"
	"errors"
	"math"

	"github.com/minimal-api/internal/model"
)

// PageSize is the number of records returned per page by FindPage.
const PageSize = 10

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repository is the persistence contract shared by every entity.
//
// Finders return (nil, nil) when the record does not exist; Update and Delete
// return ErrNotFound instead. FindPage treats page <= 0 as "every record",
// otherwise it returns the page-th block of PageSize records ordered by id.
type Repository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id int64) (*T, error)
	FindPage(ctx context.Context, page int) ([]T, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id int64) error
}

type AdministratorStore interface {
	Repository[model.Administrator]
	FindByEmail(ctx context.Context, email string) (*model.Administrator, error)
}

type VehicleStore interface {
	Repository[model.Vehicle]
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// pageOffset returns the row offset of page. ok is false when the offset
// does not fit in an int; such a page is necessarily empty.
func pageOffset(page int) (offset int, ok bool) {
	if page > math.MaxInt/PageSize {
		return 0, false
	}
	return (page - 1) * PageSize, true
}
