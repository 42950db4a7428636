package repositories

import (
	"context"
	"errors"

	"legolelo/internal/models"
)

// ErrUnavailable marks failures caused by the store being unreachable.
var ErrUnavailable = errors.New("store unavailable")

// SortOrder selects the price ordering of a query.
type SortOrder int

const (
	SortNone SortOrder = iota
	SortPriceAscending
	SortPriceDescending
)

// ToyFilter selects toys. Empty fields add no predicate.
// Substring predicates are literal and case-sensitive.
type ToyFilter struct {
	NameContains        string
	SubCategoryContains string
	Email               string
}

// ToyQuery describes a read against the toy collection.
type ToyQuery struct {
	Filter ToyFilter
	Sort   SortOrder
	Limit  *int64 // nil means no limit
}

// ToyRepository defines the interface for toy data access.
// Implementations must be safe for concurrent use.
type ToyRepository interface {
	Find(ctx context.Context, q ToyQuery) ([]models.Toy, error)
	// FindByID returns nil and no error when no toy has that id.
	FindByID(ctx context.Context, id models.ToyID) (*models.Toy, error)
	Create(ctx context.Context, toy *models.Toy) (models.InsertResult, error)
	Update(ctx context.Context, id models.ToyID, fields models.ToyFields) (models.UpdateResult, error)
	Delete(ctx context.Context, id models.ToyID) (models.DeleteResult, error)
	Ping(ctx context.Context) error
}
