package recipes

import (
	"context"
	"errors"

	"nutriplan-dashboard/internal/ports/upstream"
)

var (
	ErrNotFound     = errors.New("recipe not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Repository interface {
	List(ctx context.Context, f ListFilter) (upstream.Listing[Recipe], error)
	GetByID(ctx context.Context, id string) (Recipe, upstream.Origin, error)
	Create(ctx context.Context, in CreateInput) (Recipe, error)
	Update(ctx context.Context, id string, in UpdateInput) (Recipe, error)
	Delete(ctx context.Context, id string) error
}
