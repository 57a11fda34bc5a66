package users

import (
	"context"
	"errors"

	"nutriplan-dashboard/internal/ports/upstream"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Repository es el puerto hacia el microservicio de usuarios.
// Las lecturas degradan a fallback; las escrituras propagan el error upstream.
type Repository interface {
	List(ctx context.Context, f ListFilter) (upstream.Listing[User], error)
	GetByID(ctx context.Context, id string) (User, upstream.Origin, error)
	Create(ctx context.Context, in CreateInput) (User, error)
	Update(ctx context.Context, id string, in UpdateInput) (User, error)
	Delete(ctx context.Context, id string) error
}
