package plans

import (
	"context"
	"errors"

	"nutriplan-dashboard/internal/ports/upstream"
)

var (
	ErrNotFound     = errors.New("plan not found")
	ErrItemNotFound = errors.New("plan item not found")
	ErrInvalidInput = errors.New("invalid input")

	// ErrPlanHasItems: borrar un plan con itens requiere cascade.
	ErrPlanHasItems = errors.New("plan has items")
	// ErrItemsUnavailable: no se pudo leer la lista real de itens, no se borra a ciegas.
	ErrItemsUnavailable = errors.New("plan items unavailable")
)

type Repository interface {
	List(ctx context.Context, f ListFilter) (upstream.Listing[MealPlan], error)
	GetWithItems(ctx context.Context, id string) (PlanWithItems, upstream.Origin, error)
	Create(ctx context.Context, in CreateInput) (MealPlan, error)
	Update(ctx context.Context, id string, in UpdateInput) (MealPlan, error)
	Delete(ctx context.Context, id string) error

	ListItems(ctx context.Context, planID string) (upstream.Listing[PlanItem], error)
	GetItem(ctx context.Context, itemID string) (PlanItem, upstream.Origin, error)
	CreateItem(ctx context.Context, in ItemInput) (PlanItem, error)
	UpdateItem(ctx context.Context, itemID string, in ItemUpdateInput) (PlanItem, error)
	DeleteItem(ctx context.Context, itemID string) error
}
