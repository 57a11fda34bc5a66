package remote

import (
	"context"
	"net/http"

	"nutriplan-dashboard/internal/domain/plans"
	"nutriplan-dashboard/internal/platform/httpclient"
	"nutriplan-dashboard/internal/ports/upstream"
)

// El servicio de planos usa barra final en las colecciones.
const (
	plansBase = "/planos/"
	itemsBase = "/planos/itens/"
)

type PlansRepo struct {
	plans    resource[plans.MealPlan]
	detail   resource[plans.PlanWithItems]
	items    resource[plans.PlanItem]
	fallback plans.Fallback
}

var _ plans.Repository = (*PlansRepo)(nil)

// NewPlansRepo: fallback nil usa plans.DefaultFallback().
func NewPlansRepo(c Caller, fallback *plans.Fallback, opts Options) *PlansRepo {
	fb := plans.DefaultFallback()
	if fallback != nil {
		fb = *fallback
	}
	keys := PlansKeys
	return &PlansRepo{
		plans:    newResource[plans.MealPlan](c, httpclient.ServicePlans, "plans", &keys, opts),
		detail:   newResource[plans.PlanWithItems](c, httpclient.ServicePlans, "plans", &keys, opts),
		items:    newResource[plans.PlanItem](c, httpclient.ServicePlans, "plan_items", &keys, opts),
		fallback: fb,
	}
}

// List filtra por paciente/nutricionista del lado del BFF.
func (r *PlansRepo) List(ctx context.Context, f plans.ListFilter) (upstream.Listing[plans.MealPlan], error) {
	l, err := r.plans.list(ctx, plansBase, nil, r.fallback.Plans, f.Match)
	if err != nil {
		return l, err
	}
	if !l.FromFallback() {
		l.Items = filter(l.Items, f.Match)
	}
	return l, nil
}

func (r *PlansRepo) GetWithItems(ctx context.Context, id string) (plans.PlanWithItems, upstream.Origin, error) {
	lookup := func() (plans.PlanWithItems, bool) {
		p, ok := find(r.fallback.Plans, func(p plans.MealPlan) bool { return p.ID == id })
		if !ok {
			return plans.PlanWithItems{}, false
		}
		return r.fallback.WithItems(p), true
	}

	p, origin, err := r.detail.get(ctx, plansBase+segment(id), lookup, plans.ErrNotFound)
	if err != nil {
		return p, origin, err
	}
	if p.Items == nil {
		p.Items = []plans.PlanItem{}
	}
	return p, origin, nil
}

func (r *PlansRepo) Create(ctx context.Context, in plans.CreateInput) (plans.MealPlan, error) {
	return r.plans.write(ctx, http.MethodPost, plansBase, in)
}

func (r *PlansRepo) Update(ctx context.Context, id string, in plans.UpdateInput) (plans.MealPlan, error) {
	return r.plans.write(ctx, http.MethodPut, plansBase+segment(id), in)
}

func (r *PlansRepo) Delete(ctx context.Context, id string) error {
	return r.plans.remove(ctx, plansBase+segment(id))
}

func (r *PlansRepo) ListItems(ctx context.Context, planID string) (upstream.Listing[plans.PlanItem], error) {
	keep := func(it plans.PlanItem) bool { return it.PlanID == planID }
	return r.items.list(ctx, plansBase+segment(planID)+"/itens", nil, r.fallback.Items, keep)
}

func (r *PlansRepo) GetItem(ctx context.Context, itemID string) (plans.PlanItem, upstream.Origin, error) {
	lookup := func() (plans.PlanItem, bool) {
		return find(r.fallback.Items, func(it plans.PlanItem) bool { return it.ID == itemID })
	}
	return r.items.get(ctx, itemsBase+segment(itemID), lookup, plans.ErrItemNotFound)
}

func (r *PlansRepo) CreateItem(ctx context.Context, in plans.ItemInput) (plans.PlanItem, error) {
	return r.items.write(ctx, http.MethodPost, itemsBase, in)
}

func (r *PlansRepo) UpdateItem(ctx context.Context, itemID string, in plans.ItemUpdateInput) (plans.PlanItem, error) {
	return r.items.write(ctx, http.MethodPut, itemsBase+segment(itemID), in)
}

func (r *PlansRepo) DeleteItem(ctx context.Context, itemID string) error {
	return r.items.remove(ctx, itemsBase+segment(itemID))
}
