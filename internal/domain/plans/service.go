package plans

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nutriplan-dashboard/internal/platform/datetime"
	"nutriplan-dashboard/internal/ports/upstream"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: datetime.Now}
}

func (s *Service) List(ctx context.Context, f ListFilter, query string) (upstream.Listing[MealPlan], error) {
	l, err := s.repo.List(ctx, f)
	if err != nil {
		return upstream.Listing[MealPlan]{}, err
	}
	l.Items = Search(l.Items, query)
	return l, nil
}

func (s *Service) GetWithItems(ctx context.Context, id string) (PlanWithItems, upstream.Origin, error) {
	if strings.TrimSpace(id) == "" {
		return PlanWithItems{}, "", ErrInvalidInput
	}
	return s.repo.GetWithItems(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (MealPlan, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.StartDate.Known() && in.EndDate.Known() && in.EndDate.Before(in.StartDate.Time) {
		return MealPlan{}, fmt.Errorf("%w: data_fim before data_inicio", ErrInvalidInput)
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (MealPlan, error) {
	if strings.TrimSpace(id) == "" {
		return MealPlan{}, ErrInvalidInput
	}
	if in.StartDate != nil && in.EndDate != nil &&
		in.StartDate.Known() && in.EndDate.Known() && in.EndDate.Before(in.StartDate.Time) {
		return MealPlan{}, fmt.Errorf("%w: data_fim before data_inicio", ErrInvalidInput)
	}
	return s.repo.Update(ctx, id, in)
}

// DeletePlan rechaza borrar un plan con itens salvo cascade. Con cascade borra
// los itens de a uno en orden y corta en el primer error; el plan se borra al final.
func (s *Service) DeletePlan(ctx context.Context, id string, cascade bool) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}

	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		return err
	}
	if items.FromFallback() {
		return fmt.Errorf("%w: %v", ErrItemsUnavailable, items.Cause)
	}

	if len(items.Items) > 0 {
		if !cascade {
			return fmt.Errorf("%w: %d items", ErrPlanHasItems, len(items.Items))
		}
		for _, it := range items.Items {
			if err := s.repo.DeleteItem(ctx, it.ID); err != nil {
				return fmt.Errorf("delete item %s: %w", it.ID, err)
			}
		}
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) ListItems(ctx context.Context, planID string) (upstream.Listing[PlanItem], error) {
	if strings.TrimSpace(planID) == "" {
		return upstream.Listing[PlanItem]{}, ErrInvalidInput
	}
	return s.repo.ListItems(ctx, planID)
}

func (s *Service) GetItem(ctx context.Context, itemID string) (PlanItem, upstream.Origin, error) {
	if strings.TrimSpace(itemID) == "" {
		return PlanItem{}, "", ErrInvalidInput
	}
	return s.repo.GetItem(ctx, itemID)
}

func (s *Service) CreateItem(ctx context.Context, in ItemInput) (PlanItem, error) {
	in.MealName = strings.TrimSpace(in.MealName)
	in.Time = strings.TrimSpace(in.Time)
	return s.repo.CreateItem(ctx, in)
}

func (s *Service) UpdateItem(ctx context.Context, itemID string, in ItemUpdateInput) (PlanItem, error) {
	if strings.TrimSpace(itemID) == "" {
		return PlanItem{}, ErrInvalidInput
	}
	return s.repo.UpdateItem(ctx, itemID, in)
}

func (s *Service) DeleteItem(ctx context.Context, itemID string) error {
	if strings.TrimSpace(itemID) == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteItem(ctx, itemID)
}

// Stats resume la lista de planes. Si la lista vino del fallback todo es 0.
type Stats struct {
	Total                  int             `json:"total"`
	Active                 int             `json:"active"`
	StartedThisMonth       int             `json:"started_this_month"`
	PatientsWithActivePlan int             `json:"patients_with_active_plan"`
	Origin                 upstream.Origin `json:"origin"`
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	l, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return Stats{}, err
	}
	if l.FromFallback() {
		return Stats{Origin: l.Origin}, nil
	}

	now := s.now()
	return Stats{
		Total:                  len(l.Items),
		Active:                 CountActive(l.Items, now),
		StartedThisMonth:       CountStartedSince(l.Items, datetime.StartOfMonth(now)),
		PatientsWithActivePlan: CountPatientsWithActivePlan(l.Items, now),
		Origin:                 l.Origin,
	}, nil
}

func Search(in []MealPlan, term string) []MealPlan {
	out := make([]MealPlan, 0, len(in))
	for _, p := range in {
		if p.Matches(term) {
			out = append(out, p)
		}
	}
	return out
}

func CountActive(in []MealPlan, now time.Time) int {
	n := 0
	for _, p := range in {
		if p.IsActive(now) {
			n++
		}
	}
	return n
}

// CountPatientsWithActivePlan cuenta pacientes distintos, no planes.
func CountPatientsWithActivePlan(in []MealPlan, now time.Time) int {
	seen := make(map[string]struct{})
	for _, p := range in {
		if p.IsActive(now) && p.PatientID != "" {
			seen[p.PatientID] = struct{}{}
		}
	}
	return len(seen)
}

// CountStartedSince ignora planes sin fecha de inicio conocida.
func CountStartedSince(in []MealPlan, since time.Time) int {
	n := 0
	for _, p := range in {
		if p.StartDate.Since(since) {
			n++
		}
	}
	return n
}
