package recipes

import (
	"context"
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

func (s *Service) List(ctx context.Context, f ListFilter, query string) (upstream.Listing[Recipe], error) {
	l, err := s.repo.List(ctx, f)
	if err != nil {
		return upstream.Listing[Recipe]{}, err
	}
	l.Items = Search(l.Items, query)
	return l, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Recipe, upstream.Origin, error) {
	if strings.TrimSpace(id) == "" {
		return Recipe{}, "", ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Recipe, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Ingredients = compact(in.Ingredients)
	in.Steps = compact(in.Steps)
	return s.repo.Create(ctx, in)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Recipe, error) {
	if strings.TrimSpace(id) == "" {
		return Recipe{}, ErrInvalidInput
	}
	if in.Ingredients != nil {
		c := compact(*in.Ingredients)
		in.Ingredients = &c
	}
	if in.Steps != nil {
		c := compact(*in.Steps)
		in.Steps = &c
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

type Stats struct {
	Total       int             `json:"total"`
	Quick       int             `json:"quick"`
	Categories  int             `json:"categories"`
	NewThisWeek int             `json:"new_this_week"`
	Origin      upstream.Origin `json:"origin"`
}

// Stats: con datos de fallback todas las métricas quedan en 0.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	l, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return Stats{}, err
	}
	if l.FromFallback() {
		return Stats{Origin: l.Origin}, nil
	}
	return Stats{
		Total:       len(l.Items),
		Quick:       CountQuick(l.Items),
		Categories:  CountCategories(l.Items),
		NewThisWeek: CountCreatedSince(l.Items, s.now().Add(-7*24*time.Hour)),
		Origin:      l.Origin,
	}, nil
}

func Search(in []Recipe, term string) []Recipe {
	out := make([]Recipe, 0, len(in))
	for _, r := range in {
		if r.Matches(term) {
			out = append(out, r)
		}
	}
	return out
}

func CountQuick(in []Recipe) int {
	n := 0
	for _, r := range in {
		if r.IsQuick() {
			n++
		}
	}
	return n
}

// CountCategories cuenta categorías distintas, ignorando vacías.
func CountCategories(in []Recipe) int {
	seen := make(map[string]struct{})
	for _, r := range in {
		if c := strings.TrimSpace(r.Category); c != "" {
			seen[c] = struct{}{}
		}
	}
	return len(seen)
}

func CountCreatedSince(in []Recipe, since time.Time) int {
	n := 0
	for _, r := range in {
		if r.CreatedAt.Since(since) {
			n++
		}
	}
	return n
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
