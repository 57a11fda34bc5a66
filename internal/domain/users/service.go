package users

import (
	"context"
	"strings"

	"nutriplan-dashboard/internal/ports/upstream"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List aplica el filtro en el upstream y la búsqueda por texto localmente.
func (s *Service) List(ctx context.Context, f ListFilter, query string) (upstream.Listing[User], error) {
	l, err := s.repo.List(ctx, f)
	if err != nil {
		return upstream.Listing[User]{}, err
	}
	l.Items = Search(l.Items, query)
	return l, nil
}

func (s *Service) PatientsOf(ctx context.Context, practitionerID string) (upstream.Listing[User], error) {
	if strings.TrimSpace(practitionerID) == "" {
		return upstream.Listing[User]{}, ErrInvalidInput
	}
	return s.repo.List(ctx, ListFilter{PractitionerID: practitionerID})
}

func (s *Service) GetByID(ctx context.Context, id string) (User, upstream.Origin, error) {
	if strings.TrimSpace(id) == "" {
		return User{}, "", ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Role != RolePatient {
		in.PractitionerID = ""
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (User, error) {
	if strings.TrimSpace(id) == "" {
		return User{}, ErrInvalidInput
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// Search filtra por substring en nombre o email. Devuelve un slice nuevo.
func Search(in []User, term string) []User {
	out := make([]User, 0, len(in))
	for _, u := range in {
		if u.Matches(term) {
			out = append(out, u)
		}
	}
	return out
}
