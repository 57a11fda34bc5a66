package remote

import (
	"context"
	"net/http"
	"net/url"

	"nutriplan-dashboard/internal/domain/users"
	"nutriplan-dashboard/internal/platform/httpclient"
	"nutriplan-dashboard/internal/ports/upstream"
)

const usersBase = "/api/usuarios"

type UsersRepo struct {
	res      resource[users.User]
	fallback []users.User
}

var _ users.Repository = (*UsersRepo)(nil)

// NewUsersRepo: fallback nil usa users.DefaultFallback().
func NewUsersRepo(c Caller, fallback []users.User, opts Options) *UsersRepo {
	if fallback == nil {
		fallback = users.DefaultFallback()
	}
	return &UsersRepo{
		res:      newResource[users.User](c, httpclient.ServiceUsers, "users", nil, opts),
		fallback: fallback,
	}
}

func (r *UsersRepo) List(ctx context.Context, f users.ListFilter) (upstream.Listing[users.User], error) {
	if f.PractitionerID != "" {
		return r.res.list(ctx, "/api/nutricionistas/"+segment(f.PractitionerID)+"/pacientes", nil, r.fallback, f.Match)
	}

	var q url.Values
	if f.Role != "" {
		q = url.Values{"role": {string(f.Role)}}
	}
	return r.res.list(ctx, usersBase, q, r.fallback, f.Match)
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, upstream.Origin, error) {
	lookup := func() (users.User, bool) {
		return find(r.fallback, func(u users.User) bool { return u.ID == id })
	}
	return r.res.get(ctx, usersBase+"/"+segment(id), lookup, users.ErrNotFound)
}

func (r *UsersRepo) Create(ctx context.Context, in users.CreateInput) (users.User, error) {
	return r.res.write(ctx, http.MethodPost, usersBase, in)
}

func (r *UsersRepo) Update(ctx context.Context, id string, in users.UpdateInput) (users.User, error) {
	return r.res.write(ctx, http.MethodPut, usersBase+"/"+segment(id), in)
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	return r.res.remove(ctx, usersBase+"/"+segment(id))
}
