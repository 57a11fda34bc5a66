package remote

import (
	"context"
	"net/http"

	"nutriplan-dashboard/internal/domain/recipes"
	"nutriplan-dashboard/internal/platform/httpclient"
	"nutriplan-dashboard/internal/ports/upstream"
)

const recipesBase = "/api/receitas"

type RecipesRepo struct {
	res      resource[recipes.Recipe]
	fallback []recipes.Recipe
}

var _ recipes.Repository = (*RecipesRepo)(nil)

// NewRecipesRepo: fallback nil usa recipes.DefaultFallback().
func NewRecipesRepo(c Caller, fallback []recipes.Recipe, opts Options) *RecipesRepo {
	if fallback == nil {
		fallback = recipes.DefaultFallback()
	}
	return &RecipesRepo{
		res:      newResource[recipes.Recipe](c, httpclient.ServiceRecipes, "recipes", nil, opts),
		fallback: fallback,
	}
}

func (r *RecipesRepo) List(ctx context.Context, f recipes.ListFilter) (upstream.Listing[recipes.Recipe], error) {
	path := recipesBase
	switch {
	case f.PatientID != "":
		path = recipesBase + "/paciente/" + segment(f.PatientID)
	case f.PractitionerID != "":
		path = recipesBase + "/nutricionista/" + segment(f.PractitionerID)
	}
	return r.res.list(ctx, path, nil, r.fallback, f.Match)
}

func (r *RecipesRepo) GetByID(ctx context.Context, id string) (recipes.Recipe, upstream.Origin, error) {
	lookup := func() (recipes.Recipe, bool) {
		return find(r.fallback, func(rec recipes.Recipe) bool { return rec.ID == id })
	}
	return r.res.get(ctx, recipesBase+"/"+segment(id), lookup, recipes.ErrNotFound)
}

func (r *RecipesRepo) Create(ctx context.Context, in recipes.CreateInput) (recipes.Recipe, error) {
	return r.res.write(ctx, http.MethodPost, recipesBase, in)
}

func (r *RecipesRepo) Update(ctx context.Context, id string, in recipes.UpdateInput) (recipes.Recipe, error) {
	return r.res.write(ctx, http.MethodPut, recipesBase+"/"+segment(id), in)
}

func (r *RecipesRepo) Delete(ctx context.Context, id string) error {
	return r.res.remove(ctx, recipesBase+"/"+segment(id))
}
