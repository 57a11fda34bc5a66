package recipes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"nutriplan-dashboard/internal/platform/response"
	"nutriplan-dashboard/internal/platform/validation"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/recipes", func(rr chi.Router) {
		rr.Get("/", listRecipesHandler(svc))
		rr.Post("/", createRecipeHandler(svc))
		rr.Get("/stats", statsHandler(svc))

		rr.Get("/{recipeID}", getRecipeHandler(svc))
		rr.Put("/{recipeID}", updateRecipeHandler(svc))
		rr.Delete("/{recipeID}", deleteRecipeHandler(svc))
	})
}

// listRecipesHandler godoc
// @Summary Listar receitas
// @Description Lista recetas, opcionalmente de un paciente o de un nutricionista. Si el servicio no responde devuelve recetas de ejemplo con origin=fallback.
// @Tags recipes
// @Produce json
// @Param patient_id query string false "Recetas de este paciente"
// @Param practitioner_id query string false "Recetas de este nutricionista"
// @Param q query string false "Búsqueda por nombre o categoría"
// @Success 200 {object} response.Listing[Recipe]
// @Router /recipes [get]
func listRecipesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := ListFilter{
			PatientID:      strings.TrimSpace(q.Get("patient_id")),
			PractitionerID: strings.TrimSpace(q.Get("practitioner_id")),
		}

		l, err := svc.List(r.Context(), f, q.Get("q"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusOK, response.List(l))
	}
}

// statsHandler godoc
// @Summary Estadísticas de receitas
// @Description total, recetas rápidas (<= 30 min), categorías distintas y nuevas en los últimos 7 días.
// @Tags recipes
// @Produce json
// @Success 200 {object} Stats
// @Router /recipes/stats [get]
func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Stats(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusOK, st)
	}
}

// getRecipeHandler godoc
// @Summary Obtener receita
// @Tags recipes
// @Produce json
// @Param recipeID path string true "ID de la receta"
// @Success 200 {object} response.Record[Recipe]
// @Failure 404 {object} response.Response "recipe not found"
// @Router /recipes/{recipeID} [get]
func getRecipeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, origin, err := svc.GetByID(r.Context(), chi.URLParam(r, "recipeID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusOK, response.Record[Recipe]{Data: rec, Origin: origin})
	}
}

// createRecipeHandler godoc
// @Summary Crear receita
// @Tags recipes
// @Accept json
// @Produce json
// @Param payload body CreateInput true "Datos de la receta"
// @Success 201 {object} Recipe
// @Failure 400 {object} response.Response "invalid json / validación"
// @Router /recipes [post]
func createRecipeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in CreateInput
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			response.Fail(w, r, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validation.Struct(in); err != nil {
			response.Fail(w, r, http.StatusBadRequest, err.Error())
			return
		}

		rec, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusCreated, rec)
	}
}

// updateRecipeHandler godoc
// @Summary Actualizar receita
// @Tags recipes
// @Accept json
// @Produce json
// @Param recipeID path string true "ID de la receta"
// @Param payload body UpdateInput true "Campos a modificar"
// @Success 200 {object} Recipe
// @Router /recipes/{recipeID} [put]
func updateRecipeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in UpdateInput
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			response.Fail(w, r, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validation.Struct(in); err != nil {
			response.Fail(w, r, http.StatusBadRequest, err.Error())
			return
		}

		rec, err := svc.Update(r.Context(), chi.URLParam(r, "recipeID"), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusOK, rec)
	}
}

// deleteRecipeHandler godoc
// @Summary Eliminar receita
// @Tags recipes
// @Param recipeID path string true "ID de la receta"
// @Success 204
// @Router /recipes/{recipeID} [delete]
func deleteRecipeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "recipeID")); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		response.Fail(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		response.Fail(w, r, http.StatusNotFound, ErrNotFound.Error())
	default:
		response.Upstream(w, r, err)
	}
}
