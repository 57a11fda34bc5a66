package plans

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"nutriplan-dashboard/internal/platform/response"
	"nutriplan-dashboard/internal/platform/validation"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/plans", func(pr chi.Router) {
		pr.Get("/", listPlansHandler(svc))
		pr.Post("/", createPlanHandler(svc))
		pr.Get("/stats", statsHandler(svc))

		pr.Get("/{planID}", getPlanHandler(svc))
		pr.Put("/{planID}", updatePlanHandler(svc))
		pr.Delete("/{planID}", deletePlanHandler(svc))

		// Itens del plan
		pr.Get("/{planID}/items", listItemsHandler(svc))
		pr.Post("/{planID}/items", createItemHandler(svc))
	})

	r.Route("/plan-items/{itemID}", func(ir chi.Router) {
		ir.Get("/", getItemHandler(svc))
		ir.Put("/", updateItemHandler(svc))
		ir.Delete("/", deleteItemHandler(svc))
	})
}

// listPlansHandler godoc
// @Summary Listar planos alimentares
// @Description Lista planes. El filtro por paciente/nutricionista y la búsqueda por título se aplican en el BFF.
// @Tags plans
// @Produce json
// @Param patient_id query string false "ID del paciente"
// @Param practitioner_id query string false "ID del nutricionista"
// @Param q query string false "Búsqueda por título"
// @Success 200 {object} response.Listing[MealPlan]
// @Router /plans [get]
func listPlansHandler(svc *Service) http.HandlerFunc {
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
// @Summary Estadísticas de planos
// @Tags plans
// @Produce json
// @Success 200 {object} Stats
// @Router /plans/stats [get]
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

// getPlanHandler godoc
// @Summary Obtener plano con itens
// @Tags plans
// @Produce json
// @Param planID path string true "ID del plano"
// @Success 200 {object} response.Record[PlanWithItems]
// @Failure 404 {object} response.Response "plan not found"
// @Router /plans/{planID} [get]
func getPlanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, origin, err := svc.GetWithItems(r.Context(), chi.URLParam(r, "planID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusOK, response.Record[PlanWithItems]{Data: p, Origin: origin})
	}
}

// createPlanHandler godoc
// @Summary Crear plano
// @Tags plans
// @Accept json
// @Produce json
// @Param payload body CreateInput true "Datos del plano; fechas YYYY-MM-DD o RFC3339"
// @Success 201 {object} MealPlan
// @Failure 400 {object} response.Response "invalid json / validación"
// @Router /plans [post]
func createPlanHandler(svc *Service) http.HandlerFunc {
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

		p, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusCreated, p)
	}
}

// updatePlanHandler godoc
// @Summary Actualizar plano
// @Tags plans
// @Accept json
// @Produce json
// @Param planID path string true "ID del plano"
// @Param payload body UpdateInput true "Campos a modificar"
// @Success 200 {object} MealPlan
// @Router /plans/{planID} [put]
func updatePlanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in UpdateInput
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			response.Fail(w, r, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "planID"), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusOK, p)
	}
}

// deletePlanHandler godoc
// @Summary Eliminar plano
// @Description Un plano con itens solo se elimina con cascade=true (borra los itens primero).
// @Tags plans
// @Param planID path string true "ID del plano"
// @Param cascade query bool false "Eliminar también los itens"
// @Success 204
// @Failure 409 {object} response.Response "plan has items"
// @Failure 503 {object} response.Response "no se pudo leer la lista de itens"
// @Router /plans/{planID} [delete]
func deletePlanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cascade := false
		if raw := strings.TrimSpace(r.URL.Query().Get("cascade")); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				response.Fail(w, r, http.StatusBadRequest, "cascade must be a boolean")
				return
			}
			cascade = v
		}

		if err := svc.DeletePlan(r.Context(), chi.URLParam(r, "planID"), cascade); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// listItemsHandler godoc
// @Summary Listar itens de un plano
// @Tags plans
// @Produce json
// @Param planID path string true "ID del plano"
// @Success 200 {object} response.Listing[PlanItem]
// @Router /plans/{planID}/items [get]
func listItemsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := svc.ListItems(r.Context(), chi.URLParam(r, "planID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusOK, response.List(l))
	}
}

// createItemHandler godoc
// @Summary Agregar item a un plano
// @Description plano_mestre_id se toma de la ruta.
// @Tags plans
// @Accept json
// @Produce json
// @Param planID path string true "ID del plano"
// @Param payload body ItemInput true "Datos del item"
// @Success 201 {object} PlanItem
// @Router /plans/{planID}/items [post]
func createItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in ItemInput
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			response.Fail(w, r, http.StatusBadRequest, "invalid json")
			return
		}
		in.PlanID = chi.URLParam(r, "planID")
		if err := validation.Struct(in); err != nil {
			response.Fail(w, r, http.StatusBadRequest, err.Error())
			return
		}

		it, err := svc.CreateItem(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusCreated, it)
	}
}

// getItemHandler godoc
// @Summary Obtener item
// @Tags plans
// @Produce json
// @Param itemID path string true "ID del item"
// @Success 200 {object} response.Record[PlanItem]
// @Router /plan-items/{itemID} [get]
func getItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		it, origin, err := svc.GetItem(r.Context(), chi.URLParam(r, "itemID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusOK, response.Record[PlanItem]{Data: it, Origin: origin})
	}
}

// updateItemHandler godoc
// @Summary Actualizar item
// @Tags plans
// @Accept json
// @Produce json
// @Param itemID path string true "ID del item"
// @Param payload body ItemUpdateInput true "Campos a modificar"
// @Success 200 {object} PlanItem
// @Router /plan-items/{itemID} [put]
func updateItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in ItemUpdateInput
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			response.Fail(w, r, http.StatusBadRequest, "invalid json")
			return
		}

		it, err := svc.UpdateItem(r.Context(), chi.URLParam(r, "itemID"), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusOK, it)
	}
}

// deleteItemHandler godoc
// @Summary Eliminar item
// @Tags plans
// @Param itemID path string true "ID del item"
// @Success 204
// @Router /plan-items/{itemID} [delete]
func deleteItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteItem(r.Context(), chi.URLParam(r, "itemID")); err != nil {
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
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrItemNotFound):
		response.Fail(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrPlanHasItems):
		response.Fail(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, ErrItemsUnavailable):
		response.Fail(w, r, http.StatusServiceUnavailable, ErrItemsUnavailable.Error())
	default:
		response.Upstream(w, r, err)
	}
}
