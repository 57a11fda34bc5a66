package dashboard

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"nutriplan-dashboard/internal/platform/response"
)

type Overview struct {
	Failed         []Source   `json:"failed"`
	Stats          Stats      `json:"stats"`
	RecentActivity []Activity `json:"recent_activity"`
	LoadedAt       time.Time  `json:"loaded_at"`
}

// Overview carga y resume. Cada llamada es independiente: no recuerda fallos previos.
func (e *Engine) Overview(ctx context.Context, activityLimit int, sources ...Source) (Overview, error) {
	snap, err := e.LoadAll(ctx, sources...)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		Failed:         snap.Failed,
		Stats:          Compute(snap, snap.LoadedAt),
		RecentActivity: RecentActivity(snap, activityLimit),
		LoadedAt:       snap.LoadedAt,
	}, nil
}

func RegisterRoutes(r chi.Router, e *Engine, activityLimit int) {
	r.Get("/dashboard", overviewHandler(e, activityLimit))
}

// overviewHandler godoc
// @Summary Resumen del dashboard
// @Description Consulta usuarios (pacientes), planos y receitas en paralelo. Las fuentes que fallan se listan en failed y sus métricas quedan en 0; si alguna falla recent_activity viene vacío.
// @Tags dashboard
// @Produce json
// @Param sources query string false "CSV de fuentes: users,plans,recipes. Por defecto todas"
// @Success 200 {object} Overview
// @Failure 400 {object} response.Response "fuente desconocida"
// @Router /dashboard [get]
func overviewHandler(e *Engine, activityLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sources, err := ParseSources(r.URL.Query().Get("sources"))
		if err != nil {
			response.Fail(w, r, http.StatusBadRequest, err.Error())
			return
		}

		ov, err := e.Overview(r.Context(), activityLimit, sources...)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				response.Fail(w, r, http.StatusServiceUnavailable, "request canceled")
				return
			}
			response.Fail(w, r, http.StatusInternalServerError, "internal error")
			return
		}
		response.JSON(w, r, http.StatusOK, ov)
	}
}
