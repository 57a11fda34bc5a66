package servicestatus

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"nutriplan-dashboard/internal/platform/httpclient"
	"nutriplan-dashboard/internal/platform/response"
)

// Prober es lo que Checker necesita del cliente remoto.
type Prober interface {
	CheckHealth(ctx context.Context, svc httpclient.Service) bool
}

var DefaultServices = []httpclient.Service{
	httpclient.ServiceUsers,
	httpclient.ServicePlans,
	httpclient.ServiceRecipes,
}

type Status struct {
	Services map[httpclient.Service]bool `json:"services"`
	AllUp    bool                        `json:"all_up"`
	SomeDown bool                        `json:"some_down"`
}

type Checker struct {
	prober   Prober
	services []httpclient.Service
}

func NewChecker(p Prober, services ...httpclient.Service) *Checker {
	if len(services) == 0 {
		services = DefaultServices
	}
	return &Checker{prober: p, services: services}
}

// Check consulta todos los servicios en paralelo. Cada probe tiene su propio timeout.
func (c *Checker) Check(ctx context.Context) Status {
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	st := Status{Services: make(map[httpclient.Service]bool, len(c.services)), AllUp: true}

	for _, svc := range c.services {
		wg.Add(1)
		go func() {
			defer wg.Done()
			up := c.prober.CheckHealth(ctx, svc)

			mu.Lock()
			defer mu.Unlock()
			st.Services[svc] = up
			if !up {
				st.AllUp = false
				st.SomeDown = true
			}
		}()
	}
	wg.Wait()
	return st
}

func RegisterRoutes(r chi.Router, c *Checker) {
	r.Get("/status", statusHandler(c))
}

// statusHandler godoc
// @Summary Estado de los microservicios
// @Description Hace GET /health contra cada servicio (timeout 5s). Siempre responde 200; el detalle va en el cuerpo.
// @Tags status
// @Produce json
// @Success 200 {object} Status
// @Router /status [get]
func statusHandler(c *Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, r, http.StatusOK, c.Check(r.Context()))
	}
}
