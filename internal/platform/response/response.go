package response

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"nutriplan-dashboard/internal/platform/httpclient"
	"nutriplan-dashboard/internal/ports/upstream"
)

type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

const (
	StatusOK    = "OK"
	StatusError = "Error"
)

func OK() Response {
	return Response{Status: StatusOK}
}

func Error(msg string) Response {
	return Response{Status: StatusError, Error: msg}
}

// Listing es el sobre de las respuestas de lista. Origin le dice a la UI
// si está viendo datos reales o de ejemplo.
type Listing[T any] struct {
	Data   []T             `json:"data"`
	Origin upstream.Origin `json:"origin"`
}

func List[T any](l upstream.Listing[T]) Listing[T] {
	items := l.Items
	if items == nil {
		items = []T{}
	}
	return Listing[T]{Data: items, Origin: l.Origin}
}

// Record envuelve un registro individual con su origen.
type Record[T any] struct {
	Data   T               `json:"data"`
	Origin upstream.Origin `json:"origin"`
}

func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func Fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	JSON(w, r, status, Error(msg))
}

// Upstream traduce un error de escritura contra un microservicio:
// 4xx upstream se respeta (con su mensaje), circuito abierto = 503, el resto 502.
func Upstream(w http.ResponseWriter, r *http.Request, err error) {
	var he *httpclient.HTTPError
	switch {
	case errors.As(err, &he):
		status := http.StatusBadGateway
		if he.StatusCode >= 400 && he.StatusCode < 500 {
			status = he.StatusCode
		}
		Fail(w, r, status, he.Message)
	case errors.Is(err, httpclient.ErrCircuitOpen):
		Fail(w, r, http.StatusServiceUnavailable, "serviço temporariamente indisponível")
	default:
		Fail(w, r, http.StatusBadGateway, err.Error())
	}
}
