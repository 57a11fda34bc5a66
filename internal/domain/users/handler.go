package users

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
	r.Route("/users", func(ur chi.Router) {
		ur.Get("/", listUsersHandler(svc))
		ur.Post("/", createUserHandler(svc))

		ur.Get("/{userID}", getUserHandler(svc))
		ur.Put("/{userID}", updateUserHandler(svc))
		ur.Delete("/{userID}", deleteUserHandler(svc))
	})

	// Pacientes de un nutricionista
	r.Get("/practitioners/{userID}/patients", listPatientsHandler(svc))
}

// listUsersHandler godoc
// @Summary Listar usuarios
// @Description Lista usuarios del microservicio de usuarios. Si el servicio no responde devuelve datos de ejemplo con origin=fallback.
// @Tags users
// @Produce json
// @Param role query string false "nutricionista | paciente"
// @Param practitioner_id query string false "Solo pacientes de este nutricionista"
// @Param q query string false "Búsqueda por nombre o email"
// @Success 200 {object} response.Listing[User]
// @Failure 400 {object} response.Response "role inválido"
// @Router /users [get]
func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		f := ListFilter{
			Role:           Role(strings.TrimSpace(q.Get("role"))),
			PractitionerID: strings.TrimSpace(q.Get("practitioner_id")),
		}
		if f.Role != "" && !f.Role.Valid() {
			response.Fail(w, r, http.StatusBadRequest, "role must be nutricionista or paciente")
			return
		}

		l, err := svc.List(r.Context(), f, q.Get("q"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusOK, response.List(l))
	}
}

// listPatientsHandler godoc
// @Summary Listar pacientes de un nutricionista
// @Tags users
// @Produce json
// @Param userID path string true "ID del nutricionista"
// @Success 200 {object} response.Listing[User]
// @Router /practitioners/{userID}/patients [get]
func listPatientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := svc.PatientsOf(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusOK, response.List(l))
	}
}

// getUserHandler godoc
// @Summary Obtener usuario
// @Tags users
// @Produce json
// @Param userID path string true "ID del usuario"
// @Success 200 {object} response.Record[User]
// @Failure 404 {object} response.Response "user not found"
// @Router /users/{userID} [get]
func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, origin, err := svc.GetByID(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusOK, response.Record[User]{Data: u, Origin: origin})
	}
}

// createUserHandler godoc
// @Summary Crear usuario
// @Description Crea un nutricionista o un paciente. Un paciente requiere nutricionista_id. Los errores del servicio upstream se devuelven con su mensaje.
// @Tags users
// @Accept json
// @Produce json
// @Param payload body CreateInput true "Datos del usuario"
// @Success 201 {object} User
// @Failure 400 {object} response.Response "invalid json / validación"
// @Failure 502 {object} response.Response "servicio de usuarios no disponible"
// @Router /users [post]
func createUserHandler(svc *Service) http.HandlerFunc {
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

		u, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusCreated, u)
	}
}

// updateUserHandler godoc
// @Summary Actualizar usuario
// @Description Solo se envían los campos presentes en el payload.
// @Tags users
// @Accept json
// @Produce json
// @Param userID path string true "ID del usuario"
// @Param payload body UpdateInput true "Campos a modificar"
// @Success 200 {object} User
// @Failure 400 {object} response.Response "invalid json / validación"
// @Router /users/{userID} [put]
func updateUserHandler(svc *Service) http.HandlerFunc {
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

		u, err := svc.Update(r.Context(), chi.URLParam(r, "userID"), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusOK, u)
	}
}

// deleteUserHandler godoc
// @Summary Eliminar usuario
// @Tags users
// @Param userID path string true "ID del usuario"
// @Success 204
// @Router /users/{userID} [delete]
func deleteUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "userID")); err != nil {
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
