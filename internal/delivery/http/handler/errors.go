package handler

import (
	"errors"
	"net/http"

	"rehab-scheduling/internal/delivery/http/middleware"
	"rehab-scheduling/internal/domain/entity"
	"rehab-scheduling/internal/usecase"
	"rehab-scheduling/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// writeError maps usecase errors onto HTTP responses. Anything unknown is a
// 500 with the caller's fallback message.
func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrInconsistentLinkage):
		response.InternalServerError(w, "Patient linkage data is inconsistent, contact the center")
	case errors.Is(err, usecase.ErrUnauthorizedLinkage):
		response.Forbidden(w, err.Error())
	case errors.Is(err, usecase.ErrForbiddenActor):
		response.Forbidden(w, "Your role cannot perform this operation")
	case errors.Is(err, usecase.ErrAppointmentNotOwned):
		response.Forbidden(w, "Appointment is outside your scope")
	case errors.Is(err, usecase.ErrSlotConflict):
		response.Conflict(w, "Time slot is no longer available")
	case errors.Is(err, usecase.ErrInvalidTransition):
		response.Conflict(w, err.Error())
	case errors.Is(err, usecase.ErrInvalidTimeRange), errors.Is(err, usecase.ErrInvalidDate):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		response.NotFound(w, "Appointment not found")
	case errors.Is(err, usecase.ErrPractitionerNotFound):
		response.NotFound(w, "Practitioner not found")
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	case errors.Is(err, usecase.ErrCenterNotFound):
		response.NotFound(w, "Center not found")
	case errors.Is(err, usecase.ErrLinkNotFound):
		response.NotFound(w, "Active link not found")
	default:
		response.InternalServerError(w, fallback)
	}
}

// actorFrom reads the authenticated actor or writes a 401
func actorFrom(w http.ResponseWriter, r *http.Request) (entity.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return nil, false
	}
	return actor, true
}

// pathUUID parses a mux path variable or writes a 400
func pathUUID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.BadRequest(w, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}
