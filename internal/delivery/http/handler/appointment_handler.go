package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"rehab-scheduling/internal/delivery/dto"
	"rehab-scheduling/internal/domain/entity"
	"rehab-scheduling/internal/usecase"
	"rehab-scheduling/pkg/response"
	"rehab-scheduling/pkg/validator"

	"github.com/google/uuid"
)

type AppointmentHandler struct {
	bookingUsecase   usecase.BookingUsecase
	lifecycleUsecase usecase.AppointmentLifecycleUsecase
	validator        *validator.CustomValidator
}

func NewAppointmentHandler(
	bookingUsecase usecase.BookingUsecase,
	lifecycleUsecase usecase.AppointmentLifecycleUsecase,
	validator *validator.CustomValidator,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookingUsecase:   bookingUsecase,
		lifecycleUsecase: lifecycleUsecase,
		validator:        validator,
	}
}

// CreateAppointment books a new appointment
// @Summary Book an appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Appointment"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.bookingUsecase.Book(r.Context(), actor, &req)
	if err != nil {
		writeError(w, err, "Failed to book appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

// UpdateAppointment reschedules or edits a SCHEDULED or CONFIRMED appointment
// @Summary Update an appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateAppointmentRequest true "Appointment"
// @Success 200 {object} response.Response
// @Router /appointments/{id} [put]
func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "appointment")
	if !ok {
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.bookingUsecase.Update(r.Context(), actor, id, &req)
	if err != nil {
		writeError(w, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "appointment")
	if !ok {
		return
	}

	appointment, err := h.bookingUsecase.GetAppointment(r.Context(), actor, id)
	if err != nil {
		writeError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// ListAppointments returns the caller's appointments
// @Summary List appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param date query string false "YYYY-MM-DD"
// @Param status query string false "Status"
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	query := dto.AppointmentListQuery{
		Date:   r.URL.Query().Get("date"),
		Status: r.URL.Query().Get("status"),
	}
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointments, err := h.bookingUsecase.ListAppointments(r.Context(), actor, &query)
	if err != nil {
		writeError(w, err, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

type transitionFunc func(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.AppointmentResponse, error)

func (h *AppointmentHandler) transition(fn transitionFunc, success, fallback string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}
		id, ok := pathUUID(w, r, "id", "appointment")
		if !ok {
			return
		}

		appointment, err := fn(r.Context(), actor, id)
		if err != nil {
			writeError(w, err, fallback)
			return
		}

		response.Success(w, http.StatusOK, success, appointment)
	}
}

// CancelAppointment moves an appointment to CANCELLED
// @Summary Cancel an appointment
// @Tags Appointments
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/cancel [post]
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	h.transition(h.bookingUsecase.Cancel, "Appointment cancelled successfully", "Failed to cancel appointment")(w, r)
}

func (h *AppointmentHandler) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	h.transition(h.lifecycleUsecase.Confirm, "Appointment confirmed successfully", "Failed to confirm appointment")(w, r)
}

func (h *AppointmentHandler) StartAppointment(w http.ResponseWriter, r *http.Request) {
	h.transition(h.lifecycleUsecase.Start, "Appointment started successfully", "Failed to start appointment")(w, r)
}

func (h *AppointmentHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	h.transition(h.lifecycleUsecase.Complete, "Appointment completed successfully", "Failed to complete appointment")(w, r)
}

func (h *AppointmentHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	h.transition(h.lifecycleUsecase.MarkNoShow, "Appointment marked as no-show", "Failed to mark no-show")(w, r)
}

// GetHistory returns the audit trail of an appointment
// @Summary Appointment history
// @Tags Appointments
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Router /appointments/{id}/history [get]
func (h *AppointmentHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "appointment")
	if !ok {
		return
	}

	history, err := h.lifecycleUsecase.History(r.Context(), actor, id)
	if err != nil {
		writeError(w, err, "Failed to get appointment history")
		return
	}

	response.Success(w, http.StatusOK, "Appointment history retrieved successfully", history)
}
