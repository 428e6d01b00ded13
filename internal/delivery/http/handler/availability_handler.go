package handler

import (
	"net/http"

	"rehab-scheduling/internal/usecase"
	"rehab-scheduling/pkg/response"

	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityUsecase: availabilityUsecase}
}

// GetAvailability lists the free slots of a practitioner on one day
// @Summary Practitioner availability
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param practitionerId query string true "Practitioner ID"
// @Param date query string true "YYYY-MM-DD"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /availability [get]
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := uuid.Parse(r.URL.Query().Get("practitionerId"))
	if err != nil {
		response.BadRequest(w, "Invalid practitioner ID")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "date is required")
		return
	}

	availability, err := h.availabilityUsecase.AvailableSlots(r.Context(), practitionerID, date)
	if err != nil {
		writeError(w, err, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}
