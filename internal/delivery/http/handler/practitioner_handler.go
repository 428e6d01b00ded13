package handler

import (
	"net/http"

	"rehab-scheduling/internal/domain/entity"
	"rehab-scheduling/internal/usecase"
	"rehab-scheduling/pkg/response"

	"github.com/google/uuid"
)

type PractitionerHandler struct {
	workloadUsecase usecase.WorkloadUsecase
}

func NewPractitionerHandler(workloadUsecase usecase.WorkloadUsecase) *PractitionerHandler {
	return &PractitionerHandler{workloadUsecase: workloadUsecase}
}

// ListPractitioners returns the bookable practitioners of a center with their workload
// @Summary List practitioners
// @Tags Practitioners
// @Security BearerAuth
// @Produce json
// @Param centerId query string true "Center ID"
// @Param specialization query string false "Specialization"
// @Param name query string false "Name"
// @Success 200 {object} response.Response
// @Router /practitioners [get]
func (h *PractitionerHandler) ListPractitioners(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	centerID, err := uuid.Parse(query.Get("centerId"))
	if err != nil {
		response.BadRequest(w, "Invalid center ID")
		return
	}

	filter := &entity.PractitionerFilter{
		Specialization: query.Get("specialization"),
		Name:           query.Get("name"),
	}

	practitioners, err := h.workloadUsecase.ListPractitioners(r.Context(), centerID, filter)
	if err != nil {
		writeError(w, err, "Failed to list practitioners")
		return
	}

	response.Success(w, http.StatusOK, "Practitioners retrieved successfully", practitioners)
}

// GetWorkload returns the patient load of one practitioner
// @Summary Practitioner workload
// @Tags Practitioners
// @Security BearerAuth
// @Param id path string true "Practitioner ID"
// @Success 200 {object} response.Response
// @Router /practitioners/{id}/workload [get]
func (h *PractitionerHandler) GetWorkload(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "practitioner")
	if !ok {
		return
	}

	workload, err := h.workloadUsecase.Aggregate(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get workload")
		return
	}

	response.Success(w, http.StatusOK, "Workload retrieved successfully", workload)
}
