package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"rehab-scheduling/internal/delivery/dto"
	"rehab-scheduling/internal/usecase"
	"rehab-scheduling/pkg/response"
	"rehab-scheduling/pkg/validator"
)

type CenterLinkHandler struct {
	centerLinkUsecase usecase.CenterLinkUsecase
	validator         *validator.CustomValidator
}

func NewCenterLinkHandler(centerLinkUsecase usecase.CenterLinkUsecase, validator *validator.CustomValidator) *CenterLinkHandler {
	return &CenterLinkHandler{
		centerLinkUsecase: centerLinkUsecase,
		validator:         validator,
	}
}

// decodeLinkRequest accepts an empty body as a link without notes
func (h *CenterLinkHandler) decodeLinkRequest(w http.ResponseWriter, r *http.Request) (*dto.UpsertCenterLinkRequest, bool) {
	var req dto.UpsertCenterLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body")
		return nil, false
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return nil, false
	}
	return &req, true
}

// LinkPractitioner activates a practitioner at a center
// @Summary Link practitioner to center
// @Tags Centers
// @Security BearerAuth
// @Param centerId path string true "Center ID"
// @Param practitionerId path string true "Practitioner ID"
// @Success 200 {object} response.Response
// @Router /centers/{centerId}/practitioners/{practitionerId} [put]
func (h *CenterLinkHandler) LinkPractitioner(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	centerID, ok := pathUUID(w, r, "centerId", "center")
	if !ok {
		return
	}
	practitionerID, ok := pathUUID(w, r, "practitionerId", "practitioner")
	if !ok {
		return
	}
	req, ok := h.decodeLinkRequest(w, r)
	if !ok {
		return
	}

	link, err := h.centerLinkUsecase.LinkPractitioner(r.Context(), actor, centerID, practitionerID, req)
	if err != nil {
		writeError(w, err, "Failed to link practitioner")
		return
	}

	response.Success(w, http.StatusOK, "Practitioner linked successfully", link)
}

func (h *CenterLinkHandler) UnlinkPractitioner(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	centerID, ok := pathUUID(w, r, "centerId", "center")
	if !ok {
		return
	}
	practitionerID, ok := pathUUID(w, r, "practitionerId", "practitioner")
	if !ok {
		return
	}

	if err := h.centerLinkUsecase.UnlinkPractitioner(r.Context(), actor, centerID, practitionerID); err != nil {
		writeError(w, err, "Failed to unlink practitioner")
		return
	}

	response.Success(w, http.StatusOK, "Practitioner unlinked successfully", nil)
}

// LinkPatient activates a patient at a center
// @Summary Link patient to center
// @Tags Centers
// @Security BearerAuth
// @Param centerId path string true "Center ID"
// @Param patientId path string true "Patient ID"
// @Success 200 {object} response.Response
// @Router /centers/{centerId}/patients/{patientId} [put]
func (h *CenterLinkHandler) LinkPatient(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	centerID, ok := pathUUID(w, r, "centerId", "center")
	if !ok {
		return
	}
	patientID, ok := pathUUID(w, r, "patientId", "patient")
	if !ok {
		return
	}
	req, ok := h.decodeLinkRequest(w, r)
	if !ok {
		return
	}

	link, err := h.centerLinkUsecase.LinkPatient(r.Context(), actor, centerID, patientID, req)
	if err != nil {
		writeError(w, err, "Failed to link patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient linked successfully", link)
}

func (h *CenterLinkHandler) UnlinkPatient(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	centerID, ok := pathUUID(w, r, "centerId", "center")
	if !ok {
		return
	}
	patientID, ok := pathUUID(w, r, "patientId", "patient")
	if !ok {
		return
	}

	if err := h.centerLinkUsecase.UnlinkPatient(r.Context(), actor, centerID, patientID); err != nil {
		writeError(w, err, "Failed to unlink patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient unlinked successfully", nil)
}
