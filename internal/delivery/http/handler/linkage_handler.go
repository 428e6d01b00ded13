package handler

import (
	"net/http"

	"rehab-scheduling/internal/domain/entity"
	"rehab-scheduling/internal/usecase"
	"rehab-scheduling/pkg/response"
)

type LinkageHandler struct {
	linkageUsecase usecase.LinkageResolverUsecase
}

func NewLinkageHandler(linkageUsecase usecase.LinkageResolverUsecase) *LinkageHandler {
	return &LinkageHandler{linkageUsecase: linkageUsecase}
}

// GetMyLinkage returns the practitioners and centers the calling patient may book
// @Summary Patient linkage
// @Tags Linkage
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /linkage [get]
func (h *LinkageHandler) GetMyLinkage(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	patient, ok := actor.(entity.PatientActor)
	if !ok {
		response.Forbidden(w, "Only patients have a linkage")
		return
	}

	linkage, err := h.linkageUsecase.GetLinkage(r.Context(), patient.PatientID)
	if err != nil {
		writeError(w, err, "Failed to resolve linkage")
		return
	}

	response.Success(w, http.StatusOK, "Linkage retrieved successfully", linkage)
}
