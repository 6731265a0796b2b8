package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"transfer-backend/internal/models"
	"transfer-backend/pkg/utils"
)

type CompanyProfileService interface {
	GetOne(ctx context.Context) (*models.CompanyProfile, error)
	Upsert(ctx context.Context, req *models.UpsertCompanyProfileRequest) (*models.CompanyProfile, error)
}

type CompanyProfileHandler struct {
	Service CompanyProfileService
}

func NewCompanyProfileHandler(s CompanyProfileService) *CompanyProfileHandler {
	return &CompanyProfileHandler{Service: s}
}

// GetProfile returns the single company profile, or null when none is set yet.
func (h *CompanyProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Service.GetOne(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, profile)
}

func (h *CompanyProfileHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertCompanyProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.Service.Upsert(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, profile)
}
