package handlers

import (
	"errors"
	"log"
	"net/http"

	"transfer-backend/internal/models"
	"transfer-backend/internal/pdf"
	"transfer-backend/pkg/utils"
)

// writeServiceError maps the service error taxonomy onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrInvalidReference),
		errors.Is(err, models.ErrCrossCustomer):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrConflict):
		utils.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, pdf.ErrEngineUnavailable):
		utils.Error(w, http.StatusInternalServerError, err.Error())
	default:
		log.Printf("[HTTP] internal error: %v", err)
		utils.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
