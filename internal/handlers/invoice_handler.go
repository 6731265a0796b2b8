package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"transfer-backend/internal/models"
	"transfer-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// InvoiceService covers invoice assembly and lookup.
type InvoiceService interface {
	CreateFromOrders(ctx context.Context, req *models.CreateInvoiceRequest) (*models.Invoice, error)
	FindAll(ctx context.Context, customerID string) ([]*models.Invoice, error)
	FindOne(ctx context.Context, id string) (*models.Invoice, error)
	SetStatus(ctx context.Context, id, status string) (*models.Invoice, error)
}

// InvoicePDFService renders an invoice into a PDF document.
type InvoicePDFService interface {
	GeneratePDF(ctx context.Context, invoiceID string) ([]byte, error)
}

type InvoiceHandler struct {
	Service InvoiceService
	PDF     InvoicePDFService
}

func NewInvoiceHandler(s InvoiceService, pdf InvoicePDFService) *InvoiceHandler {
	return &InvoiceHandler{Service: s, PDF: pdf}
}

func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inv, err := h.Service.CreateFromOrders(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, inv)
}

func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Service.FindAll(r.Context(), r.URL.Query().Get("customerId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if invoices == nil {
		invoices = []*models.Invoice{}
	}
	utils.JSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Service.FindOne(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) SetInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inv, err := h.Service.SetStatus(r.Context(), mux.Vars(r)["id"], body.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) GetInvoicePDF(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	data, err := h.PDF.GeneratePDF(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", "invoice-"+id+".pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
