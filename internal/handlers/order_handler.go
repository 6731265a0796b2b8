package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"transfer-backend/internal/models"
	"transfer-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// OrderService is the service surface this handler needs.
type OrderService interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context, f models.OrderFilter) ([]*models.Order, error)
	UpdateOrder(ctx context.Context, id string, req *models.UpdateOrderRequest) (*models.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

type OrderHandler struct {
	Service OrderService
}

func NewOrderHandler(s OrderService) *OrderHandler {
	return &OrderHandler{Service: s}
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.Service.CreateOrder(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Service.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.OrderFilter{
		CustomerID: q.Get("customerId"),
		Status:     q.Get("status"),
		From:       q.Get("from"),
		To:         q.Get("to"),
	}

	orders, err := h.Service.ListOrders(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	utils.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.Service.UpdateOrder(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteOrder(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
