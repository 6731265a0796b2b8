package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"transfer-backend/internal/models"
)

// OrderStore is the slice of the storage layer the order service needs.
type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	Get(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, f models.OrderFilter) ([]*models.Order, error)
	Update(ctx context.Context, o *models.Order) error
	Delete(ctx context.Context, id string) error
}

type OrderService struct {
	Repo      OrderStore
	Customers CustomerGetter
}

func NewOrderService(repo OrderStore, customers CustomerGetter) *OrderService {
	return &OrderService{Repo: repo, Customers: customers}
}

func (s *OrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	if req.CustomerID == "" {
		return nil, fmt.Errorf("%w: customer_id is required", models.ErrValidation)
	}
	if req.FromLocation == "" || req.ToLocation == "" {
		return nil, fmt.Errorf("%w: from_location and to_location are required", models.ErrValidation)
	}
	pickupAt, err := time.Parse(time.RFC3339, req.PickupAt)
	if err != nil {
		return nil, fmt.Errorf("%w: bad pickup_at %q", models.ErrValidation, req.PickupAt)
	}
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}
	if req.VehicleType != "" && !validVehicleType(req.VehicleType) {
		return nil, fmt.Errorf("%w: unknown vehicle_type %q", models.ErrValidation, req.VehicleType)
	}

	carsCount := 1
	if req.CarsCount != nil {
		carsCount = *req.CarsCount
	}
	if carsCount < 1 || carsCount > 10 {
		return nil, fmt.Errorf("%w: cars_count must be between 1 and 10", models.ErrValidation)
	}

	status := req.Status
	if status == "" {
		status = models.OrderStatusDraft
	}
	if !validOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown order status %q", models.ErrValidation, status)
	}

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentStatusUnpaid
	}
	if paymentStatus != models.PaymentStatusUnpaid && paymentStatus != models.PaymentStatusPaid {
		return nil, fmt.Errorf("%w: unknown payment_status %q", models.ErrValidation, paymentStatus)
	}

	var paymentDueDate *time.Time
	if req.PaymentDueDate != "" {
		d, err := parseDateOnly(req.PaymentDueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: bad payment_due_date %q", models.ErrValidation, req.PaymentDueDate)
		}
		paymentDueDate = &d
	}

	if _, err := s.Customers.Get(ctx, req.CustomerID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown customer %s", models.ErrInvalidReference, req.CustomerID)
		}
		return nil, err
	}

	order := &models.Order{
		CustomerID:     req.CustomerID,
		PickupAt:       pickupAt,
		FromLocation:   req.FromLocation,
		ToLocation:     req.ToLocation,
		VehicleType:    req.VehicleType,
		CarsCount:      carsCount,
		DriverName:     req.DriverName,
		Price:          req.Price,
		Status:         status,
		PaymentStatus:  paymentStatus,
		PaymentDueDate: paymentDueDate,
		Notes:          req.Notes,
	}
	if err := s.Repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, order.ID)
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.Repo.Get(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context, f models.OrderFilter) ([]*models.Order, error) {
	if f.Status != "" && !validOrderStatus(f.Status) {
		return nil, fmt.Errorf("%w: unknown order status %q", models.ErrValidation, f.Status)
	}
	return s.Repo.List(ctx, f)
}

func (s *OrderService) UpdateOrder(ctx context.Context, id string, req *models.UpdateOrderRequest) (*models.Order, error) {
	order, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		if _, err := s.Customers.Get(ctx, *req.CustomerID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown customer %s", models.ErrInvalidReference, *req.CustomerID)
			}
			return nil, err
		}
		order.CustomerID = *req.CustomerID
	}
	if req.PickupAt != nil {
		t, err := time.Parse(time.RFC3339, *req.PickupAt)
		if err != nil {
			return nil, fmt.Errorf("%w: bad pickup_at %q", models.ErrValidation, *req.PickupAt)
		}
		order.PickupAt = t
	}
	if req.FromLocation != nil {
		order.FromLocation = *req.FromLocation
	}
	if req.ToLocation != nil {
		order.ToLocation = *req.ToLocation
	}
	if req.VehicleType != nil {
		if *req.VehicleType != "" && !validVehicleType(*req.VehicleType) {
			return nil, fmt.Errorf("%w: unknown vehicle_type %q", models.ErrValidation, *req.VehicleType)
		}
		order.VehicleType = *req.VehicleType
	}
	if req.CarsCount != nil {
		if *req.CarsCount < 1 || *req.CarsCount > 10 {
			return nil, fmt.Errorf("%w: cars_count must be between 1 and 10", models.ErrValidation)
		}
		order.CarsCount = *req.CarsCount
	}
	if req.DriverName != nil {
		order.DriverName = *req.DriverName
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return nil, err
		}
		order.Price = *req.Price
	}
	if req.Status != nil {
		if !validOrderStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown order status %q", models.ErrValidation, *req.Status)
		}
		order.Status = *req.Status
	}
	if req.PaymentStatus != nil {
		if *req.PaymentStatus != models.PaymentStatusUnpaid && *req.PaymentStatus != models.PaymentStatusPaid {
			return nil, fmt.Errorf("%w: unknown payment_status %q", models.ErrValidation, *req.PaymentStatus)
		}
		order.PaymentStatus = *req.PaymentStatus
	}
	if req.PaymentDueDate != nil {
		if *req.PaymentDueDate == "" {
			order.PaymentDueDate = nil
		} else {
			d, err := parseDateOnly(*req.PaymentDueDate)
			if err != nil {
				return nil, fmt.Errorf("%w: bad payment_due_date %q", models.ErrValidation, *req.PaymentDueDate)
			}
			order.PaymentDueDate = &d
		}
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}

	if err := s.Repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

// DeleteOrder removes an order; invoice items that referenced it keep
// existing with an empty order reference.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func validatePrice(price string) error {
	v, err := strconv.ParseFloat(price, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: price %q is not a decimal number", models.ErrValidation, price)
	}
	if v < 0 {
		return fmt.Errorf("%w: price must not be negative", models.ErrValidation)
	}
	return nil
}

func validOrderStatus(s string) bool {
	switch s {
	case models.OrderStatusDraft, models.OrderStatusConfirmed, models.OrderStatusDone, models.OrderStatusCanceled:
		return true
	}
	return false
}

func validVehicleType(s string) bool {
	switch s {
	case models.VehicleSedan, models.VehicleMinivan, models.VehicleSUV:
		return true
	}
	return false
}
