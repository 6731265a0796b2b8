package services

import (
	"context"
	"fmt"

	"transfer-backend/internal/models"
)

// CustomerStore is the slice of the storage layer the customer service needs.
type CustomerStore interface {
	Create(ctx context.Context, c *models.Customer) error
	Get(ctx context.Context, id string) (*models.Customer, error)
	List(ctx context.Context, q string) ([]*models.Customer, error)
	Update(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, id string) error
}

type CustomerService struct {
	Repo CustomerStore
}

func NewCustomerService(repo CustomerStore) *CustomerService {
	return &CustomerService{Repo: repo}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", models.ErrValidation)
	}

	customer := &models.Customer{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
	}
	if err := s.Repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return s.Repo.Get(ctx, id)
}

// ListCustomers returns customers newest first; a non-empty q filters by
// name, phone or email substring.
func (s *CustomerService) ListCustomers(ctx context.Context, q string) ([]*models.Customer, error) {
	return s.Repo.List(ctx, q)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	customer, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", models.ErrValidation)
		}
		customer.Name = *req.Name
	}
	if req.ContactPerson != nil {
		customer.ContactPerson = *req.ContactPerson
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}

	if err := s.Repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

// DeleteCustomer removes a customer. Storage rejects the delete when orders
// or invoices still reference the customer.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
