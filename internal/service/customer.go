package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/TicketXOS/CRM-sub001/internal/errors"
	"github.com/TicketXOS/CRM-sub001/internal/model"
	"github.com/TicketXOS/CRM-sub001/internal/repository"
	"github.com/TicketXOS/CRM-sub001/internal/util"
)

type CustomerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

type CustomerListResult struct {
	Customers []model.Customer `json:"customers"`
	Total     int              `json:"total"`
}

func (s *CustomerService) Create(ctx context.Context, params model.CreateCustomerParams) (*model.Customer, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, apperrors.MissingRequired("name")
	}
	params.Email = strings.ToLower(strings.TrimSpace(params.Email))
	if params.Email == "" {
		return nil, apperrors.MissingRequired("email")
	}
	if !util.IsValidEmail(params.Email) {
		return nil, apperrors.InvalidInput("email", "must be a valid email address")
	}

	existing, err := s.customerRepo.FindByEmail(ctx, params.Email)
	if err != nil {
		return nil, fmt.Errorf("find customer by email: %w", err)
	}
	if existing != nil {
		return nil, apperrors.AlreadyExists("Customer with this email")
	}

	customer, err := s.customerRepo.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	log.Info().Str("customerId", customer.ID).Msg("customer created")
	return customer, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil {
		return nil, apperrors.NotFound("Customer")
	}
	return customer, nil
}

func (s *CustomerService) List(ctx context.Context, search string, limit, offset int) (*CustomerListResult, error) {
	customers, err := s.customerRepo.List(ctx, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	total, err := s.customerRepo.Count(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}

	if customers == nil {
		customers = []model.Customer{}
	}
	return &CustomerListResult{Customers: customers, Total: total}, nil
}

func (s *CustomerService) Update(ctx context.Context, id string, params model.UpdateCustomerParams) (*model.Customer, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Update(ctx, id, params); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}

	return s.Get(ctx, id)
}

// Delete refuses to remove a customer with existing orders; order history
// must stay attributable.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	orders, err := s.customerRepo.CountOrders(ctx, id)
	if err != nil {
		return fmt.Errorf("count customer orders: %w", err)
	}
	if orders > 0 {
		return apperrors.Conflict("customer has existing orders")
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	log.Info().Str("customerId", id).Msg("customer deleted")
	return nil
}
