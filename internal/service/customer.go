package service

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/BaharRaf/trading/internal/domain"
	"github.com/BaharRaf/trading/internal/store"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// CreateCustomerRequest is the input for customer creation.
type CreateCustomerRequest struct {
	Username  string
	FirstName string
	LastName  string
	Address   string
}

// CustomerService handles customer administration. All operations are
// employee-only; customers never manage accounts, not even their own.
type CustomerService struct {
	guard     *AccessGuard
	customers *store.CustomerStore
}

// NewCustomerService creates a CustomerService.
func NewCustomerService(guard *AccessGuard, customers *store.CustomerStore) *CustomerService {
	return &CustomerService{guard: guard, customers: customers}
}

// Create validates the request and creates a customer with a freshly
// minted id and bank-assigned customer number.
func (s *CustomerService) Create(actor domain.Actor, req CreateCustomerRequest) (domain.Customer, error) {
	if err := s.guard.RequireEmployee(actor); err != nil {
		return domain.Customer{}, err
	}

	if !usernameRegex.MatchString(req.Username) {
		return domain.Customer{}, &domain.ValidationError{
			Message: "username must match ^[a-zA-Z0-9_-]{1,64}$",
		}
	}
	if req.FirstName == "" || req.LastName == "" {
		return domain.Customer{}, &domain.ValidationError{
			Message: "first and last name are required",
		}
	}

	return s.customers.Create(domain.Customer{
		ID:        uuid.New().String(),
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		CreatedAt: time.Now().UTC(),
	})
}

// GetByID retrieves a customer.
func (s *CustomerService) GetByID(actor domain.Actor, id string) (domain.Customer, error) {
	if err := s.guard.RequireEmployee(actor); err != nil {
		return domain.Customer{}, err
	}
	return s.customers.GetByID(id)
}

// SearchByName finds customers by first/last name filters.
func (s *CustomerService) SearchByName(actor domain.Actor, firstName, lastName string) ([]domain.Customer, error) {
	if err := s.guard.RequireEmployee(actor); err != nil {
		return nil, err
	}
	return s.customers.SearchByName(firstName, lastName), nil
}
