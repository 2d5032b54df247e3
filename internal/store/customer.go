package store

import (
	"strings"
	"sync"

	"github.com/BaharRaf/trading/internal/domain"
)

// firstCustomerNumber is where bank-assigned customer numbers start.
const firstCustomerNumber = 100001

// CustomerStore is a thread-safe in-memory store for customers, keyed
// by id with a unique-username index.
type CustomerStore struct {
	mu         sync.RWMutex
	byID       map[string]domain.Customer
	byUsername map[string]string // username → id
	nextNumber int64
}

// NewCustomerStore creates an empty CustomerStore.
func NewCustomerStore() *CustomerStore {
	return &CustomerStore{
		byID:       make(map[string]domain.Customer),
		byUsername: make(map[string]string),
		nextNumber: firstCustomerNumber,
	}
}

// Create adds a customer and assigns its unique customer number. It
// returns domain.ErrCustomerAlreadyExists if the id or username is
// already taken.
func (s *CustomerStore) Create(c domain.Customer) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[c.ID]; exists {
		return domain.Customer{}, domain.ErrCustomerAlreadyExists
	}
	if _, exists := s.byUsername[c.Username]; exists {
		return domain.Customer{}, domain.ErrCustomerAlreadyExists
	}

	c.Number = s.nextNumber
	s.nextNumber++

	s.byID[c.ID] = c
	s.byUsername[c.Username] = c.ID
	return c, nil
}

// GetByID retrieves a customer by id. It returns
// domain.ErrCustomerNotFound if no such customer exists.
func (s *CustomerStore) GetByID(id string) (domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byID[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return c, nil
}

// GetByUsername retrieves a customer by login username. It returns
// domain.ErrCustomerNotFound if no such customer exists.
func (s *CustomerStore) GetByUsername(username string) (domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return s.byID[id], nil
}

// SearchByName returns customers whose first or last name matches the
// given filters, case-insensitively. Empty filters match everything.
func (s *CustomerStore) SearchByName(firstName, lastName string) []domain.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	first := strings.ToLower(strings.TrimSpace(firstName))
	last := strings.ToLower(strings.TrimSpace(lastName))

	result := make([]domain.Customer, 0)
	for _, c := range s.byID {
		if first != "" && !strings.Contains(strings.ToLower(c.FirstName), first) {
			continue
		}
		if last != "" && !strings.Contains(strings.ToLower(c.LastName), last) {
			continue
		}
		result = append(result, c)
	}
	return result
}
