package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BaharRaf/trading/internal/domain"
	"github.com/BaharRaf/trading/internal/service"
)

// CustomerHandler handles HTTP requests for customer administration.
type CustomerHandler struct {
	customerSvc *service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerSvc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerSvc: customerSvc}
}

// createCustomerRequest is the JSON request body for POST /customers.
type createCustomerRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
}

// customerResponse is the JSON shape of a customer.
type customerResponse struct {
	CustomerID string `json:"customer_id"`
	Number     int64  `json:"customer_number"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// customerListResponse is the JSON response for GET /customers.
type customerListResponse struct {
	Customers []customerResponse `json:"customers"`
	Total     int                `json:"total"`
}

func toCustomerResponse(c domain.Customer) customerResponse {
	return customerResponse{
		CustomerID: c.ID,
		Number:     c.Number,
		Username:   c.Username,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Address:    c.Address,
		CreatedAt:  c.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// Create handles POST /customers.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := ParseJSON(r, &req); err != nil {
		mapError(w, err)
		return
	}

	customer, err := h.customerSvc.Create(actorFrom(r), service.CreateCustomerRequest{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
	})
	if err != nil {
		mapError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, toCustomerResponse(customer))
}

// Get handles GET /customers/{customer_id}.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customerSvc.GetByID(actorFrom(r), chi.URLParam(r, "customer_id"))
	if err != nil {
		mapError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, toCustomerResponse(customer))
}

// Search handles GET /customers with first_name/last_name filters.
func (h *CustomerHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	customers, err := h.customerSvc.SearchByName(actorFrom(r), q.Get("first_name"), q.Get("last_name"))
	if err != nil {
		mapError(w, err)
		return
	}

	resp := customerListResponse{
		Customers: make([]customerResponse, len(customers)),
		Total:     len(customers),
	}
	for i, c := range customers {
		resp.Customers[i] = toCustomerResponse(c)
	}
	WriteJSON(w, http.StatusOK, resp)
}
