package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TicketXOS/CRM-sub001/internal/model"
	"github.com/TicketXOS/CRM-sub001/internal/service"
)

type CustomerHandler struct {
	customerService *service.CustomerService
}

func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

func (h *CustomerHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// GET /customers
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)
	result, err := h.customerService.List(r.Context(), r.URL.Query().Get("search"), p.Limit, p.Offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, result)
}

// POST /customers
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string  `json:"name"`
		Email   string  `json:"email"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
		Notes   *string `json:"notes"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	customer, err := h.customerService.Create(r.Context(), model.CreateCustomerParams{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, customer)
}

// GET /customers/{id}
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customerService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, customer)
}

// PUT /customers/{id}
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    *string `json:"name"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
		Notes   *string `json:"notes"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	customer, err := h.customerService.Update(r.Context(), chi.URLParam(r, "id"), model.UpdateCustomerParams{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, customer)
}

// DELETE /customers/{id}
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.customerService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Customer deleted")
}
