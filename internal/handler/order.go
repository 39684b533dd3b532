package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/TicketXOS/CRM-sub001/internal/errors"
	"github.com/TicketXOS/CRM-sub001/internal/model"
	"github.com/TicketXOS/CRM-sub001/internal/service"
	"github.com/TicketXOS/CRM-sub001/internal/util"
)

var validOrderStatuses = []string{
	string(model.OrderStatusPending),
	string(model.OrderStatusPaid),
	string(model.OrderStatusShipped),
	string(model.OrderStatusCompleted),
	string(model.OrderStatusCancelled),
}

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)

	return r
}

// GET /orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if !util.IsValidEnum(status, validOrderStatuses) {
		writeError(w, apperrors.InvalidInput("status", "unknown order status"))
		return
	}

	p := ParsePagination(r)
	result, err := h.orderService.List(r.Context(), model.ListOrdersFilter{
		CustomerID: r.URL.Query().Get("customerId"),
		Status:     model.OrderStatus(status),
		Limit:      p.Limit,
		Offset:     p.Offset,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, result)
}

// POST /orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID string `json:"customerId"`
		Items      []struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		} `json:"items"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := model.CreateOrderParams{CustomerID: req.CustomerID}
	for _, item := range req.Items {
		params.Items = append(params.Items, model.CreateOrderItemParams{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orderService.Create(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, order)
}

// GET /orders/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, order)
}

// PATCH /orders/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.Status == "" {
		writeError(w, apperrors.MissingRequired("status"))
		return
	}
	if !util.IsValidEnum(req.Status, validOrderStatuses) {
		writeError(w, apperrors.InvalidInput("status", "unknown order status"))
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), chi.URLParam(r, "id"), model.OrderStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, order)
}
