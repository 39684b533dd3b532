package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TicketXOS/CRM-sub001/internal/model"
	"github.com/TicketXOS/CRM-sub001/internal/service"
)

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/stock", h.AdjustStock)

	return r
}

// GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)
	result, err := h.productService.List(r.Context(), r.URL.Query().Get("search"), p.Limit, p.Offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, result)
}

// POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SKU         string  `json:"sku"`
		Name        string  `json:"name"`
		Description *string `json:"description"`
		CategoryID  *string `json:"categoryId"`
		PriceCents  int64   `json:"priceCents"`
		Stock       int     `json:"stock"`
		Active      *bool   `json:"active"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	product, err := h.productService.Create(r.Context(), model.CreateProductParams{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		Active:      active,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, product)
}

// GET /products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.productService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, product)
}

// PUT /products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		CategoryID  *string `json:"categoryId"`
		PriceCents  *int64  `json:"priceCents"`
		Active      *bool   `json:"active"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	product, err := h.productService.Update(r.Context(), chi.URLParam(r, "id"), model.UpdateProductParams{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		PriceCents:  req.PriceCents,
		Active:      req.Active,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, product)
}

// DELETE /products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.productService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Product deleted")
}

// POST /products/{id}/stock
func (h *ProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Delta int `json:"delta"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	product, err := h.productService.AdjustStock(r.Context(), chi.URLParam(r, "id"), req.Delta)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, product)
}
