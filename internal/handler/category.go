package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TicketXOS/CRM-sub001/internal/model"
	"github.com/TicketXOS/CRM-sub001/internal/service"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/tree", h.Tree)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// GET /categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]any{
		"categories": categories,
		"total":      len(categories),
	})
}

// GET /categories/tree
func (h *CategoryHandler) Tree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.categoryService.Tree(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, tree)
}

// POST /categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string  `json:"name"`
		ParentID  *string `json:"parentId"`
		SortOrder int     `json:"sortOrder"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	category, err := h.categoryService.Create(r.Context(), model.CreateCategoryParams{
		Name:      req.Name,
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, category)
}

// GET /categories/{id}
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.categoryService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, category)
}

// PUT /categories/{id}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      *string `json:"name"`
		ParentID  *string `json:"parentId"`
		SortOrder *int    `json:"sortOrder"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	category, err := h.categoryService.Update(r.Context(), chi.URLParam(r, "id"), model.UpdateCategoryParams{
		Name:      req.Name,
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, category)
}

// DELETE /categories/{id}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.categoryService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Category deleted")
}
