package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lifeline/lifeline-api/internal/model"
	"github.com/lifeline/lifeline-api/internal/service"
)

// ProductHandler serves the open /products catalogue.
type ProductHandler struct {
	service *service.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{service: svc}
}

// HandleCreate handles POST /products requests.
func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	product, err := h.service.Create(r.Context(), body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Product created successfully",
		"product": product,
	})
}

// HandleList handles GET /products requests.
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Products retrieved successfully",
		"count":    len(products),
		"products": products,
	})
}

// HandleGet handles GET /products/{id} requests.
func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Product retrieved successfully",
		"product": product,
	})
}

// HandleUpdate handles PUT /products/{id} requests.
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	product, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Product updated successfully",
		"product": product,
	})
}

// HandleDelete handles DELETE /products/{id} requests.
func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Product deleted successfully",
		"product": product,
	})
}
