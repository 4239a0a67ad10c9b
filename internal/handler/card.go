package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lifeline/lifeline-api/internal/model"
	"github.com/lifeline/lifeline-api/internal/service"
)

// CardHandler handles HTTP requests for help cards.
type CardHandler struct {
	service *service.CardService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(svc *service.CardService) *CardHandler {
	return &CardHandler{service: svc}
}

// HandleCreate handles POST /cards requests.
func (h *CardHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	card, err := h.service.Create(r.Context(), id, body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Card created successfully",
		"card":    card,
	})
}

// HandleList handles GET /cards requests.
func (h *CardHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cards, err := h.service.List(r.Context(), model.CardFilter{
		BloodType: q.Get("bloodType"),
		Status:    q.Get("status"),
		Location:  q.Get("location"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if cards == nil {
		cards = []model.Card{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Cards retrieved successfully",
		"count":   len(cards),
		"cards":   cards,
	})
}

// HandleGet handles GET /cards/{id} requests.
func (h *CardHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	card, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Card retrieved successfully",
		"card":    card,
	})
}

// HandleUpdate handles PUT /cards/{id} requests.
func (h *CardHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	card, err := h.service.Update(r.Context(), id, chi.URLParam(r, "id"), body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Card updated successfully",
		"card":    card,
	})
}

// HandleDelete handles DELETE /cards/{id} requests.
func (h *CardHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	card, err := h.service.Delete(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Card deleted successfully",
		"card":    card,
	})
}
