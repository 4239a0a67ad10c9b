package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lifeline/lifeline-api/internal/model"
	"github.com/lifeline/lifeline-api/internal/service"
)

// ProfileHandler handles HTTP requests for donor profiles.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// HandleCreate handles POST /profiles requests.
func (h *ProfileHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	profile, err := h.service.Create(r.Context(), id, body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Profile created successfully",
		"profile": profile,
	})
}

// HandleList handles GET /profiles. isAvailable filters on "true" versus any
// other value.
func (h *ProfileHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.ProfileFilter{
		BloodType: q.Get("bloodType"),
		Location:  q.Get("location"),
		Gender:    q.Get("gender"),
	}
	if q.Has("isAvailable") {
		available := q.Get("isAvailable") == "true"
		filter.IsAvailable = &available
	}

	profiles, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if profiles == nil {
		profiles = []model.Profile{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Profiles retrieved successfully",
		"count":    len(profiles),
		"profiles": profiles,
	})
}

// HandleGet handles GET /profiles/{id} requests.
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile retrieved successfully",
		"profile": profile,
	})
}

// HandleMe handles GET /profiles/me requests.
func (h *ProfileHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	profile, err := h.service.Mine(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile retrieved successfully",
		"profile": profile,
	})
}

// HandleUpdate handles PUT /profiles/{id} requests.
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	profile, err := h.service.Update(r.Context(), id, chi.URLParam(r, "id"), body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"profile": profile,
	})
}

// HandleDelete handles DELETE /profiles/{id} requests.
func (h *ProfileHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	profile, err := h.service.Delete(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile deleted successfully",
		"profile": profile,
	})
}
