package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/lifeline/lifeline-api/internal/input"
	"github.com/lifeline/lifeline-api/internal/middleware"
	"github.com/lifeline/lifeline-api/internal/model"
	"github.com/lifeline/lifeline-api/internal/service"
)

const maxBodyBytes = 1 << 20 // 1MB

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"message": msg}
}

var statusByKind = map[service.Kind]int{
	service.KindValidation:   http.StatusBadRequest,
	service.KindUnauthorized: http.StatusUnauthorized,
	service.KindForbidden:    http.StatusForbidden,
	service.KindNotFound:     http.StatusNotFound,
	service.KindConflict:     http.StatusConflict,
}

// writeError maps err onto its status. Unclassified errors are returned to the
// client verbatim with a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if status, ok := statusByKind[service.KindOf(err)]; ok {
		writeJSON(w, status, errorResponse(err.Error()))
		return
	}
	slog.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", chimw.GetReqID(r.Context()),
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, errorResponse(err.Error()))
}

// readBody decodes a JSON object or urlencoded form into an input.Body.
// It writes the error response itself and reports false on failure.
func readBody(w http.ResponseWriter, r *http.Request) (input.Body, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			writeBodyError(w, err)
			return nil, false
		}
		body := make(input.Body, len(r.PostForm))
		for key, values := range r.PostForm {
			if len(values) > 0 {
				body[key] = values[0]
			}
		}
		return body, true
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var body input.Body
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return input.Body{}, true
		}
		writeBodyError(w, err)
		return nil, false
	}
	if body == nil {
		body = input.Body{}
	}
	return body, true
}

func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("Request body too large"))
		return
	}
	writeJSON(w, http.StatusBadRequest, errorResponse("Invalid request body"))
}

// caller returns the authenticated identity, answering 401 when there is none.
func caller(w http.ResponseWriter, r *http.Request) (model.Identity, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Access token required"))
	}
	return id, ok
}
