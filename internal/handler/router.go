package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/lifeline/lifeline-api/internal/middleware"
	"github.com/lifeline/lifeline-api/internal/service"
)

// Deps holds everything the router needs.
type Deps struct {
	Auth     *service.AuthService
	Cards    *service.CardService
	Profiles *service.ProfileService
	Products *service.ProductService
	Tokens   middleware.TokenVerifier
	Users    middleware.UserLookup
}

// NewRouter builds the HTTP routes of the API.
func NewRouter(d Deps) http.Handler {
	authHandler := NewAuthHandler(d.Auth)
	cardHandler := NewCardHandler(d.Cards)
	profileHandler := NewProfileHandler(d.Profiles)
	productHandler := NewProductHandler(d.Products)
	requireAuth := middleware.Authenticate(d.Tokens, d.Users)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.HandleSignup)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)
		r.With(requireAuth).Get("/me", authHandler.HandleMe)
	})

	r.Route("/cards", func(r chi.Router) {
		r.Get("/", cardHandler.HandleList)
		r.Get("/{id}", cardHandler.HandleGet)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", cardHandler.HandleCreate)
			r.Put("/{id}", cardHandler.HandleUpdate)
			r.Delete("/{id}", cardHandler.HandleDelete)
		})
	})

	r.Route("/profiles", func(r chi.Router) {
		r.Get("/", profileHandler.HandleList)
		r.With(requireAuth).Get("/me", profileHandler.HandleMe)
		r.Get("/{id}", profileHandler.HandleGet)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", profileHandler.HandleCreate)
			r.Put("/{id}", profileHandler.HandleUpdate)
			r.Delete("/{id}", profileHandler.HandleDelete)
		})
	})

	r.Route("/products", func(r chi.Router) {
		r.Post("/", productHandler.HandleCreate)
		r.Get("/", productHandler.HandleList)
		r.Get("/{id}", productHandler.HandleGet)
		r.Put("/{id}", productHandler.HandleUpdate)
		r.Delete("/{id}", productHandler.HandleDelete)
	})

	return r
}
