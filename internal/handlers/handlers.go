package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MovieKeeper/internal/apperr"
	"MovieKeeper/internal/config"
	"MovieKeeper/internal/middleware"
	"MovieKeeper/internal/service"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	movieService *service.MovieService,
	search SearchProvider,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	// Handlers
	sessionHandler := NewSessionHandler(userService, logger)
	searchHandler := NewSearchHandler(search, logger)
	movieHandler := NewMovieHandler(movieService, logger)

	// Session routes
	r.Post("/api/session/ensure-user", sessionHandler.EnsureUser)

	// Search routes
	r.Get("/api/search", searchHandler.Search)

	// Movie routes
	r.Route("/api/users/{userId}/movies", func(r chi.Router) {
		r.Get("/", movieHandler.List)
		r.Post("/", movieHandler.Add)
		r.Post("/{id}/favorite", movieHandler.Favorite)
		r.Patch("/{id}", movieHandler.Edit)
		r.Delete("/{id}", movieHandler.Delete)
	})

	return &Handler{Router: r}
}

// writeJSON сериализует успешный ответ.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError отображает ошибку в единый JSON-конверт
// {success:false, message, code?, path?, value?}.
func writeError(w http.ResponseWriter, err error) {
	ae := apperr.From(err)
	writeJSON(w, ae.Status, apperr.ToEnvelope(ae))
}
