package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"MovieKeeper/internal/apperr"
	"MovieKeeper/internal/model"
	"MovieKeeper/internal/service"
)

// MovieHandler — CRUD по пользовательским снапшотам фильмов.
type MovieHandler struct {
	MovieService *service.MovieService
	Logger       *zap.SugaredLogger
}

func NewMovieHandler(movieService *service.MovieService, logger *zap.SugaredLogger) *MovieHandler {
	return &MovieHandler{MovieService: movieService, Logger: logger}
}

// Тела запросов и ответов ниже зеркалятся клиентскими типами в
// internal/cli/service: менять только парой.
type addMovieRequest struct {
	OMDBID   *string `json:"omdbId,omitempty"`
	Title    string  `json:"title"`
	Year     *string `json:"year,omitempty"`
	Runtime  *string `json:"runtime,omitempty"`
	Genre    *string `json:"genre,omitempty"`
	Director *string `json:"director,omitempty"`
}

type editMovieRequest struct {
	Title    string  `json:"title"`
	Year     *string `json:"year"`
	Runtime  *string `json:"runtime"`
	Genre    *string `json:"genre"`
	Director *string `json:"director"`
}

type favoriteRequest struct {
	IsFavorite *bool `json:"isFavorite,omitempty"`
}

type favoriteResponse struct {
	ID         string `json:"id"`
	IsFavorite bool   `json:"isFavorite"`
}

type listResponse struct {
	Items []model.Movie `json:"items"`
}

type deleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// List обрабатывает GET /api/users/{userId}/movies?favorite&sort&order.
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var favorite *bool
	if raw := r.URL.Query().Get("favorite"); raw != "" {
		switch raw {
		case "true":
			v := true
			favorite = &v
		case "false":
			v := false
			favorite = &v
		default:
			writeError(w, apperr.BadRequest("favorite must be 'true' or 'false'"))
			return
		}
	}

	items, err := h.MovieService.List(r.Context(), userID,
		favorite, r.URL.Query().Get("sort"), r.URL.Query().Get("order"))
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []model.Movie{}
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items})
}

// Add обрабатывает POST /api/users/{userId}/movies.
func (h *MovieHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var req addMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Add: invalid request body", "error", err)
		writeError(w, apperr.BadRequest("invalid request body"))
		return
	}

	m, err := h.MovieService.Add(r.Context(), userID, service.AddInput{
		OMDBID:   req.OMDBID,
		Title:    req.Title,
		Year:     req.Year,
		Runtime:  req.Runtime,
		Genre:    req.Genre,
		Director: req.Director,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// Favorite обрабатывает POST /api/users/{userId}/movies/{id}/favorite.
func (h *MovieHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	var req favoriteRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperr.BadRequest("isFavorite must be boolean when provided"))
			return
		}
	}

	m, err := h.MovieService.SetFavorite(r.Context(), userID, movieID, req.IsFavorite)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, favoriteResponse{ID: m.ID, IsFavorite: m.IsFavorite})
}

// Edit обрабатывает PATCH /api/users/{userId}/movies/{id}.
// Несмотря на PATCH, семантика — полная замена пяти полей.
func (h *MovieHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	var req editMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Edit: invalid request body", "error", err)
		writeError(w, apperr.BadRequest("invalid request body"))
		return
	}

	m, err := h.MovieService.Edit(r.Context(), userID, movieID, service.EditInput{
		Title:    req.Title,
		Year:     req.Year,
		Runtime:  req.Runtime,
		Genre:    req.Genre,
		Director: req.Director,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Delete обрабатывает DELETE /api/users/{userId}/movies/{id}.
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	if err := h.MovieService.Delete(r.Context(), userID, movieID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{ID: movieID, Deleted: true})
}

// movieIDParam достаёт {id} и отклоняет неканонические id (в т.ч.
// оптимистичные temp-id клиента) до обращения к хранилищу.
func movieIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil || len(id) != 36 {
		writeError(w, apperr.BadRequest("id must be a valid UUID"))
		return "", false
	}
	return id, true
}
