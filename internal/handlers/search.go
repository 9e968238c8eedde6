package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"MovieKeeper/internal/apperr"
	"MovieKeeper/internal/omdb"
)

// SearchProvider — граница к шлюзу метаданных на стороне HTTP-слоя.
type SearchProvider interface {
	Search(ctx context.Context, query string, page int) (*omdb.SearchResult, error)
}

// SearchHandler проксирует поиск во внешний провайдер метаданных.
type SearchHandler struct {
	Provider SearchProvider
	Logger   *zap.SugaredLogger
}

func NewSearchHandler(provider SearchProvider, logger *zap.SugaredLogger) *SearchHandler {
	return &SearchHandler{Provider: provider, Logger: logger}
}

// Search обрабатывает GET /api/search?query&page.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if utf8.RuneCountInString(query) < 2 {
		writeError(w, apperr.BadRequest("query must be at least 2 characters"))
		return
	}

	// нераспознанная страница откатывается к 1, а не к ошибке
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil && p >= 1 {
			page = p
		}
	}

	res, err := h.Provider.Search(r.Context(), query, page)
	if err != nil {
		h.Logger.Warnw("Search: provider error", "query", query, "page", page, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
