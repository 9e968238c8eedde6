package service

import (
	"context"
	"fmt"
	"net/url"

	"MovieKeeper/internal/cli/api"
)

// SearchItem — элемент поисковой выдачи (транзиентный, не кэшируется).
type SearchItem struct {
	OMDBID string `json:"omdbId"`
	Title  string `json:"title"`
	Year   string `json:"year"`
	Poster string `json:"poster"`
}

// SearchResult — страница поисковой выдачи.
type SearchResult struct {
	Items []SearchItem `json:"items"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
}

// Search запрашивает страницу поиска у сервера. Слияние страниц
// ("load more") — забота представления.
func Search(ctx context.Context, apiClient *api.Client, query string, page int) (*SearchResult, error) {
	q := url.Values{"query": {query}}
	if page > 1 {
		q.Set("page", fmt.Sprintf("%d", page))
	}

	var resp SearchResult
	if err := apiClient.GetJSON(ctx, "/api/search?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
