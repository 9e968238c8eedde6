// Package omdb — шлюз к внешнему провайдеру метаданных о фильмах.
// Ответы нормализуются; все сбои транспорта и провайдера приводятся к 502.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"MovieKeeper/internal/apperr"
	"MovieKeeper/internal/title"
)

// SearchItem — нормализованный элемент поисковой выдачи. Не персистится.
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

// Details — best-effort детали фильма. Пустая структура — валидный
// результат для неизвестного id, а не ошибка.
type Details struct {
	Title    string
	Year     string
	Runtime  string
	Genre    string
	Director string
	Poster   string
}

// Client ходит в OMDB API с ограничением исходящего трафика.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.SugaredLogger
}

// NewClient создаёт клиента OMDB. Ключ проверяется в момент вызова,
// а не конструирования: сервер может стартовать и без поиска.
func NewClient(baseURL, apiKey string, logger *zap.SugaredLogger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(5), 5),
		logger:  logger,
	}
}

// сырые DTO провайдера
type omdbSearchItem struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Poster string `json:"Poster"`
}

type omdbSearchResponse struct {
	Search       []omdbSearchItem `json:"Search"`
	TotalResults string           `json:"totalResults"`
	Response     string           `json:"Response"`
	Error        string           `json:"Error"`
}

type omdbDetailResponse struct {
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Runtime  string `json:"Runtime"`
	Genre    string `json:"Genre"`
	Director string `json:"Director"`
	Poster   string `json:"Poster"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// Search запрашивает страницу поисковой выдачи и нормализует названия.
func (c *Client) Search(ctx context.Context, query string, page int) (*SearchResult, error) {
	var raw omdbSearchResponse
	if err := c.fetch(ctx, url.Values{"s": {query}, "page": {strconv.Itoa(page)}}, &raw); err != nil {
		return nil, err
	}
	if raw.Response == "False" {
		// "Movie not found!" для поиска — тоже ошибка провайдера, как в
		// остальных случаях Response=False.
		msg := raw.Error
		if msg == "" {
			msg = "OMDB error"
		}
		return nil, apperr.BadGateway(msg)
	}

	total, _ := strconv.Atoi(raw.TotalResults)
	items := make([]SearchItem, 0, len(raw.Search))
	for _, s := range raw.Search {
		items = append(items, SearchItem{
			OMDBID: s.ImdbID,
			Title:  title.Normalize(s.Title),
			Year:   s.Year,
			Poster: s.Poster,
		})
	}
	return &SearchResult{Items: items, Total: total, Page: page}, nil
}

// Details возвращает детали по внешнему id. Неизвестный id — пустой
// результат без ошибки; сбой транспорта или статуса — BadGateway.
func (c *Client) Details(ctx context.Context, omdbID string) (Details, error) {
	var raw omdbDetailResponse
	if err := c.fetch(ctx, url.Values{"i": {omdbID}}, &raw); err != nil {
		return Details{}, err
	}
	if raw.Response != "True" {
		return Details{}, nil
	}
	return Details{
		Title:    title.Normalize(raw.Title),
		Year:     raw.Year,
		Runtime:  raw.Runtime,
		Genre:    raw.Genre,
		Director: raw.Director,
		Poster:   raw.Poster,
	}, nil
}

func (c *Client) fetch(ctx context.Context, params url.Values, out any) error {
	if c.apiKey == "" {
		return apperr.BadGateway("OMDB API key is not configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return apperr.BadGateway("OMDB request cancelled")
	}

	params.Set("apikey", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build OMDB request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warnw("OMDB request failed", "error", err)
		return apperr.BadGateway("OMDB request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warnw("OMDB returned non-success status", "status", resp.StatusCode)
		return apperr.BadGateway("OMDB request failed")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.BadGateway("OMDB returned malformed response")
	}
	return nil
}
