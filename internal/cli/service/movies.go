// Package service — юзкейс-уровень CLI: каждый мутирующий интент
// оптимистично применяется к локальной коллекции, уходит на сервер и
// по завершению сверяется либо откатывается. Автоповторов нет.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"MovieKeeper/internal/cli/api"
	"MovieKeeper/internal/cli/state"
)

// ErrTempID возвращается при попытке серверной операции над ещё не
// подтверждённой записью; отклоняется локально, без сетевого вызова.
var ErrTempID = errors.New("movie is not synced yet")

// Movies связывает API-клиент и оптимистичную коллекцию одного пользователя.
type Movies struct {
	api    *api.Client
	col    *state.Collection
	userID string
}

func NewMovies(apiClient *api.Client, col *state.Collection, userID string) *Movies {
	return &Movies{api: apiClient, col: col, userID: userID}
}

// Collection отдаёт коллекцию для чтения состояния (снимки, флаги).
func (m *Movies) Collection() *state.Collection { return m.col }

// AddRequest — входные поля интента добавления. Poster используется
// только для оптимистичного отображения и на сервер не отправляется.
type AddRequest struct {
	OMDBID   *string
	Title    string
	Year     *string
	Runtime  *string
	Genre    *string
	Director *string
	Poster   *string
}

// Тела запросов и ответов ниже зеркалят серверные DTO из
// internal/handlers: менять только парой.
type addMovieBody struct {
	OMDBID   *string `json:"omdbId,omitempty"`
	Title    string  `json:"title"`
	Year     *string `json:"year,omitempty"`
	Runtime  *string `json:"runtime,omitempty"`
	Genre    *string `json:"genre,omitempty"`
	Director *string `json:"director,omitempty"`
}

type editMovieBody struct {
	Title    string  `json:"title"`
	Year     *string `json:"year"`
	Runtime  *string `json:"runtime"`
	Genre    *string `json:"genre"`
	Director *string `json:"director"`
}

type favoriteBody struct {
	IsFavorite *bool `json:"isFavorite,omitempty"`
}

type favoriteResponse struct {
	ID         string `json:"id"`
	IsFavorite bool   `json:"isFavorite"`
}

type listResponse struct {
	Items []state.Snapshot `json:"items"`
}

// Refresh перечитывает список с сервера и замещает кэш целиком.
func (m *Movies) Refresh(ctx context.Context, favorite *bool, sort, order string) error {
	q := url.Values{}
	if favorite != nil {
		q.Set("favorite", fmt.Sprintf("%t", *favorite))
	}
	if sort != "" {
		q.Set("sort", sort)
	}
	if order != "" {
		q.Set("order", order)
	}
	path := fmt.Sprintf("/api/users/%s/movies", m.userID)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp listResponse
	if err := m.api.GetJSON(ctx, path, &resp); err != nil {
		return err
	}
	m.col.ReplaceAll(resp.Items)
	return nil
}

// Add оптимистично вставляет провизорную запись и отправляет запрос.
// При успехе запись сверяется с ответом сервера, при ошибке — убирается.
func (m *Movies) Add(ctx context.Context, req AddRequest) (state.Snapshot, error) {
	requestID := uuid.NewString()
	m.col.BeginAdd(requestID, state.Snapshot{
		Title:    req.Title,
		Year:     req.Year,
		Runtime:  req.Runtime,
		Genre:    req.Genre,
		Director: req.Director,
		Poster:   req.Poster,
	})

	var server state.Snapshot
	err := m.api.PostJSON(ctx, fmt.Sprintf("/api/users/%s/movies", m.userID), addMovieBody{
		OMDBID:   req.OMDBID,
		Title:    req.Title,
		Year:     req.Year,
		Runtime:  req.Runtime,
		Genre:    req.Genre,
		Director: req.Director,
	}, &server)
	if err != nil {
		m.col.FailAdd(requestID)
		return state.Snapshot{}, err
	}
	m.col.ResolveAdd(requestID, server)
	return server, nil
}

// Favorite переключает (или явно выставляет) флаг избранного.
func (m *Movies) Favorite(ctx context.Context, id string, value *bool) error {
	if state.IsTempID(id) {
		return ErrTempID
	}
	requestID := uuid.NewString()
	m.col.BeginFavorite(requestID, id, value)

	var resp favoriteResponse
	err := m.api.PostJSON(ctx,
		fmt.Sprintf("/api/users/%s/movies/%s/favorite", m.userID, id),
		favoriteBody{IsFavorite: value}, &resp)
	if err != nil {
		m.col.FailFavorite(requestID)
		return err
	}
	m.col.ResolveFavorite(requestID, resp.ID, resp.IsFavorite)
	return nil
}

// Edit полностью заменяет пять редактируемых полей.
func (m *Movies) Edit(ctx context.Context, id string, fields state.EditFields) error {
	if state.IsTempID(id) {
		return ErrTempID
	}
	requestID := uuid.NewString()
	m.col.BeginEdit(requestID, id, fields)

	var server state.Snapshot
	err := m.api.PatchJSON(ctx,
		fmt.Sprintf("/api/users/%s/movies/%s", m.userID, id),
		editMovieBody{
			Title:    fields.Title,
			Year:     fields.Year,
			Runtime:  fields.Runtime,
			Genre:    fields.Genre,
			Director: fields.Director,
		}, &server)
	if err != nil {
		m.col.FailEdit(requestID)
		return err
	}
	m.col.ResolveEdit(requestID, server)
	return nil
}

// Delete помечает запись удаляемой и убирает её из кэша только после
// подтверждения сервера. Temp-id отклоняется до сетевого вызова.
func (m *Movies) Delete(ctx context.Context, id string) error {
	if state.IsTempID(id) {
		return ErrTempID
	}
	m.col.BeginDelete(id)

	err := m.api.DeleteJSON(ctx,
		fmt.Sprintf("/api/users/%s/movies/%s", m.userID, id), nil)
	if err != nil {
		m.col.FailDelete(id)
		return err
	}
	m.col.ResolveDelete(id)
	return nil
}
