package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"MovieKeeper/internal/apperr"
	"MovieKeeper/internal/model"
	"MovieKeeper/internal/omdb"
	"MovieKeeper/internal/repo"
	"MovieKeeper/internal/title"
)

var yearRe = regexp.MustCompile(`^\d{4}$`)

// Ключи сортировки и направления; всё вне списка заменяется дефолтом.
var sortKeys = map[string]bool{"title": true, "year": true, "created_at": true, "updated_at": true}
var orderKeys = map[string]bool{"asc": true, "desc": true}

// MetadataProvider — граница к внешнему провайдеру метаданных; в тестах
// подменяется моком.
type MetadataProvider interface {
	Details(ctx context.Context, omdbID string) (omdb.Details, error)
}

// MovieService — операции над пользовательскими снапшотами фильмов.
// Вся доменная валидация выполняется до какой-либо мутации состояния.
type MovieService struct {
	movies repo.MovieRepository
	users  repo.UserRepository
	meta   MetadataProvider
	logger *zap.SugaredLogger
}

func NewMovieService(movies repo.MovieRepository, users repo.UserRepository, meta MetadataProvider, logger *zap.SugaredLogger) *MovieService {
	return &MovieService{movies: movies, users: users, meta: meta, logger: logger}
}

// AddInput — входные поля операции добавления. Необязательные поля nil.
type AddInput struct {
	OMDBID   *string
	Title    string
	Year     *string
	Runtime  *string
	Genre    *string
	Director *string
}

// EditInput — пять редактируемых полей. Операция — полная замена:
// каждое поле пишется всегда, в том числе null.
type EditInput struct {
	Title    string
	Year     *string
	Runtime  *string
	Genre    *string
	Director *string
}

// List возвращает снапшоты пользователя с фильтром и сортировкой.
func (s *MovieService) List(ctx context.Context, userID string, favorite *bool, sortKey, order string) ([]model.Movie, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if !sortKeys[sortKey] {
		sortKey = "created_at"
	}
	if !orderKeys[order] {
		order = "asc"
	}
	return s.movies.List(ctx, userID, favorite, sortKey, order)
}

// Add валидирует и нормализует вход, при наличии OMDBID дозаполняет
// недостающие поля из шлюза метаданных (значения вызывающего в
// приоритете) и сохраняет новый снапшот.
func (s *MovieService) Add(ctx context.Context, userID string, in AddInput) (*model.Movie, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	normalized := title.Normalize(strings.TrimSpace(in.Title))
	if utf8.RuneCountInString(normalized) < 3 {
		return nil, apperr.BadRequest("title must be at least 3 characters")
	}
	if in.Year != nil && !yearRe.MatchString(*in.Year) {
		return nil, apperr.BadRequestValue("year must be YYYY if provided", *in.Year)
	}

	// Дубликат отсекается до похода во внешний шлюз: повторное название
	// не должно ни тратить внешний вызов, ни маскироваться его сбоем.
	// Повторная проверка внутри Create закрывает гонку.
	dup, err := s.movies.TitleExists(ctx, userID, normalized)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, apperr.Conflict("A movie with the same name already exists.")
	}

	m := &model.Movie{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    normalized,
		Year:     in.Year,
		Runtime:  in.Runtime,
		Genre:    in.Genre,
		Director: in.Director,
		Source:   model.SourceCustom,
	}

	if in.OMDBID != nil && strings.TrimSpace(*in.OMDBID) != "" {
		omdbID := strings.TrimSpace(*in.OMDBID)
		details, err := s.meta.Details(ctx, omdbID)
		if err != nil {
			return nil, err
		}
		m.Runtime = fallback(m.Runtime, details.Runtime)
		m.Genre = fallback(m.Genre, details.Genre)
		m.Director = fallback(m.Director, details.Director)
		m.Poster = fallback(nil, details.Poster)
		m.OMDBID = &omdbID
		m.Source = model.SourceOMDB
	}

	if err := s.movies.Create(ctx, m); err != nil {
		if errors.Is(err, repo.ErrDuplicateTitle) {
			return nil, apperr.Conflict("A movie with the same name already exists.")
		}
		s.logger.Errorw("create movie failed", "user_id", userID, "error", err)
		return nil, err
	}
	return m, nil
}

// Edit полностью заменяет пять редактируемых полей снапшота.
func (s *MovieService) Edit(ctx context.Context, userID, movieID string, in EditInput) (*model.Movie, error) {
	normalized := title.Normalize(strings.TrimSpace(in.Title))
	if utf8.RuneCountInString(normalized) < 3 {
		return nil, apperr.BadRequest("title must be at least 3 characters")
	}
	if in.Year != nil && !yearRe.MatchString(*in.Year) {
		return nil, apperr.BadRequestValue("year must be YYYY if provided", *in.Year)
	}

	updated, err := s.movies.Update(ctx, userID, movieID, model.Movie{
		Title:    normalized,
		Year:     in.Year,
		Runtime:  in.Runtime,
		Genre:    in.Genre,
		Director: in.Director,
	})
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, apperr.NotFound("User movie not found")
		case errors.Is(err, repo.ErrDuplicateTitle):
			return nil, apperr.Conflict("A movie with the same name already exists.")
		}
		s.logger.Errorw("edit movie failed", "user_id", userID, "movie_id", movieID, "error", err)
		return nil, err
	}
	return updated, nil
}

// SetFavorite выставляет флаг избранного; nil value переключает текущий.
func (s *MovieService) SetFavorite(ctx context.Context, userID, movieID string, value *bool) (*model.Movie, error) {
	m, err := s.movies.SetFavorite(ctx, userID, movieID, value)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("User movie not found")
		}
		s.logger.Errorw("set favorite failed", "user_id", userID, "movie_id", movieID, "error", err)
		return nil, err
	}
	return m, nil
}

// Delete удаляет снапшот. movieID обязан быть каноническим UUID:
// оптимистичные temp-id клиента не должны доходить до хранилища.
func (s *MovieService) Delete(ctx context.Context, userID, movieID string) error {
	if _, err := uuid.Parse(movieID); err != nil {
		return apperr.BadRequest("id must be a valid UUID")
	}
	if err := s.movies.Delete(ctx, userID, movieID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.NotFound("User movie not found")
		}
		s.logger.Errorw("delete movie failed", "user_id", userID, "movie_id", movieID, "error", err)
		return err
	}
	return nil
}

func (s *MovieService) requireUser(ctx context.Context, userID string) error {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("User not found")
	}
	return nil
}

// fallback отдаёт значение вызывающего, если оно задано, иначе значение
// провайдера (пустая строка трактуется как отсутствие).
func fallback(caller *string, provider string) *string {
	if caller != nil {
		return caller
	}
	if provider == "" {
		return nil
	}
	return &provider
}
