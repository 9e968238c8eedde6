package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"MovieKeeper/internal/model"
)

// MovieRepository — контракт доступа к снапшотам фильмов. Мутирующие
// операции выполняются в одной транзакции: частичная запись (прошедшая
// проверка дубликата при упавшей вставке) никогда не наблюдаема.
type MovieRepository interface {
	// List возвращает снапшоты пользователя с фильтром по избранному и
	// сортировкой. sortKey и order уже провалидированы сервисом.
	List(ctx context.Context, userID string, favorite *bool, sortKey, order string) ([]model.Movie, error)

	// TitleExists сообщает, занято ли название (без учёта регистра)
	// у пользователя.
	TitleExists(ctx context.Context, userID, title string) (bool, error)

	// Create вставляет снапшот после проверки дубликата названия
	// (без учёта регистра). Возвращает ErrDuplicateTitle при коллизии.
	Create(ctx context.Context, m *model.Movie) error

	// Update полностью переписывает пять редактируемых полей (включая
	// null), предварительно проверив существование и дубликат названия
	// среди других записей пользователя.
	Update(ctx context.Context, userID, id string, fields model.Movie) (*model.Movie, error)

	// SetFavorite выставляет флаг избранного; nil value переключает
	// текущее значение. Возвращает обновлённый снапшот.
	SetFavorite(ctx context.Context, userID, id string, value *bool) (*model.Movie, error)

	// Delete удаляет снапшот; ErrNotFound, если строка не была удалена.
	Delete(ctx context.Context, userID, id string) error
}

type movieRepo struct {
	db *gorm.DB
}

// NewMovieRepository создаёт реализацию репозитория для Movie.
func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepo{db: db}
}

func (r *movieRepo) List(ctx context.Context, userID string, favorite *bool, sortKey, order string) ([]model.Movie, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if favorite != nil {
		q = q.Where("is_favorite = ?", *favorite)
	}
	var movies []model.Movie
	if err := q.Order(fmt.Sprintf("%s %s", sortKey, order)).Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *movieRepo) TitleExists(ctx context.Context, userID, title string) (bool, error) {
	return hasDuplicateTitle(r.db.WithContext(ctx), userID, title, "")
}

func (r *movieRepo) Create(ctx context.Context, m *model.Movie) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dup, err := hasDuplicateTitle(tx, m.UserID, m.Title, "")
		if err != nil {
			return err
		}
		if dup {
			return ErrDuplicateTitle
		}
		return tx.Create(m).Error
	})
}

func (r *movieRepo) Update(ctx context.Context, userID, id string, fields model.Movie) (*model.Movie, error) {
	var out model.Movie
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Movie
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		dup, err := hasDuplicateTitle(tx, userID, fields.Title, id)
		if err != nil {
			return err
		}
		if dup {
			return ErrDuplicateTitle
		}

		// Полная замена: все пять полей пишутся всегда, в том числе null.
		updates := map[string]any{
			"title":    fields.Title,
			"year":     fields.Year,
			"runtime":  fields.Runtime,
			"genre":    fields.Genre,
			"director": fields.Director,
		}
		if err := tx.Model(&model.Movie{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates).Error; err != nil {
			return err
		}

		return tx.Where("id = ? AND user_id = ?", id, userID).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *movieRepo) SetFavorite(ctx context.Context, userID, id string, value *bool) (*model.Movie, error) {
	var out model.Movie
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Movie
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		next := !existing.IsFavorite
		if value != nil {
			next = *value
		}
		if err := tx.Model(&model.Movie{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("is_favorite", next).Error; err != nil {
			return err
		}

		return tx.Where("id = ? AND user_id = ?", id, userID).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *movieRepo) Delete(ctx context.Context, userID, id string) error {
	tx := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Movie{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func hasDuplicateTitle(tx *gorm.DB, userID, normalizedTitle, excludeID string) (bool, error) {
	q := tx.Model(&model.Movie{}).
		Where("user_id = ? AND lower(title) = lower(?)", userID, normalizedTitle)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
