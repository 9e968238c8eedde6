package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"MovieKeeper/internal/model"
)

// UserRepository определяет минимальный контракт доступа к User для слоя сервиса.
type UserRepository interface {
	// Upsert создаёт пользователя по username, если его ещё нет, и
	// возвращает актуальную запись. Идемпотентен.
	Upsert(ctx context.Context, username string) (*model.User, error)

	// Exists проверяет наличие пользователя по id.
	Exists(ctx context.Context, id string) (bool, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт реализацию репозитория для User.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Upsert(ctx context.Context, username string) (*model.User, error) {
	u := &model.User{ID: uuid.NewString(), Username: username}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoNothing: true,
	}).Create(u)
	if tx.Error != nil {
		return nil, tx.Error
	}

	// При конфликте insert ничего не вернул — читаем существующую запись,
	// чтобы повторный вызов отдавал тот же id.
	var out model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *userRepo) Exists(ctx context.Context, id string) (bool, error) {
	var u model.User
	err := r.db.WithContext(ctx).Select("id").Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
