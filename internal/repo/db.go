package repo

import (
	"errors"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"MovieKeeper/internal/model"
)

// Ошибки уровня репозитория; сервис переводит их в доменную таксономию.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateTitle = errors.New("duplicate title for user")
)

// InitDB открывает соединение и применяет миграции. DSN с префиксом
// postgres:// подключает Postgres, всё остальное трактуется как путь к
// файлу SQLite (удобно для разработки).
func InitDB(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.User{}, &model.Movie{}); err != nil {
		return nil, err
	}

	// Функциональный индекс уникальности (user_id, lower(title)) не
	// выражается тэгами gorm — создаём напрямую. Синтаксис одинаков
	// для Postgres и SQLite.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_movies_user_title_unique ON movies (user_id, lower(title))`,
	).Error; err != nil {
		return nil, err
	}

	return db, nil
}
