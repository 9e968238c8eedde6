package model

import "time"

// User — серверная модель пользователя. Username — единственный
// идентифицирующий признак, создаётся при первом обращении (upsert).
type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Username string `gorm:"not null;uniqueIndex" json:"username"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
