package model

import "time"

// Источники снапшота фильма.
const (
	SourceOMDB   = "omdb"
	SourceCustom = "custom"
)

// Movie — пользовательский снапшот фильма (не общая каталожная запись).
// Ровно один снапшот на пару (user_id, lower(title)).
type Movie struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"not null;index;type:uuid" json:"-"`

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Title    string  `gorm:"not null" json:"title"`
	Year     *string `json:"year"`
	Runtime  *string `json:"runtime"`
	Genre    *string `json:"genre"`
	Director *string `json:"director"`
	Poster   *string `json:"poster"`

	IsFavorite bool    `gorm:"not null;default:false" json:"isFavorite"`
	OMDBID     *string `gorm:"column:omdb_id" json:"omdbId,omitempty"`
	Source     string  `gorm:"not null;default:custom" json:"source"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
