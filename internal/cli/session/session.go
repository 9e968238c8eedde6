// Package session — файловое хранилище выбранного пользователя для CLI.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Session — сохранённая пара userId/username.
type Session struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// Store хранит сессию в каталоге конфигурации пользователя.
type Store struct{}

func sessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "MovieKeeper")
	if err := os.MkdirAll(p, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(p, "session.json"), nil
}

// Save сохраняет сессию в файл.
func (Store) Save(s Session) error {
	if s.UserID == "" || s.Username == "" {
		return errors.New("empty session")
	}
	p, err := sessionPath()
	if err != nil {
		return err
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// Load читает сессию из файла.
func (Store) Load() (Session, error) {
	p, err := sessionPath()
	if err != nil {
		return Session{}, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return Session{}, err
	}
	if s.UserID == "" {
		return Session{}, errors.New("no stored session")
	}
	return s, nil
}

// Clear удаляет сохранённую сессию.
func (Store) Clear() error {
	p, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
