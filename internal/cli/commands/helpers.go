package commands

import (
	"fmt"

	"MovieKeeper/internal/cli/api"
	"MovieKeeper/internal/cli/service"
	"MovieKeeper/internal/cli/session"
	"MovieKeeper/internal/cli/state"
	"MovieKeeper/internal/config"
)

// moviesService собирает интент-слой для текущей сессии.
func moviesService(cfg *config.Config) (*service.Movies, session.Session, error) {
	sess, err := (session.Store{}).Load()
	if err != nil {
		return nil, session.Session{}, fmt.Errorf("нет активного пользователя: выполните login: %w", err)
	}
	apiClient := api.NewClient(cfg.ServerURL)
	col := state.NewCollection()
	return service.NewMovies(apiClient, col, sess.UserID), sess, nil
}

func strFlag(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

// printMovie выводит одну строку списка.
func printMovie(s state.Snapshot, deleting bool) {
	fav := " "
	if s.IsFavorite {
		fav = "*"
	}
	suffix := ""
	if deleting {
		suffix = " (deleting...)"
	}
	if state.IsTempID(s.ID) {
		suffix = " (pending)"
	}
	fmt.Fprintf(Out, "%s [%s] %s (%s)%s\n", fav, s.ID, s.Title, deref(s.Year), suffix)
}
