package commands

import (
	"context"
	"fmt"

	"MovieKeeper/internal/cli/api"
	"MovieKeeper/internal/cli/service"
	"MovieKeeper/internal/cli/session"
	"MovieKeeper/internal/config"
)

type loginCmd struct{}

func init() { RegisterCmd(loginCmd{}) }

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "выбрать пользователя (создаётся при первом входе)" }
func (loginCmd) Usage() string       { return "login <username>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	s, err := service.EnsureUser(ctx, api.NewClient(cfg.ServerURL), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "logged in as %s (id %s)\n", s.Username, s.UserID)
	return nil
}

type logoutCmd struct{}

func init() { RegisterCmd(logoutCmd{}) }

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "забыть сохранённую сессию" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if err := (session.Store{}).Clear(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "logged out")
	return nil
}
