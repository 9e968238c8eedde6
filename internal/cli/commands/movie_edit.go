package commands

import (
	"context"
	"flag"
	"fmt"

	"MovieKeeper/internal/cli/state"
	"MovieKeeper/internal/config"
)

type editCmd struct{}

func init() { RegisterCmd(editCmd{}) }

func (editCmd) Name() string        { return "edit" }
func (editCmd) Description() string { return "переписать поля фильма (полная замена)" }
func (editCmd) Usage() string {
	return "edit <id> --title t [--year YYYY] [--runtime r] [--genre g] [--director d]"
}

func (editCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(Out)
	titleFlag := fs.String("title", "", "new title (required)")
	year := fs.String("year", "", "release year (YYYY)")
	runtime := fs.String("runtime", "", "runtime")
	genre := fs.String("genre", "", "genre")
	director := fs.String("director", "", "director")
	if err := fs.Parse(args[1:]); err != nil {
		return ErrUsage
	}
	if *titleFlag == "" {
		return ErrUsage
	}

	m, _, err := moviesService(cfg)
	if err != nil {
		return err
	}
	// кэш нужен до мутации: rollback-запись снимается с текущего состояния
	if err := m.Refresh(ctx, nil, "", ""); err != nil {
		return err
	}

	if err := m.Edit(ctx, args[0], state.EditFields{
		Title:    *titleFlag,
		Year:     strFlag(*year),
		Runtime:  strFlag(*runtime),
		Genre:    strFlag(*genre),
		Director: strFlag(*director),
	}); err != nil {
		return err
	}

	if got, ok := m.Collection().Get(args[0]); ok {
		fmt.Fprintf(Out, "updated %s [%s]\n", got.Title, got.ID)
	}
	return nil
}
