package commands

import (
	"context"
	"flag"
	"fmt"

	"MovieKeeper/internal/config"
)

type favoriteCmd struct{}

func init() { RegisterCmd(favoriteCmd{}) }

func (favoriteCmd) Name() string        { return "favorite" }
func (favoriteCmd) Description() string { return "переключить или выставить флаг избранного" }
func (favoriteCmd) Usage() string       { return "favorite <id> [--set true|false]" }

func (favoriteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	fs := flag.NewFlagSet("favorite", flag.ContinueOnError)
	fs.SetOutput(Out)
	set := fs.String("set", "", "explicit value instead of toggling")
	if err := fs.Parse(args[1:]); err != nil {
		return ErrUsage
	}

	var value *bool
	switch *set {
	case "":
	case "true":
		v := true
		value = &v
	case "false":
		v := false
		value = &v
	default:
		return ErrUsage
	}

	m, _, err := moviesService(cfg)
	if err != nil {
		return err
	}
	if err := m.Refresh(ctx, nil, "", ""); err != nil {
		return err
	}

	if err := m.Favorite(ctx, args[0], value); err != nil {
		return err
	}

	if got, ok := m.Collection().Get(args[0]); ok {
		fmt.Fprintf(Out, "%s favorite=%t\n", got.Title, got.IsFavorite)
	}
	return nil
}
