package commands

import (
	"context"
	"fmt"

	"MovieKeeper/internal/config"
)

type deleteCmd struct{}

func init() { RegisterCmd(deleteCmd{}) }

func (deleteCmd) Name() string        { return "delete" }
func (deleteCmd) Description() string { return "удалить фильм из списка" }
func (deleteCmd) Usage() string       { return "delete <id>" }

func (deleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}

	m, _, err := moviesService(cfg)
	if err != nil {
		return err
	}
	if err := m.Refresh(ctx, nil, "", ""); err != nil {
		return err
	}

	if err := m.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(Out, "deleted %s\n", args[0])
	return nil
}
