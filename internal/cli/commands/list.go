package commands

import (
	"context"
	"flag"
	"fmt"

	"MovieKeeper/internal/config"
)

type listCmd struct{}

func init() { RegisterCmd(listCmd{}) }

func (listCmd) Name() string        { return "list" }
func (listCmd) Description() string { return "показать фильмы пользователя" }
func (listCmd) Usage() string {
	return "list [--favorite] [--sort title|year|created_at|updated_at] [--order asc|desc]"
}

func (listCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(Out)
	favOnly := fs.Bool("favorite", false, "only favorites")
	sortKey := fs.String("sort", "", "sort key")
	order := fs.String("order", "", "sort order")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	m, _, err := moviesService(cfg)
	if err != nil {
		return err
	}

	var favorite *bool
	if *favOnly {
		v := true
		favorite = &v
	}
	if err := m.Refresh(ctx, favorite, *sortKey, *order); err != nil {
		return err
	}

	items := m.Collection().Items()
	if len(items) == 0 {
		fmt.Fprintln(Out, "no movies yet")
		return nil
	}
	for _, it := range items {
		printMovie(it, m.Collection().IsDeleting(it.ID))
	}
	return nil
}
