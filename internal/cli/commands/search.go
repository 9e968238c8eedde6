package commands

import (
	"context"
	"fmt"
	"strconv"

	"MovieKeeper/internal/cli/api"
	"MovieKeeper/internal/cli/service"
	"MovieKeeper/internal/config"
)

type searchCmd struct{}

func init() { RegisterCmd(searchCmd{}) }

func (searchCmd) Name() string        { return "search" }
func (searchCmd) Description() string { return "поиск фильмов во внешней базе" }
func (searchCmd) Usage() string       { return "search <query> [page]" }

func (searchCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	page := 1
	if len(args) == 2 {
		p, err := strconv.Atoi(args[1])
		if err != nil || p < 1 {
			return ErrUsage
		}
		page = p
	}

	res, err := service.Search(ctx, api.NewClient(cfg.ServerURL), args[0], page)
	if err != nil {
		return err
	}

	for _, it := range res.Items {
		fmt.Fprintf(Out, "[%s] %s (%s)\n", it.OMDBID, it.Title, it.Year)
	}
	fmt.Fprintf(Out, "page %d, %d total\n", res.Page, res.Total)
	return nil
}
