package commands

import (
	"context"
	"flag"
	"fmt"

	"MovieKeeper/internal/cli/service"
	"MovieKeeper/internal/config"
)

type addCmd struct{}

func init() { RegisterCmd(addCmd{}) }

func (addCmd) Name() string        { return "add" }
func (addCmd) Description() string { return "добавить фильм (вручную или по omdb-id)" }
func (addCmd) Usage() string {
	return "add <title> [--omdb-id id] [--year YYYY] [--runtime r] [--genre g] [--director d] [--poster url]"
}

func (addCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(Out)
	omdbID := fs.String("omdb-id", "", "external movie id for enrichment")
	year := fs.String("year", "", "release year (YYYY)")
	runtime := fs.String("runtime", "", "runtime")
	genre := fs.String("genre", "", "genre")
	director := fs.String("director", "", "director")
	poster := fs.String("poster", "", "poster URL (optimistic display only)")
	if err := fs.Parse(args[1:]); err != nil {
		return ErrUsage
	}

	m, _, err := moviesService(cfg)
	if err != nil {
		return err
	}

	added, err := m.Add(ctx, service.AddRequest{
		OMDBID:   strFlag(*omdbID),
		Title:    args[0],
		Year:     strFlag(*year),
		Runtime:  strFlag(*runtime),
		Genre:    strFlag(*genre),
		Director: strFlag(*director),
		Poster:   strFlag(*poster),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "added %s [%s]\n", added.Title, added.ID)
	return nil
}
