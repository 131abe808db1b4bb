package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/wikidict/query"
	"github.com/revelaction/wikidict/render"
)

func queryCommand(pool *Pool, ui UI) *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "interactive lookup prompt",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable ANSI colors",
			},
		},
		Action: func(cCtx *cli.Context) error {
			repo, err := newPageRepository(pool, cCtx.String("corpus-path"))
			if err != nil {
				return err
			}

			r := render.NewRenderer(ui.Out)
			r.HasColor = !cCtx.Bool("no-color")

			h := query.NewHandler(repo, r)
			return h.Run()
		},
	}
}
