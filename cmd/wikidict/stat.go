package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/wikidict/stat"
)

func statCommand(pool *Pool, ui UI) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "print corpus statistics, or for one headword when given",
		ArgsUsage: "[headword]",
		Action: func(cCtx *cli.Context) error {
			repo, err := newPageRepository(pool, cCtx.String("corpus-path"))
			if err != nil {
				return err
			}

			hdl := stat.NewHandler()

			if headword := cCtx.Args().First(); headword != "" {
				p, err := repo.Read(headword)
				if err != nil {
					return err
				}
				hdl.Aggregate(p)
			} else {
				headwords, err := repo.List("")
				if err != nil {
					return err
				}
				for _, h := range headwords {
					p, err := repo.Read(h)
					if err != nil {
						return err
					}
					hdl.Aggregate(p)
				}
			}

			stats := hdl.Get()
			fmt.Fprintf(ui.Out, "Pages %d, sections %d, blocks %d, senses %d\n",
				stats.NumPages, stats.NumSections, stats.NumBlocks, stats.NumSenses)
			fmt.Fprintf(ui.Out, "Cross references %d, translations %d, senses per page %d\n",
				stats.NumCrossRefs, stats.NumTranslations, stats.SensesPerPageMean)

			for lang, n := range stats.SectionsPerLang {
				fmt.Fprintf(ui.Out, "  %-4s %d sections\n", lang, n)
			}
			return nil
		},
	}
}
