package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/wikidict/corpus"
	"github.com/revelaction/wikidict/dump"
	"github.com/revelaction/wikidict/file"
)

func ingestCommand(pool *Pool, ui UI) *cli.Command {
	return &cli.Command{
		Name:      "ingest",
		Usage:     "parse raw wiki pages and store the result",
		ArgsUsage: "[page-dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dump",
				Usage:   "read pages from a MediaWiki XML export instead of a directory",
				EnvVars: []string{"WIKIDICT_DUMP"},
			},
			&cli.StringFlag{
				Name:    "page-dir",
				Usage:   "directory of .wiki page files",
				Value:   file.PageDir,
				EnvVars: []string{"WIKIDICT_PAGE_DIR"},
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "parallel parse workers, 0 means one per CPU",
			},
		},
		Action: func(cCtx *cli.Context) error {
			raws, err := loadRaw(cCtx)
			if err != nil {
				return err
			}

			repo, err := newPageRepository(pool, cCtx.String("corpus-path"))
			if err != nil {
				return err
			}

			fmt.Fprintf(ui.Out, "Parsing %d pages...\n", len(raws))

			crp, report, err := corpus.Build(context.Background(), raws, cCtx.Int("workers"))
			if err != nil {
				return err
			}

			headwords := crp.Headwords()

			uiprogress.Start()
			bar := uiprogress.AddBar(len(headwords))
			bar.AppendCompleted()
			bar.PrependElapsed()

			for _, headword := range headwords {
				p, _ := crp.Page(headword)
				if err := repo.Write(p); err != nil {
					uiprogress.Stop()
					return fmt.Errorf("failed to write page %s: %w", headword, err)
				}
				bar.Incr()
			}
			uiprogress.Stop()

			reportSummary(report, ui)
			fmt.Fprintf(ui.Out, "Successfully stored %d pages in %s\n", crp.Len(), cCtx.String("corpus-path"))
			return nil
		},
	}
}

// loadRaw reads raw pages from the dump flag or the page directory
// argument, in that order.
func loadRaw(cCtx *cli.Context) ([]corpus.RawPage, error) {
	if path := cCtx.String("dump"); path != "" {
		return dump.Load(path)
	}

	dir := cCtx.Args().First()
	if dir == "" {
		dir = cCtx.String("page-dir")
	}

	raws, err := file.ReadPages(dir)
	if err != nil {
		return nil, err
	}
	if len(raws) == 0 {
		return nil, errors.New("no pages found, give a page directory or --dump")
	}

	return raws, nil
}

func reportSummary(report *corpus.Report, ui UI) {
	for _, failure := range report.Failures {
		fmt.Fprintf(ui.Err, "✍  %s: %v\n", failure.Headword, failure.Err)
	}

	numDiags := 0
	for _, diags := range report.Diags {
		numDiags += len(diags)
	}

	if numDiags > 0 || len(report.Failures) > 0 {
		fmt.Fprintf(ui.Err, "%d recoverable diagnostics, %d failed pages\n", numDiags, len(report.Failures))
	}
}
