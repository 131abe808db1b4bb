package main

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/wikidict/storage"
	"github.com/revelaction/wikidict/storage/filesystem"
	"github.com/revelaction/wikidict/storage/sqlite/zombiezen"
)

func importCommand(pool *Pool, ui UI) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "copy pages from a JSON directory into a sqlite file",
		ArgsUsage: "<from-dir> <to-file>",
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 2 {
				return fmt.Errorf("usage: import <from-dir> <to-file>")
			}

			src, err := filesystem.NewPageStore(cCtx.Args().Get(0))
			if err != nil {
				return err
			}

			p, err := pool.Open(cCtx.Args().Get(1))
			if err != nil {
				return err
			}
			if err := zombiezen.CreateSchemas(p, "pages.sql"); err != nil {
				return fmt.Errorf("failed to create page tables: %w", err)
			}
			dst := zombiezen.NewPageStore(p)

			return copyPages(src, dst, cCtx.Args().Get(0), cCtx.Args().Get(1), ui)
		},
	}
}

func exportCommand(pool *Pool, ui UI) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "copy pages from a sqlite file into a JSON directory",
		ArgsUsage: "<from-file> <to-dir>",
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 2 {
				return fmt.Errorf("usage: export <from-file> <to-dir>")
			}

			p, err := pool.Open(cCtx.Args().Get(0))
			if err != nil {
				return err
			}
			src := zombiezen.NewPageStore(p)

			dst, err := filesystem.NewPageStore(cCtx.Args().Get(1))
			if err != nil {
				return err
			}

			return copyPages(src, dst, cCtx.Args().Get(0), cCtx.Args().Get(1), ui)
		},
	}
}

func copyPages(src storage.PageReader, dst storage.PageWriter, from, to string, ui UI) error {
	fmt.Fprintf(ui.Out, "Reading pages from %s...\n", from)
	headwords, err := src.List("")
	if err != nil {
		return err
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(len(headwords))
	bar.AppendCompleted()
	bar.PrependElapsed()

	count := 0
	for _, headword := range headwords {
		p, err := src.Read(headword)
		if err != nil {
			uiprogress.Stop()
			return fmt.Errorf("failed to read page %s: %w", headword, err)
		}

		if err := dst.Write(p); err != nil {
			uiprogress.Stop()
			return fmt.Errorf("failed to write page %s: %w", headword, err)
		}
		count++
		bar.Incr()
	}
	uiprogress.Stop()

	fmt.Fprintf(ui.Out, "Successfully copied %d pages from %s to %s\n", count, from, to)
	return nil
}
