package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

const defaultCorpusPath = "./corpus/wikidict.db"

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "wikidict: %v\n", err)
}

func newApp(ui UI) *cli.App {
	pool := &Pool{}

	app := &cli.App{
		Name:      "wikidict",
		Usage:     "parse wiki dictionary markup into a queryable corpus",
		Writer:    ui.Out,
		ErrWriter: ui.Err,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "corpus-path",
				Aliases: []string{"c"},
				Usage:   "page repository: a directory of JSON files or a sqlite file",
				Value:   defaultCorpusPath,
				EnvVars: []string{"WIKIDICT_CORPUS_PATH"},
			},
		},
		Commands: []*cli.Command{
			ingestCommand(pool, ui),
			pageCommand(pool, ui),
			sensesCommand(pool, ui),
			translationsCommand(pool, ui),
			queryCommand(pool, ui),
			statCommand(pool, ui),
			importCommand(pool, ui),
			exportCommand(pool, ui),
			bashCommand(ui),
			versionCommand(ui),
		},
		After: func(cCtx *cli.Context) error {
			return pool.Close()
		},
	}

	return app
}
