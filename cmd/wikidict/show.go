package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/wikidict/corpus"
	"github.com/revelaction/wikidict/entry"
	"github.com/revelaction/wikidict/render"
)

func pageCommand(pool *Pool, ui UI) *cli.Command {
	return &cli.Command{
		Name:      "page",
		Usage:     "print a stored page, or list headwords when none is given",
		ArgsUsage: "[headword]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the page as JSON",
			},
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

			headword := cCtx.Args().First()
			if headword == "" {
				headwords, err := repo.List("")
				if err != nil {
					return err
				}
				for _, h := range headwords {
					fmt.Fprintf(ui.Out, "📖 %s\n", h)
				}
				return nil
			}

			p, err := repo.Read(headword)
			if err != nil {
				return err
			}

			if cCtx.Bool("json") {
				return render.NewJSONRenderer(ui.Out).Render(p)
			}

			r := render.NewRenderer(ui.Out)
			r.HasColor = !cCtx.Bool("no-color")
			r.Page(p)
			return nil
		},
	}
}

func sensesCommand(pool *Pool, ui UI) *cli.Command {
	return &cli.Command{
		Name:      "senses",
		Usage:     "print the senses of a headword for one language and part of speech",
		ArgsUsage: "<headword> <lang> <pos>",
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 3 {
				return errors.New("usage: senses <headword> <lang> <pos>")
			}

			p, err := readOne(pool, cCtx)
			if err != nil {
				return err
			}

			crp := corpus.New([]*entry.Page{p})
			senses := crp.SensesOf(cCtx.Args().Get(0), cCtx.Args().Get(1), cCtx.Args().Get(2))
			if len(senses) == 0 {
				return fmt.Errorf("no %s senses for %s (%s)", cCtx.Args().Get(2), cCtx.Args().Get(0), cCtx.Args().Get(1))
			}

			for i, s := range senses {
				gloss := s.Gloss
				if s.Tag != "" {
					gloss = fmt.Sprintf("(%s) %s", s.Tag, gloss)
				}
				fmt.Fprintf(ui.Out, "%2d. %s\n", i+1, gloss)
			}
			return nil
		},
	}
}

func translationsCommand(pool *Pool, ui UI) *cli.Command {
	return &cli.Command{
		Name:      "translations",
		Usage:     "print the translations of one sense",
		ArgsUsage: "<headword> <lang> <sense-number>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Usage:   "narrow to one target language",
			},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 3 {
				return errors.New("usage: translations <headword> <lang> <sense-number>")
			}

			n, err := strconv.Atoi(cCtx.Args().Get(2))
			if err != nil || n < 1 {
				return fmt.Errorf("sense number must be a positive integer: %s", cCtx.Args().Get(2))
			}

			p, err := readOne(pool, cCtx)
			if err != nil {
				return err
			}

			crp := corpus.New([]*entry.Page{p})
			translations := crp.TranslationsOf(cCtx.Args().Get(0), cCtx.Args().Get(1), n, cCtx.String("target"))
			if len(translations) == 0 {
				return fmt.Errorf("no translations for sense %d of %s (%s)", n, cCtx.Args().Get(0), cCtx.Args().Get(1))
			}

			for _, tr := range translations {
				fmt.Fprintf(ui.Out, "%-4s %s\n", tr.Lang, tr.Term)
			}
			return nil
		},
	}
}

func readOne(pool *Pool, cCtx *cli.Context) (*entry.Page, error) {
	repo, err := newPageRepository(pool, cCtx.String("corpus-path"))
	if err != nil {
		return nil, err
	}

	return repo.Read(cCtx.Args().First())
}
