package corpus

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/revelaction/wikidict/assemble"
	"github.com/revelaction/wikidict/entry"
	"github.com/revelaction/wikidict/markup"
	"github.com/revelaction/wikidict/resolve"
)

// RawPage is one unit of input: a headword and its raw wiki text. The
// pipeline is agnostic to where the text came from.
type RawPage struct {
	Headword string
	Text     string
}

// Failure is one page that could not be assembled. It never aborts the
// rest of a batch.
type Failure struct {
	Headword string
	Err      error
}

// Report collects the per-page findings of a corpus build: recoverable
// diagnostics keyed by headword, plus the pages that failed entirely.
type Report struct {
	Diags    map[string][]entry.Diag
	Failures []Failure
}

// Parse runs the tokenize -> resolve -> assemble pipeline for a single
// page. The returned diagnostics hold all recoverable findings; the
// error is non-nil when the page fails validation or the context is
// canceled. A canceled parse leaves no side effects beyond the
// discarded partial tree.
func Parse(ctx context.Context, raw RawPage) (*entry.Page, []entry.Diag, error) {
	tk := markup.New(raw.Text)

	var tokens []markup.Token
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		tok, ok := tk.Next()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}

	diags := tk.Diags()

	page, adiags, err := assemble.Page(raw.Headword, resolve.Resolve(tokens))
	diags = append(diags, adiags...)
	if err != nil {
		return nil, diags, err
	}

	return page, diags, nil
}

// Build parses a batch of raw pages in parallel and freezes the result
// into a corpus. Each page's pipeline runs independently with no
// shared state; results are merged only after every worker is done.
// Per-page failures land in the report, never in the returned error,
// which is non-nil only on cancellation.
func Build(ctx context.Context, raws []RawPage, workers int) (*Corpus, *Report, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pages := make([]*entry.Page, len(raws))
	report := &Report{Diags: map[string][]entry.Diag{}}

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, raw := range raws {
		i, raw := i, raw
		g.Go(func() error {
			page, diags, err := Parse(gctx, raw)

			mu.Lock()
			defer mu.Unlock()

			if len(diags) > 0 {
				report.Diags[raw.Headword] = diags
			}

			if err != nil {
				if gctx.Err() != nil {
					return err
				}
				report.Failures = append(report.Failures, Failure{Headword: raw.Headword, Err: err})
				return nil
			}

			pages[i] = page
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return New(pages), report, nil
}
