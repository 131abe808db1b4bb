package main

import (
	"fmt"
	"os"

	"github.com/revelaction/wikidict/storage"
	"github.com/revelaction/wikidict/storage/filesystem"
	"github.com/revelaction/wikidict/storage/sqlite/zombiezen"
)

// newPageRepository picks a backend by the shape of path: a directory
// means one JSON file per headword, anything else a sqlite file.
func newPageRepository(p *Pool, path string) (storage.PageRepository, error) {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return filesystem.NewPageStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}

	if err := zombiezen.CreateSchemas(pool, "pages.sql"); err != nil {
		return nil, fmt.Errorf("failed to create page tables: %w", err)
	}

	return zombiezen.NewPageStore(pool), nil
}
