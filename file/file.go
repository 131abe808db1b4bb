// Package file loads raw wiki pages from a directory of .wiki files,
// one file per headword.
package file

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/revelaction/wikidict/corpus"
)

const (
	PageDir = "./corpus/pages/"

	pageExt = ".wiki"
)

// ReadPage reads one raw page. The headword is the file name without
// the extension.
func ReadPage(path string) (corpus.RawPage, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return corpus.RawPage{}, err
	}

	headword := strings.TrimSuffix(filepath.Base(path), pageExt)

	return corpus.RawPage{Headword: headword, Text: string(text)}, nil
}

// ReadPages reads every .wiki file of a directory. Other files are
// ignored.
func ReadPages(dir string) ([]corpus.RawPage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var raws []corpus.RawPage
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), pageExt) {
			continue
		}

		raw, err := ReadPage(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}

		raws = append(raws, raw)
	}

	return raws, nil
}
