// Package dump reads MediaWiki XML exports (pages-meta-current) and
// yields raw page text, one unit per headword. Redirects, namespaced
// titles and short or numeric headwords are skipped.
package dump

import (
	"compress/bzip2"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/revelaction/wikidict/corpus"
)

// Page is one <page> element of the export.
type Page struct {
	Title    string
	Text     string
	Redirect bool
	Ns       int
}

type xmlPage struct {
	Title    string    `xml:"title"`
	Ns       int       `xml:"ns"`
	Redirect *struct{} `xml:"redirect"`
	Revision struct {
		Text string `xml:"text"`
	} `xml:"revision"`
}

// Reader streams pages out of an export without loading the whole
// document. Elements are decoded one <page> at a time.
type Reader struct {
	dec *xml.Decoder
}

// NewReader creates a Reader over decompressed XML.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: xml.NewDecoder(r)}
}

// Next returns the next page. It returns io.EOF when the export is
// exhausted.
func (r *Reader) Next() (Page, error) {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Page{}, io.EOF
			}
			return Page{}, fmt.Errorf("malformed dump: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "page" {
			continue
		}

		var p xmlPage
		if err := r.dec.DecodeElement(&p, &start); err != nil {
			return Page{}, fmt.Errorf("malformed page element: %w", err)
		}

		return Page{
			Title:    p.Title,
			Text:     p.Revision.Text,
			Redirect: p.Redirect != nil,
			Ns:       p.Ns,
		}, nil
	}
}

// Interesting filters out titles that cannot be headwords: namespaced
// pages, single characters and bare numbers.
func Interesting(title string) bool {
	if len(title) < 2 {
		return false
	}

	if strings.Contains(title, ":") {
		return false
	}

	numeric := true
	for _, r := range title {
		if r < '0' || r > '9' {
			numeric = false
			break
		}
	}

	return !numeric
}

// Load reads a whole export file into raw pages ready for the parse
// pipeline. A .bz2 suffix is decompressed on the fly.
func Load(path string) ([]corpus.RawPage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var src io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		src = bzip2.NewReader(f)
	}

	return Read(src)
}

// Read collects the interesting pages of an export stream.
func Read(src io.Reader) ([]corpus.RawPage, error) {
	r := NewReader(src)

	var raws []corpus.RawPage
	for {
		p, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if p.Redirect || p.Ns != 0 || !Interesting(p.Title) {
			continue
		}

		raws = append(raws, corpus.RawPage{Headword: p.Title, Text: p.Text})
	}

	return raws, nil
}
