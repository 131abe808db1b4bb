// Package filesystem stores pages as JSON files in a directory, one
// file per headword.
package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/revelaction/wikidict/entry"
	"github.com/revelaction/wikidict/storage"
)

const pageExt = ".json"

type PageStore struct {
	root string
}

var _ storage.PageRepository = (*PageStore)(nil)

// NewPageStore creates a filesystem page store rooted at dir. The
// directory is created when missing.
func NewPageStore(root string) (*PageStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}

	return &PageStore{root: root}, nil
}

func (s *PageStore) List(pattern string) ([]string, error) {
	files, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}

	var headwords []string
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != pageExt {
			continue
		}

		headword := strings.TrimSuffix(file.Name(), pageExt)
		if pattern != "" && !strings.Contains(headword, pattern) {
			continue
		}

		headwords = append(headwords, headword)
	}

	sort.Strings(headwords)
	return headwords, nil
}

func (s *PageStore) Read(headword string) (*entry.Page, error) {
	data, err := os.ReadFile(s.path(headword))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("page not found: %s", headword)
		}
		return nil, err
	}

	var p entry.Page
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("JSON decoding error: %w", err)
	}

	return &p, nil
}

// FindTranslations scans every stored page. The whole directory is one
// cursor step: a cursor past zero means everything was returned (EOF).
func (s *PageStore) FindTranslations(lang, term string, after storage.Cursor, limit int, onPage func(*entry.Page) error) (storage.Cursor, error) {
	if after > 0 {
		return after, nil
	}

	headwords, err := s.List("")
	if err != nil {
		return after, err
	}

	found := 0
	for _, headword := range headwords {
		if limit > 0 && found >= limit {
			break
		}

		p, err := s.Read(headword)
		if err != nil {
			return after, err
		}

		if !translates(p, lang, term) {
			continue
		}

		if err := onPage(p); err != nil {
			return after, err
		}
		found++
	}

	return 1, nil
}

func (s *PageStore) Write(p *entry.Page) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path(p.Headword), data, 0644)
}

func (s *PageStore) path(headword string) string {
	return filepath.Join(s.root, headword+pageExt)
}

func translates(p *entry.Page, lang, term string) bool {
	for _, sec := range p.Languages {
		for _, blk := range sec.Blocks {
			for _, sense := range blk.Senses {
				for _, tr := range sense.Translations {
					if tr.Term != term {
						continue
					}
					if lang == "" || tr.Lang == lang {
						return true
					}
				}
			}
		}
	}

	return false
}
