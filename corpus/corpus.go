// Package corpus holds a frozen collection of parsed pages and the
// read-only query API over it. A corpus is built once behind a
// collection barrier and never mutated: a new snapshot replaces the
// old one.
package corpus

import (
	"github.com/revelaction/wikidict/entry"
)

// Corpus is an immutable headword -> page mapping. All methods are
// pure reads and safe for concurrent callers.
type Corpus struct {
	pages map[string]*entry.Page
	order []string
}

// New freezes a set of parsed pages into a corpus. Later pages with a
// duplicate headword are dropped.
func New(pages []*entry.Page) *Corpus {
	c := &Corpus{pages: make(map[string]*entry.Page, len(pages))}

	for _, p := range pages {
		if p == nil {
			continue
		}
		if _, dup := c.pages[p.Headword]; dup {
			continue
		}
		c.pages[p.Headword] = p
		c.order = append(c.order, p.Headword)
	}

	return c
}

// Len returns the number of pages.
func (c *Corpus) Len() int {
	return len(c.pages)
}

// Headwords returns all headwords in insertion order.
func (c *Corpus) Headwords() []string {
	return c.order
}

// Page returns the page for an exact headword.
func (c *Corpus) Page(headword string) (*entry.Page, bool) {
	p, ok := c.pages[headword]
	return p, ok
}

// Lookup returns the language sections of a headword. With a non-empty
// lang only the sections with that code are returned; document order
// is kept.
func (c *Corpus) Lookup(headword, lang string) []entry.LanguageSection {
	p, ok := c.pages[headword]
	if !ok {
		return nil
	}

	var sections []entry.LanguageSection
	for _, sec := range p.Languages {
		if lang != "" && sec.Code != lang {
			continue
		}
		sections = append(sections, sec)
	}

	return sections
}

// SensesOf returns the senses of a headword for one language and
// part-of-speech kind, in document order. Sibling blocks of the same
// kind contribute their senses in sequence.
func (c *Corpus) SensesOf(headword, lang, pos string) []entry.Sense {
	var senses []entry.Sense

	for _, sec := range c.Lookup(headword, lang) {
		for _, blk := range sec.Blocks {
			if blk.Kind != pos {
				continue
			}
			senses = append(senses, blk.Senses...)
		}
	}

	return senses
}

// TranslationsOf returns the translations of one sense. The sense
// index is 1-based over all senses of the language section in document
// order, matching the displayed sense numbering. A non-empty target
// narrows to one target language.
func (c *Corpus) TranslationsOf(headword, lang string, senseIndex int, target string) []entry.Translation {
	n := 0
	for _, sec := range c.Lookup(headword, lang) {
		for _, blk := range sec.Blocks {
			for _, s := range blk.Senses {
				n++
				if n != senseIndex {
					continue
				}

				if target == "" {
					return s.Translations
				}

				var out []entry.Translation
				for _, tr := range s.Translations {
					if tr.Lang == target {
						out = append(out, tr)
					}
				}
				return out
			}
		}
	}

	return nil
}

// ResolveCrossReference resolves a cross reference against the corpus
// by exact headword match. Best effort: the target page may simply not
// be part of the parse batch.
func (c *Corpus) ResolveCrossReference(ref entry.CrossReference) (*entry.Page, bool) {
	p, ok := c.pages[ref.Target]
	return p, ok
}
