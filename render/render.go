// Package render writes parsed pages to a terminal or as JSON.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/revelaction/wikidict/entry"
)

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"

	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	ClearLine = "\033[K"
)

// Renderer writes pages in a human readable layout: one block per
// language section, numbered senses, indented cross references and
// translations.
type Renderer struct {
	W io.Writer

	HasColor bool
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{W: w}
}

// Page renders a whole page.
func (r *Renderer) Page(p *entry.Page) {
	fmt.Fprintf(r.W, "%s\n", r.color(White, p.Headword))

	for _, sec := range p.Languages {
		r.Section(&sec)
	}
}

// Section renders one language section.
func (r *Renderer) Section(sec *entry.LanguageSection) {
	fmt.Fprintf(r.W, "%s\n", r.color(Yellow256, sec.Code))

	if sec.Etymology != "" {
		fmt.Fprintf(r.W, "  %s %s\n", r.color(Grey256, "etym"), sec.Etymology)
	}

	for _, pr := range sec.Pronunciation.Entries {
		fmt.Fprintf(r.W, "  %s /%s/\n", r.color(Grey256, pr.System), pr.Value)
	}

	if sec.Pronunciation.Audio != "" {
		fmt.Fprintf(r.W, "  %s %s\n", r.color(Grey256, "audio"), sec.Pronunciation.Audio)
	}

	// sense numbering is per section, across sibling blocks
	n := 0
	for _, blk := range sec.Blocks {
		fmt.Fprintf(r.W, "  %s%s\n", r.color(Green256, blk.Kind), attrSuffix(blk.Attrs))

		for _, s := range blk.Senses {
			n++
			r.sense(n, &s)
		}
	}
}

func (r *Renderer) sense(n int, s *entry.Sense) {
	gloss := s.Gloss
	if s.Tag != "" {
		gloss = fmt.Sprintf("(%s) %s", s.Tag, gloss)
	}
	fmt.Fprintf(r.W, "  %2d. %s\n", n, gloss)

	for _, note := range s.Notes {
		fmt.Fprintf(r.W, "      %s\n", r.color(Gray, note))
	}

	for _, ref := range s.CrossRefs {
		fmt.Fprintf(r.W, "      %s %s\n", r.color(Grey256, ref.Kind), ref.Target)
	}

	for _, tr := range s.Translations {
		fmt.Fprintf(r.W, "      %s %s%s\n", r.color(Teal, tr.Lang), tr.Term, attrSuffix(tr.Attrs))
	}
}

func (r *Renderer) color(code, text string) string {
	if !r.HasColor {
		return text
	}
	return code + text + Off
}

func attrSuffix(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(attrs))
	if g, ok := attrs["gender"]; ok {
		parts = append(parts, g)
	}

	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		if key != "gender" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		parts = append(parts, key+"="+attrs[key])
	}

	return " [" + strings.Join(parts, " ") + "]"
}
