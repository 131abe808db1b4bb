// Package assemble groups the typed event stream of one page into the
// normalized entry tree. The open entities implied by the flat wiki
// markup are held on an explicit stack of tagged frames, popped and
// committed in LIFO order on each section transition.
package assemble

import (
	"fmt"
	"strings"

	"github.com/revelaction/wikidict/entry"
	"github.com/revelaction/wikidict/resolve"
)

type frameKind int

const (
	fLanguage frameKind = iota
	fEtymology
	fPOS
	fSense
	fCrossRef
	fTransGroup
)

func (k frameKind) String() string {
	switch k {
	case fLanguage:
		return "language section"
	case fEtymology:
		return "etymology"
	case fPOS:
		return "part-of-speech block"
	case fSense:
		return "sense"
	case fCrossRef:
		return "cross-reference section"
	case fTransGroup:
		return "translation group"
	}
	return "unknown"
}

// frame is one open entity under assembly. Only the fields of its kind
// are set.
type frame struct {
	kind frameKind

	section *entry.LanguageSection // fLanguage
	etym    []string               // fEtymology prose parts
	block   *entry.PartOfSpeechBlock
	sense   *entry.Sense

	// fCrossRef / fTransGroup: relation kind and the sense the entries
	// are committed to. The target may be a reopened, already
	// committed sense (translation tables often follow the sense list).
	relation string
	target   *entry.Sense
}

// Assembler builds one page. Feed it the page's events in order, then
// Close.
type Assembler struct {
	page  *entry.Page
	stack []frame
	diags []entry.Diag
}

// New creates an Assembler for one headword.
func New(headword string) *Assembler {
	return &Assembler{page: &entry.Page{Headword: headword}}
}

// Page assembles and validates a whole page at once. The returned
// diagnostics hold the recoverable findings (orphan events); the error
// is non-nil only when the finished page violates a model invariant,
// and fails this page alone.
func Page(headword string, events []resolve.Event) (*entry.Page, []entry.Diag, error) {
	a := New(headword)

	for _, ev := range events {
		a.Feed(ev)
	}

	return a.Close()
}

// Diags returns the diagnostics recorded so far.
func (a *Assembler) Diags() []entry.Diag {
	return a.diags
}

// Feed advances the state machine by one event. Events with no valid
// open parent are recorded as OrphanEvent and dropped; assembly of the
// rest of the page continues.
func (a *Assembler) Feed(ev resolve.Event) {
	switch ev.Kind {
	case resolve.BeginLanguage:
		a.popAll()
		a.push(frame{kind: fLanguage, section: &entry.LanguageSection{Code: ev.Code}})

	case resolve.BeginEtymology:
		if !a.popTo(fLanguage) {
			a.orphan(ev, "no open language section")
			return
		}
		a.push(frame{kind: fEtymology})

	case resolve.Pronunciation:
		sec := a.find(fLanguage)
		if sec == nil {
			a.orphan(ev, "no open language section")
			return
		}
		sec.section.Pronunciation.Entries = append(sec.section.Pronunciation.Entries,
			entry.Pronunciation{System: ev.System, Value: ev.Value})

	case resolve.Audio:
		sec := a.find(fLanguage)
		if sec == nil {
			a.orphan(ev, "no open language section")
			return
		}
		if sec.section.Pronunciation.Audio == "" {
			sec.section.Pronunciation.Audio = ev.Value
		}

	case resolve.BeginPartOfSpeech:
		if !a.popTo(fLanguage) {
			a.orphan(ev, "no open language section")
			return
		}
		a.push(frame{kind: fPOS, block: &entry.PartOfSpeechBlock{Kind: ev.POS, Attrs: ev.Attrs}})

	case resolve.SenseItem:
		if !a.popTo(fPOS) {
			a.orphan(ev, "no open part-of-speech block")
			return
		}
		a.push(frame{kind: fSense, sense: &entry.Sense{Gloss: ev.Gloss, Tag: ev.Tag}})

	case resolve.SenseNote:
		f := a.find(fSense)
		if f == nil {
			a.orphan(ev, "no open sense")
			return
		}
		f.sense.Notes = append(f.sense.Notes, ev.Text)

	case resolve.BeginCrossRefSection:
		target := a.senseTarget()
		if target == nil {
			a.orphan(ev, "no sense to attach to")
			return
		}
		a.push(frame{kind: fCrossRef, relation: ev.Relation, target: target})

	case resolve.CrossRefEntry:
		f := a.top(fCrossRef)
		if f == nil {
			a.orphan(ev, "no open cross-reference section")
			return
		}
		f.target.CrossRefs = append(f.target.CrossRefs,
			entry.CrossReference{Kind: f.relation, Target: ev.Target})

	case resolve.BeginTranslationGroup:
		target := a.senseTarget()
		if target == nil {
			a.orphan(ev, "no sense to attach to")
			return
		}
		a.push(frame{kind: fTransGroup, relation: ev.Gloss, target: target})

	case resolve.TranslationEntry:
		f := a.top(fTransGroup)
		if f == nil {
			a.orphan(ev, "no open translation group")
			return
		}
		f.target.Translations = append(f.target.Translations,
			entry.Translation{Lang: ev.Lang, Term: ev.Term, Attrs: ev.Attrs})

	case resolve.EndTranslationGroup:
		if a.top(fTransGroup) == nil {
			a.orphan(ev, "no open translation group")
			return
		}
		a.pop()

	case resolve.TextRun:
		if len(a.stack) > 0 && a.stack[len(a.stack)-1].kind == fEtymology {
			top := &a.stack[len(a.stack)-1]
			top.etym = append(top.etym, ev.Text)
		}

	case resolve.Opaque:
		// tolerated, contributes nothing
	}
}

// Close commits every open entity in LIFO order and validates the
// finished page.
func (a *Assembler) Close() (*entry.Page, []entry.Diag, error) {
	a.popAll()

	if err := entry.Validate(a.page); err != nil {
		a.diags = append(a.diags, entry.Diag{
			Code:   entry.InvalidEntry,
			Offset: -1,
			Detail: err.Error(),
		})
		return nil, a.diags, err
	}

	return a.page, a.diags, nil
}

func (a *Assembler) push(f frame) {
	a.stack = append(a.stack, f)
}

// pop commits the top frame to its parent.
func (a *Assembler) pop() {
	f := a.stack[len(a.stack)-1]
	a.stack = a.stack[:len(a.stack)-1]

	switch f.kind {
	case fLanguage:
		a.page.Languages = append(a.page.Languages, *f.section)

	case fEtymology:
		parent := a.find(fLanguage)
		if parent != nil && parent.section.Etymology == "" {
			parent.section.Etymology = collapse(f.etym)
		}

	case fPOS:
		parent := a.find(fLanguage)
		if parent != nil {
			parent.section.Blocks = append(parent.section.Blocks, *f.block)
		}

	case fSense:
		parent := a.find(fPOS)
		if parent != nil {
			parent.block.Senses = append(parent.block.Senses, *f.sense)
		}

	case fCrossRef, fTransGroup:
		// entries were appended to the target sense directly
	}
}

func (a *Assembler) popAll() {
	for len(a.stack) > 0 {
		a.pop()
	}
}

// popTo pops frames until kind is on top. It reports false, popping
// nothing, when no such frame is open.
func (a *Assembler) popTo(kind frameKind) bool {
	if a.find(kind) == nil {
		return false
	}

	for a.stack[len(a.stack)-1].kind != kind {
		a.pop()
	}

	return true
}

// find returns the innermost open frame of the given kind.
func (a *Assembler) find(kind frameKind) *frame {
	for i := len(a.stack) - 1; i >= 0; i-- {
		if a.stack[i].kind == kind {
			return &a.stack[i]
		}
	}
	return nil
}

// top returns the top frame if it has the given kind.
func (a *Assembler) top(kind frameKind) *frame {
	if len(a.stack) == 0 {
		return nil
	}
	if f := &a.stack[len(a.stack)-1]; f.kind == kind {
		return f
	}
	return nil
}

// senseTarget returns the sense a cross-reference section or
// translation group belongs to: the open sense when there is one,
// otherwise the last committed sense of the open part-of-speech block.
// Cross-reference and translation frames on top of the sense are
// closed first.
func (a *Assembler) senseTarget() *entry.Sense {
	if a.popTo(fSense) {
		return a.stack[len(a.stack)-1].sense
	}

	if a.popTo(fPOS) {
		block := a.stack[len(a.stack)-1].block
		if n := len(block.Senses); n > 0 {
			return &block.Senses[n-1]
		}
	}

	return nil
}

func (a *Assembler) orphan(ev resolve.Event, detail string) {
	a.diags = append(a.diags, entry.Diag{
		Code:   entry.OrphanEvent,
		Offset: ev.Offset,
		Detail: fmt.Sprintf("%s: %s", ev.Kind, detail),
	})
}

// collapse joins etymology prose parts into one whitespace-normalized
// string.
func collapse(parts []string) string {
	joined := strings.ReplaceAll(strings.Join(parts, " "), "''", "")
	return strings.Join(strings.Fields(joined), " ")
}
