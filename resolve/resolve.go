// Package resolve interprets the closed set of recognized templates
// and headings into typed events. Everything outside the fixed
// vocabulary passes through as Opaque: new or rare templates never
// crash a page.
package resolve

import (
	"strings"

	"github.com/revelaction/wikidict/entry"
	"github.com/revelaction/wikidict/markup"
)

// posKinds maps template suffixes and heading titles to the normalized
// part-of-speech kind.
var posKinds = map[string]string{
	"nom":          entry.Noun,
	"noun":         entry.Noun,
	"substantiu":   entry.Noun,
	"verb":         entry.Verb,
	"adj":          entry.Adjective,
	"adjectiu":     entry.Adjective,
	"adjective":    entry.Adjective,
	"adv":          entry.Adverb,
	"adverbi":      entry.Adverb,
	"pronom":       entry.Pronoun,
	"pronoun":      entry.Pronoun,
	"forma-verb":   entry.VerbForm,
	"verb-forma":   entry.VerbForm,
	"forma verbal": entry.VerbForm,
	"forma-nom":    entry.NounForm,
}

// crossRefKinds maps section templates (`{{-sin-}}`) and heading
// titles to the relation kind.
var crossRefKinds = map[string]string{
	"-sin-":              entry.Synonym,
	"sinònims":           entry.Synonym,
	"-ant-":              entry.Antonym,
	"antònims":           entry.Antonym,
	"-hiper-":            entry.Hypernym,
	"hiperònims":         entry.Hypernym,
	"-hipo-":             entry.Hyponym,
	"hipònims":           entry.Hyponym,
	"-der-":              entry.Derived,
	"derivats":           entry.Derived,
	"-rel-":              entry.Related,
	"relacionats":        entry.Related,
	"termes relacionats": entry.Related,
	"-comp-":             entry.Compound,
	"compostos":          entry.Compound,
}

// genders accepted as the bare first argument of a part-of-speech
// template, e.g. {{ca-nom|m}}.
var genders = map[string]bool{
	"m": true, "f": true, "mf": true, "m-f": true, "n": true, "c": true,
}

// Resolve maps the token stream of one page to typed events.
//
// The only state carried across tokens is whether a cross-reference
// section is open: a bare link is a CrossRefEntry there and prose
// everywhere else.
func Resolve(tokens []markup.Token) []Event {
	r := resolver{}

	for _, tok := range tokens {
		r.token(tok)
	}

	return r.events
}

type resolver struct {
	events []Event

	// set between BeginCrossRefSection and the next section marker
	inCrossRef bool
}

func (r *resolver) emit(ev Event) {
	switch ev.Kind {
	case BeginLanguage, BeginPartOfSpeech, BeginEtymology,
		BeginTranslationGroup, EndTranslationGroup, SenseItem:
		r.inCrossRef = false
	case BeginCrossRefSection:
		r.inCrossRef = true
	}

	r.events = append(r.events, ev)
}

func (r *resolver) token(tok markup.Token) {
	switch tok.Kind {
	case markup.Heading:
		r.heading(tok)

	case markup.Template:
		r.template(tok)

	case markup.ListItem:
		r.listItem(tok)

	case markup.Link:
		if r.inCrossRef && tok.Target != "" {
			r.emit(Event{Kind: CrossRefEntry, Offset: tok.Offset, Target: tok.Target})
			return
		}
		r.emit(Event{Kind: TextRun, Offset: tok.Offset, Text: linkText(tok)})

	case markup.Text:
		r.emit(Event{Kind: TextRun, Offset: tok.Offset, Text: tok.Span})

	case markup.Gallery:
		// opaque, discarded
	}
}

// heading dispatches on the title: a language marker template inside
// it, a known part-of-speech name, an etymology or cross-reference
// section name. Unknown headings produce no event.
func (r *resolver) heading(tok markup.Token) {
	for _, in := range tok.Inline {
		if in.Kind != markup.Template {
			continue
		}
		if code, ok := languageCode(in); ok {
			r.emit(Event{Kind: BeginLanguage, Offset: tok.Offset, Code: code})
			return
		}
	}

	title := strings.ToLower(strings.TrimRight(tok.Title, " 0123456789"))

	if kind, ok := posKinds[title]; ok {
		r.emit(Event{Kind: BeginPartOfSpeech, Offset: tok.Offset, POS: kind})
		return
	}

	if rel, ok := crossRefKinds[title]; ok {
		r.emit(Event{Kind: BeginCrossRefSection, Offset: tok.Offset, Relation: rel})
		return
	}

	if strings.HasPrefix(title, "etimologia") || strings.HasPrefix(title, "etymology") {
		r.emit(Event{Kind: BeginEtymology, Offset: tok.Offset})
	}
}

func (r *resolver) template(tok markup.Token) {
	name := tok.Name

	if code, ok := languageCode(tok); ok {
		r.emit(Event{Kind: BeginLanguage, Offset: tok.Offset, Code: code})
		return
	}

	if rel, ok := crossRefKinds[name]; ok {
		r.emit(Event{Kind: BeginCrossRefSection, Offset: tok.Offset, Relation: rel})
		return
	}

	if kind, attrs, ok := partOfSpeech(tok); ok {
		r.emit(Event{Kind: BeginPartOfSpeech, Offset: tok.Offset, POS: kind, Attrs: attrs})
		return
	}

	switch name {
	case "-etimologia-", "-etim-":
		r.emit(Event{Kind: BeginEtymology, Offset: tok.Offset})

	case "pron", "pronafi", "AFI", "afi":
		if value := tok.Arg(len(tok.Args) - 1); value != "" {
			r.emit(Event{Kind: Pronunciation, Offset: tok.Offset, System: entry.SystemIPA, Value: value})
		}

	case "àudio", "audio":
		if file := tok.Arg(0); file != "" {
			r.emit(Event{Kind: Audio, Offset: tok.Offset, Value: file})
		}

	case "trad-ini", "t-ini":
		r.emit(Event{Kind: BeginTranslationGroup, Offset: tok.Offset, Gloss: tok.Arg(0)})

	case "trad-fin", "t-fin":
		r.emit(Event{Kind: EndTranslationGroup, Offset: tok.Offset})

	case "trad", "t", "t+":
		r.translation(tok)

	default:
		r.emit(Event{Kind: Opaque, Offset: tok.Offset, Name: name, Args: tok.Args})
	}
}

func (r *resolver) translation(tok markup.Token) {
	lang := tok.Arg(0)
	term := tok.Arg(1)
	if lang == "" || term == "" {
		r.emit(Event{Kind: Opaque, Offset: tok.Offset, Name: tok.Name, Args: tok.Args})
		return
	}

	ev := Event{Kind: TranslationEntry, Offset: tok.Offset, Lang: lang, Term: term}

	for _, arg := range tok.Args[2:] {
		if genders[arg] {
			ev.Attrs = attr(ev.Attrs, "gender", arg)
		}
	}
	for key, value := range tok.Named {
		ev.Attrs = attr(ev.Attrs, key, value)
	}

	r.emit(ev)
}

// listItem turns a numbered top-level item into a sense, a deeper item
// into a sense note, and scans bullet items for cross-reference links
// and translation entries.
func (r *resolver) listItem(tok markup.Token) {
	if tok.Numbered() && tok.Depth == 1 {
		gloss, tag := glossOf(tok.Inline)
		r.emit(Event{Kind: SenseItem, Offset: tok.Offset, Gloss: gloss, Tag: tag})
		return
	}

	if tok.Numbered() {
		if text, _ := glossOf(tok.Inline); text != "" {
			r.emit(Event{Kind: SenseNote, Offset: tok.Offset, Text: text})
		}
		return
	}

	for _, in := range tok.Inline {
		switch in.Kind {
		case markup.Template:
			r.template(in)
		case markup.Link:
			if r.inCrossRef && in.Target != "" {
				r.emit(Event{Kind: CrossRefEntry, Offset: in.Offset, Target: in.Target})
			}
		}
	}
}

// languageCode recognizes the two forms of the language-section
// marker: {{-ca-}} and {{llengua|ca}}. Section templates like {{-sin-}}
// share the dashed shape and are excluded by name.
func languageCode(tok markup.Token) (string, bool) {
	name := tok.Name

	if _, isSection := crossRefKinds[name]; isSection {
		return "", false
	}

	if name == "llengua" || name == "lengua" || name == "lang" {
		if code := tok.Arg(0); isLanguageCode(code) {
			return code, true
		}
		return "", false
	}

	if len(name) >= 4 && strings.HasPrefix(name, "-") && strings.HasSuffix(name, "-") {
		code := name[1 : len(name)-1]
		if isLanguageCode(code) {
			return code, true
		}
	}

	return "", false
}

func isLanguageCode(code string) bool {
	if len(code) < 2 || len(code) > 3 {
		return false
	}
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// partOfSpeech recognizes `{{<lang>-<pos>|...}}` markers such as
// {{ca-nom|m}} plus the bare {{forma-verb|...}} family.
func partOfSpeech(tok markup.Token) (string, map[string]string, bool) {
	name := tok.Name

	kind, ok := posKinds[name]
	if !ok {
		prefix, suffix, found := strings.Cut(name, "-")
		if !found || !isLanguageCode(prefix) {
			return "", nil, false
		}
		if kind, ok = posKinds[suffix]; !ok {
			return "", nil, false
		}
	}

	var attrs map[string]string
	for _, arg := range tok.Args {
		if genders[arg] {
			attrs = attr(attrs, "gender", arg)
		}
	}
	for key, value := range tok.Named {
		attrs = attr(attrs, key, value)
	}

	return kind, attrs, true
}

func attr(attrs map[string]string, key, value string) map[string]string {
	if attrs == nil {
		attrs = map[string]string{}
	}
	attrs[key] = value
	return attrs
}

// glossOf flattens the inline tokens of a gloss line into plain text.
// A leading {{marca|...}} template becomes the domain tag instead of
// gloss text; links contribute their display text; other templates
// contribute nothing.
func glossOf(tokens []markup.Token) (string, string) {
	var b strings.Builder
	tag := ""

	for _, tok := range tokens {
		switch tok.Kind {
		case markup.Text:
			b.WriteString(strings.ReplaceAll(tok.Span, "''", ""))

		case markup.Link:
			b.WriteString(linkText(tok))

		case markup.Template:
			switch tok.Name {
			case "marca", "marca-nocat", "q", "qualificatiu":
				if tag == "" {
					tag = tok.Arg(len(tok.Args) - 1)
				}
			case "ex-us", "ex-cit", "ex":
				b.WriteString(tok.Arg(len(tok.Args) - 1))
			}
		}
	}

	return strings.Join(strings.Fields(b.String()), " "), tag
}

func linkText(tok markup.Token) string {
	if tok.Display != "" {
		return tok.Display
	}
	return tok.Target
}
