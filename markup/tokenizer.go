// Package markup splits raw wiki page text into a flat token stream.
//
// The tokenizer is lossless: every byte of the input belongs to the
// span of exactly one top-level token, in order. Unbalanced template
// or link delimiters never abort a page; the unbalanced tail is
// re-emitted as plain text and recorded as a diagnostic.
package markup

import (
	"strings"

	"github.com/revelaction/wikidict/entry"
)

const galleryClose = "</gallery>"

// Tokenizer scans one page. It is single use: create a new one to
// restart over the same text, tokenization is pure.
type Tokenizer struct {
	src   string
	pos   int
	queue []Token
	diags []entry.Diag
}

// New creates a Tokenizer over raw page text.
func New(src string) *Tokenizer {
	return &Tokenizer{src: src}
}

// Tokenize scans the whole page at once.
func Tokenize(src string) ([]Token, []entry.Diag) {
	t := New(src)

	var tokens []Token
	for {
		tok, ok := t.Next()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}

	return tokens, t.Diags()
}

// Diags returns the diagnostics recorded so far.
func (t *Tokenizer) Diags() []entry.Diag {
	return t.diags
}

// Next returns the next top-level token. The second result is false
// when the input is exhausted.
func (t *Tokenizer) Next() (Token, bool) {
	if len(t.queue) > 0 {
		tok := t.queue[0]
		t.queue = t.queue[1:]
		return tok, true
	}

	if t.pos >= len(t.src) {
		return Token{}, false
	}

	if t.atLineStart() {
		switch c := t.src[t.pos]; {
		case c == '=':
			if tok, ok := t.scanHeading(); ok {
				return tok, true
			}
		case c == '#' || c == '*' || c == ':' || c == ';':
			return t.scanListItem(), true
		case strings.HasPrefix(t.src[t.pos:], "<gallery"):
			return t.scanGallery(), true
		}
	}

	t.queue = t.scanInline(true)
	return t.Next()
}

func (t *Tokenizer) atLineStart() bool {
	return t.pos == 0 || t.src[t.pos-1] == '\n'
}

// scanInline scans templates, links and text runs starting at the
// current position. With stopAtNewline it consumes through the first
// newline that is not inside a template or link span.
func (t *Tokenizer) scanInline(stopAtNewline bool) []Token {
	src := t.src

	var tokens []Token
	textStart := -1

	flush := func(end int) {
		if textStart >= 0 && end > textStart {
			tokens = append(tokens, Token{Kind: Text, Span: src[textStart:end], Offset: textStart})
		}
		textStart = -1
	}

	// Per-page recovery for unbalanced nesting at end of input: record
	// a MalformedTemplate diagnostic and re-emit the tail as opaque
	// text. The batch goes on.
	bail := func(detail string) {
		t.diags = append(t.diags, entry.Diag{
			Code:   entry.MalformedTemplate,
			Offset: t.pos,
			Detail: detail + " at end of input",
		})

		flush(t.pos)
		tokens = append(tokens, Token{Kind: Text, Span: src[t.pos:], Offset: t.pos})
		t.pos = len(src)
	}

	for t.pos < len(src) {
		if strings.HasPrefix(src[t.pos:], "{{") {
			end, ok := scanBalanced(src, t.pos, "{{", "}}")
			if !ok {
				bail("unbalanced '{{'")
				return tokens
			}
			flush(t.pos)
			tokens = append(tokens, parseTemplate(src[t.pos:end], t.pos))
			t.pos = end
			continue
		}

		if strings.HasPrefix(src[t.pos:], "[[") {
			end, ok := scanBalanced(src, t.pos, "[[", "]]")
			if !ok {
				bail("unbalanced '[['")
				return tokens
			}
			flush(t.pos)
			tokens = append(tokens, parseLink(src[t.pos:end], t.pos))
			t.pos = end
			continue
		}

		c := src[t.pos]
		if textStart < 0 {
			textStart = t.pos
		}
		t.pos++

		if c == '\n' && stopAtNewline {
			break
		}
	}

	flush(t.pos)
	return tokens
}

// scanHeading scans a `== title ==` line. It reports false when the
// line only looks like a heading (no closing '=' run); the caller then
// falls back to inline scanning.
func (t *Tokenizer) scanHeading() (Token, bool) {
	src := t.src
	start := t.pos

	eol := strings.IndexByte(src[start:], '\n')
	lineEnd := len(src)
	spanEnd := len(src)
	if eol >= 0 {
		lineEnd = start + eol
		spanEnd = lineEnd + 1
	}

	line := strings.TrimRight(src[start:lineEnd], " \t")

	lead := 0
	for lead < len(line) && line[lead] == '=' {
		lead++
	}

	trail := 0
	for trail < len(line)-lead && line[len(line)-1-trail] == '=' {
		trail++
	}

	if trail == 0 || lead+trail >= len(line) {
		return Token{}, false
	}

	level := lead
	if trail < level {
		level = trail
	}

	inner := line[lead : len(line)-trail]
	innerOffset := start + lead

	tok := Token{
		Kind:   Heading,
		Span:   src[start:spanEnd],
		Offset: start,
		Level:  level,
		Title:  strings.TrimSpace(inner),
		Inline: t.inlineOf(inner, innerOffset),
	}

	t.pos = spanEnd
	return tok, true
}

// scanListItem scans one list line. The marker run determines depth;
// the content becomes child tokens.
func (t *Tokenizer) scanListItem() Token {
	src := t.src
	start := t.pos

	i := start
	for i < len(src) {
		c := src[i]
		if c != '#' && c != '*' && c != ':' && c != ';' {
			break
		}
		i++
	}

	marker := src[start:i]
	t.pos = i

	inline := t.scanInline(true)

	return Token{
		Kind:   ListItem,
		Span:   src[start:t.pos],
		Offset: start,
		Marker: marker,
		Depth:  len(marker),
		Inline: inline,
	}
}

// scanGallery consumes an opaque gallery block, through the closing
// tag or to the end of input.
func (t *Tokenizer) scanGallery() Token {
	src := t.src
	start := t.pos

	end := len(src)
	if idx := strings.Index(src[start:], galleryClose); idx >= 0 {
		end = start + idx + len(galleryClose)
		if end < len(src) && src[end] == '\n' {
			end++
		}
	}

	t.pos = end
	return Token{Kind: Gallery, Span: src[start:end], Offset: start}
}

// inlineOf tokenizes an embedded string (a heading title) with offsets
// rebased onto the page.
func (t *Tokenizer) inlineOf(s string, base int) []Token {
	sub := &Tokenizer{src: s}
	tokens := sub.scanInline(false)

	for i := range tokens {
		tokens[i].Offset += base
	}

	for _, d := range sub.diags {
		d.Offset += base
		t.diags = append(t.diags, d)
	}

	return tokens
}

// scanBalanced finds the end of a balanced open/close span starting at
// start. Only the given delimiter pair affects the depth: nested
// spans of the same pair inside an argument stay whole.
func scanBalanced(src string, start int, open, close string) (int, bool) {
	depth := 0

	i := start
	for i < len(src) {
		switch {
		case strings.HasPrefix(src[i:], open):
			depth++
			i += len(open)
		case strings.HasPrefix(src[i:], close):
			depth--
			i += len(close)
			if depth == 0 {
				return i, true
			}
		default:
			i++
		}
	}

	return 0, false
}

func parseTemplate(span string, offset int) Token {
	inner := span[2 : len(span)-2]
	parts := splitTop(inner)

	tok := Token{
		Kind:   Template,
		Span:   span,
		Offset: offset,
		Name:   strings.TrimSpace(parts[0]),
	}

	for _, part := range parts[1:] {
		if key, value, ok := cutNamed(part); ok {
			if tok.Named == nil {
				tok.Named = map[string]string{}
			}
			tok.Named[key] = value
			continue
		}
		tok.Args = append(tok.Args, strings.TrimSpace(part))
	}

	return tok
}

func parseLink(span string, offset int) Token {
	inner := span[2 : len(span)-2]
	parts := splitTop(inner)

	tok := Token{
		Kind:   Link,
		Span:   span,
		Offset: offset,
		Target: strings.TrimSpace(parts[0]),
	}

	if len(parts) > 1 {
		tok.Display = strings.TrimSpace(parts[len(parts)-1])
	}

	return tok
}

// splitTop splits on '|' at nesting depth zero. Pipes inside nested
// `{{...}}` or `[[...]]` spans belong to the nested span.
func splitTop(s string) []string {
	var parts []string

	depth := 0
	last := 0

	i := 0
	for i < len(s) {
		switch {
		case strings.HasPrefix(s[i:], "{{") || strings.HasPrefix(s[i:], "[["):
			depth++
			i += 2
		case strings.HasPrefix(s[i:], "}}") || strings.HasPrefix(s[i:], "]]"):
			depth--
			i += 2
		case s[i] == '|' && depth == 0:
			parts = append(parts, s[last:i])
			i++
			last = i
		default:
			i++
		}
	}

	parts = append(parts, s[last:])
	return parts
}

// cutNamed splits a `key=value` template argument. The key must be a
// bare word: an '=' inside nested markup does not make an argument
// named.
func cutNamed(part string) (string, string, bool) {
	idx := strings.IndexByte(part, '=')
	if idx <= 0 {
		return "", "", false
	}

	key := strings.TrimSpace(part[:idx])
	if key == "" {
		return "", "", false
	}

	for _, r := range key {
		isWord := r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !isWord {
			return "", "", false
		}
	}

	return key, strings.TrimSpace(part[idx+1:]), true
}
