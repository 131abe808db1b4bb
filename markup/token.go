package markup

// Kind discriminates the token variants.
type Kind int

const (
	// Text is a run of plain markup text.
	Text Kind = iota

	// Heading is a `== title ==` line.
	Heading

	// Template is a `{{name|arg|key=value}}` invocation.
	Template

	// ListItem is a `#`/`*`/`:` prefixed line.
	ListItem

	// Link is a `[[target]]` or `[[target|display]]` reference.
	Link

	// Gallery is an opaque `<gallery>...</gallery>` block. Later
	// stages discard it.
	Gallery
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Heading:
		return "heading"
	case Template:
		return "template"
	case ListItem:
		return "list-item"
	case Link:
		return "link"
	case Gallery:
		return "gallery"
	}
	return "unknown"
}

// Token is one markup token. Span is the exact slice of the raw page
// text the token was scanned from: concatenating the spans of all
// top-level tokens reproduces the input byte for byte.
type Token struct {
	Kind Kind

	Span string

	// Byte offset of Span in the raw page text.
	Offset int

	// Heading: level (number of '='), trimmed title text and the
	// title's inline tokens (a title may carry a template marker).
	Level  int
	Title  string
	Inline []Token

	// Template: name, positional args in order, keyed args.
	Name  string
	Args  []string
	Named map[string]string

	// ListItem: the marker run ("#", "##", "#:", "*", ...). Depth is
	// len(Marker). Content tokens are in Inline.
	Marker string
	Depth  int

	// Link
	Target  string
	Display string
}

// Numbered reports whether a list item belongs to a numbered list.
func (t Token) Numbered() bool {
	return t.Kind == ListItem && len(t.Marker) > 0 && t.Marker[0] == '#'
}

// Arg returns the i-th positional template argument, or "" when absent.
func (t Token) Arg(i int) string {
	if i < 0 || i >= len(t.Args) {
		return ""
	}
	return t.Args[i]
}
