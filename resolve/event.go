package resolve

// Kind discriminates the typed events produced from the token stream.
type Kind int

const (
	// BeginLanguage starts the section for one language code.
	BeginLanguage Kind = iota

	// BeginPartOfSpeech starts a part-of-speech block.
	BeginPartOfSpeech

	// BeginEtymology starts the etymology prose of the current language.
	BeginEtymology

	// Pronunciation carries one (notation system, value) pair.
	Pronunciation

	// Audio carries an audio file reference.
	Audio

	// BeginTranslationGroup opens a per-sense translation table.
	BeginTranslationGroup

	// EndTranslationGroup closes it.
	EndTranslationGroup

	// TranslationEntry is one target-language term.
	TranslationEntry

	// BeginCrossRefSection starts a synonym/hypernym/... section.
	BeginCrossRefSection

	// CrossRefEntry is one linked target headword in a cross-reference
	// section.
	CrossRefEntry

	// SenseItem is a numbered gloss line directly under a
	// part-of-speech block.
	SenseItem

	// SenseNote is a sub-item of the current gloss (example usage,
	// clarification). It never opens a new sense.
	SenseNote

	// TextRun is plain prose, only meaningful inside an etymology.
	TextRun

	// Opaque is an unrecognized template, passed through and never
	// fatal.
	Opaque
)

func (k Kind) String() string {
	switch k {
	case BeginLanguage:
		return "begin-language"
	case BeginPartOfSpeech:
		return "begin-part-of-speech"
	case BeginEtymology:
		return "begin-etymology"
	case Pronunciation:
		return "pronunciation"
	case Audio:
		return "audio"
	case BeginTranslationGroup:
		return "begin-translation-group"
	case EndTranslationGroup:
		return "end-translation-group"
	case TranslationEntry:
		return "translation-entry"
	case BeginCrossRefSection:
		return "begin-crossref-section"
	case CrossRefEntry:
		return "crossref-entry"
	case SenseItem:
		return "sense-item"
	case SenseNote:
		return "sense-note"
	case TextRun:
		return "text"
	case Opaque:
		return "opaque"
	}
	return "unknown"
}

// Event is one typed event. Only the fields of its Kind are set.
type Event struct {
	Kind Kind

	// Byte offset in the raw page text, for diagnostics.
	Offset int

	// BeginLanguage
	Code string

	// BeginPartOfSpeech
	POS   string
	Attrs map[string]string

	// Pronunciation / Audio (Value holds the file for Audio)
	System string
	Value  string

	// BeginTranslationGroup label, SenseItem gloss
	Gloss string

	// SenseItem domain/register tag
	Tag string

	// TranslationEntry
	Lang string
	Term string

	// BeginCrossRefSection relation kind
	Relation string

	// CrossRefEntry target headword
	Target string

	// TextRun / SenseNote
	Text string

	// Opaque template
	Name string
	Args []string
}
