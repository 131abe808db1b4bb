package entry

// Page is one parsed dictionary page, identified by its headword.
// The order of Languages is document order.
type Page struct {
	Headword string `json:"headword"`

	Languages []LanguageSection `json:"languages"`
}

// LanguageSection holds everything a page says about the headword in
// one language.
type LanguageSection struct {
	// ISO-style language code, e.g. "ca", "en", "fr"
	Code string `json:"code"`

	Etymology string `json:"etymology,omitempty"`

	Pronunciation PronunciationSet `json:"pronunciation"`

	Blocks []PartOfSpeechBlock `json:"posBlocks,omitempty"`
}

// PronunciationSet groups notation entries with an optional audio file
// reference. The audio reference is not validated.
type PronunciationSet struct {
	Entries []Pronunciation `json:"entries,omitempty"`
	Audio   string          `json:"audio,omitempty"`
}

// Empty reports whether the set carries no information at all.
func (p PronunciationSet) Empty() bool {
	return len(p.Entries) == 0 && p.Audio == ""
}

// Pronunciation is one (notation system, value) pair, e.g. (IPA, "/bɔt/").
type Pronunciation struct {
	System string `json:"system"`
	Value  string `json:"value"`
}

// SystemIPA is the only notation system the recognized templates emit.
const SystemIPA = "IPA"

// Part of speech kinds.
const (
	Noun      = "noun"
	Verb      = "verb"
	Adjective = "adjective"
	Adverb    = "adverb"
	Pronoun   = "pronoun"
	VerbForm  = "verb-form"
	NounForm  = "noun-form"
)

// PartOfSpeechBlock is one part-of-speech reading of the headword in a
// language. Sense numbering is positional, 1-based.
type PartOfSpeechBlock struct {
	Kind string `json:"kind"`

	// Grammatical attributes as an open map: gender, number, ...
	Attrs map[string]string `json:"attrs,omitempty"`

	Senses []Sense `json:"senses,omitempty"`
}

// Sense is one meaning of a part-of-speech block.
type Sense struct {
	Gloss string `json:"gloss"`

	// Domain or register tag, e.g. "informàtica", "col·loquial"
	Tag string `json:"tag,omitempty"`

	// Sub-items of the gloss line (examples, clarifications). They do
	// not count as senses.
	Notes []string `json:"notes,omitempty"`

	CrossRefs []CrossReference `json:"crossRefs,omitempty"`

	Translations []Translation `json:"translations,omitempty"`
}

// Cross-reference relation kinds.
const (
	Synonym  = "synonym"
	Antonym  = "antonym"
	Hypernym = "hypernym"
	Hyponym  = "hyponym"
	Derived  = "derived-term"
	Related  = "related-term"
	Compound = "compound"
)

// CrossReference points at another headword by value. The target is
// never resolved at parse time: the referenced page may not exist in
// the parsed corpus.
type CrossReference struct {
	Kind   string `json:"kind"`
	Target string `json:"target"`
}

// Translation is one target-language rendering of a sense.
type Translation struct {
	Lang string `json:"lang"`
	Term string `json:"term"`

	// Optional grammatical attributes (gender, number)
	Attrs map[string]string `json:"attrs,omitempty"`
}
