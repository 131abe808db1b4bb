package entry

// Equal determines if two pages are structurally the same. Used by the
// ingest pipeline to check idempotence and by the interchange decoder
// round-trip.
func Equal(a, b Page) bool {
	if a.Headword != b.Headword {
		return false
	}

	if len(a.Languages) != len(b.Languages) {
		return false
	}

	for i, sec := range a.Languages {
		if !EqualSection(sec, b.Languages[i]) {
			return false
		}
	}

	return true
}

// EqualSection determines if two language sections are the same.
// Equality requires slice order: sections, blocks and senses keep
// document order.
func EqualSection(a, b LanguageSection) bool {
	if a.Code != b.Code {
		return false
	}

	if a.Etymology != b.Etymology {
		return false
	}

	if a.Pronunciation.Audio != b.Pronunciation.Audio {
		return false
	}

	if len(a.Pronunciation.Entries) != len(b.Pronunciation.Entries) {
		return false
	}

	for i, pr := range a.Pronunciation.Entries {
		if pr != b.Pronunciation.Entries[i] {
			return false
		}
	}

	if len(a.Blocks) != len(b.Blocks) {
		return false
	}

	for i, blk := range a.Blocks {
		if !EqualBlock(blk, b.Blocks[i]) {
			return false
		}
	}

	return true
}

// EqualBlock determines if two part-of-speech blocks are the same.
func EqualBlock(a, b PartOfSpeechBlock) bool {
	if a.Kind != b.Kind {
		return false
	}

	if !equalAttrs(a.Attrs, b.Attrs) {
		return false
	}

	if len(a.Senses) != len(b.Senses) {
		return false
	}

	for i, s := range a.Senses {
		if !EqualSense(s, b.Senses[i]) {
			return false
		}
	}

	return true
}

// EqualSense determines if two senses are the same.
func EqualSense(a, b Sense) bool {
	if a.Gloss != b.Gloss {
		return false
	}

	if a.Tag != b.Tag {
		return false
	}

	if len(a.Notes) != len(b.Notes) {
		return false
	}

	for i, n := range a.Notes {
		if n != b.Notes[i] {
			return false
		}
	}

	if len(a.CrossRefs) != len(b.CrossRefs) {
		return false
	}

	for i, ref := range a.CrossRefs {
		if ref != b.CrossRefs[i] {
			return false
		}
	}

	if len(a.Translations) != len(b.Translations) {
		return false
	}

	for i, tr := range a.Translations {
		if tr.Lang != b.Translations[i].Lang {
			return false
		}

		if tr.Term != b.Translations[i].Term {
			return false
		}

		if !equalAttrs(tr.Attrs, b.Translations[i].Attrs) {
			return false
		}
	}

	return true
}

func equalAttrs(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}

	for k, v := range a {
		if b[k] != v {
			return false
		}
	}

	return true
}
