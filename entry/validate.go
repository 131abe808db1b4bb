package entry

import "fmt"

// InvalidEntryError reports a model invariant violation. It is scoped
// to a single page: the rest of a batch keeps processing.
type InvalidEntryError struct {
	Headword string
	Reason   string
}

func (e *InvalidEntryError) Error() string {
	if e.Headword == "" {
		return "invalid entry: " + e.Reason
	}
	return fmt.Sprintf("invalid entry %q: %s", e.Headword, e.Reason)
}

func invalid(headword, format string, args ...any) error {
	return &InvalidEntryError{Headword: headword, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the invariants of the whole page tree. A page that
// passes is safe to freeze and hand to the query API.
func Validate(p *Page) error {
	if p.Headword == "" {
		return invalid("", "empty headword")
	}

	if len(p.Languages) == 0 {
		return invalid(p.Headword, "no language sections")
	}

	for _, sec := range p.Languages {
		if err := validateSection(p.Headword, sec); err != nil {
			return err
		}
	}

	return nil
}

func validateSection(headword string, sec LanguageSection) error {
	if sec.Code == "" {
		return invalid(headword, "language section without code")
	}

	// An etymology- or pronunciation-only stub is fine, a section with
	// nothing at all is not.
	if len(sec.Blocks) == 0 && sec.Etymology == "" && sec.Pronunciation.Empty() {
		return invalid(headword, "empty language section %q", sec.Code)
	}

	for _, b := range sec.Blocks {
		if b.Kind == "" {
			return invalid(headword, "part-of-speech block without kind in %q", sec.Code)
		}

		for i, s := range b.Senses {
			if s.Gloss == "" && len(s.Notes) == 0 {
				return invalid(headword, "sense %d of %s/%s has no gloss", i+1, sec.Code, b.Kind)
			}

			for _, ref := range s.CrossRefs {
				if ref.Kind == "" || ref.Target == "" {
					return invalid(headword, "incomplete cross reference in %s/%s", sec.Code, b.Kind)
				}
			}

			for _, tr := range s.Translations {
				if tr.Lang == "" || tr.Term == "" {
					return invalid(headword, "incomplete translation in %s/%s", sec.Code, b.Kind)
				}
			}
		}
	}

	return nil
}
