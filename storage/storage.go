// Package storage defines the persistence interfaces for parsed pages.
// Backends: filesystem (one JSON per headword) and sqlite.
package storage

import (
	"github.com/revelaction/wikidict/entry"
)

// Cursor for paginated reverse-translation queries
type Cursor int64

// PageReader defines read operations for page storage
type PageReader interface {
	// List returns stored headwords sorted alphabetically.
	// If pattern is not empty, only headwords containing the string are returned.
	List(pattern string) ([]string, error)

	// Read returns a page by exact headword
	Read(headword string) (*entry.Page, error)

	// FindTranslations returns pages with a sense translated as term,
	// resuming after the given cursor. A non-empty lang narrows to one
	// target language. It calls onPage for each result.
	// Returns the new cursor and any error.
	FindTranslations(lang, term string, after Cursor, limit int, onPage func(*entry.Page) error) (Cursor, error)
}

// PageWriter defines write operations for page storage
type PageWriter interface {
	// Write persists a page, replacing any previous version of the
	// same headword
	Write(p *entry.Page) error
}

// PageRepository combines read and write operations
type PageRepository interface {
	PageReader
	PageWriter
}
