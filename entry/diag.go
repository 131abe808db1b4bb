package entry

import "fmt"

// Diagnostic codes. None of them aborts a batch: MalformedTemplate and
// OrphanEvent are recovered in place, InvalidEntry fails one page only.
const (
	MalformedTemplate = "malformed-template"
	OrphanEvent       = "orphan-event"
	InvalidEntry      = "invalid-entry"
)

// Diag is one recoverable finding recorded while parsing a page.
// Offset is a byte offset into the raw page text where known, -1
// otherwise.
type Diag struct {
	Code   string `json:"code"`
	Offset int    `json:"offset"`
	Detail string `json:"detail"`
}

func (d Diag) String() string {
	if d.Offset < 0 {
		return fmt.Sprintf("%s: %s", d.Code, d.Detail)
	}
	return fmt.Sprintf("%s at %d: %s", d.Code, d.Offset, d.Detail)
}
