package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/revelaction/wikidict/entry"
)

// JSONRenderer writes pages as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes one page.
func (r *JSONRenderer) Render(p *entry.Page) error {
	enc := json.NewEncoder(r.W)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// RenderAll serializes pages as a JSON array.
func (r *JSONRenderer) RenderAll(pages []*entry.Page) error {
	enc := json.NewEncoder(r.W)
	enc.SetIndent("", "  ")
	return enc.Encode(pages)
}

// DecodePage reads one page back and checks the model invariants. A
// page that decodes but does not validate is rejected: the interchange
// format gives no weaker guarantees than the parse pipeline.
func DecodePage(src io.Reader) (*entry.Page, error) {
	var p entry.Page
	if err := json.NewDecoder(src).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}

	if err := entry.Validate(&p); err != nil {
		return nil, err
	}

	return &p, nil
}
