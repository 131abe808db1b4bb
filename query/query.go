// Package query is the interactive lookup prompt over a page store.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/wikidict/entry"
	"github.com/revelaction/wikidict/render"
	"github.com/revelaction/wikidict/storage"
)

const (
	// translationPrefix is the character in the prompt that starts a
	// reverse translation lookup: /en wineskin
	translationPrefix = "/"

	// batch size per FindTranslations call
	translationLimit = 50
)

type Handler struct {
	Repo     storage.PageReader
	Renderer *render.Renderer
}

func NewHandler(repo storage.PageReader, r *render.Renderer) *Handler {
	return &Handler{
		Repo:     repo,
		Renderer: r,
	}
}

// Run starts the prompt loop. Input is either a headword with optional
// language and part-of-speech filters, or /lang term for a reverse
// translation lookup. quit leaves the loop.
func (h *Handler) Run() error {

	fmt.Println("🔑 <headword> [lang] | /<lang> <term>, 🔧 quit")

	headwords, err := h.Repo.List("")
	if err != nil {
		return err
	}

	history := []string{}

	for {

		in := prompt.Input("      📖 ", h.completer(headwords),
			prompt.OptionTitle("wikidict query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.HasColor = !h.Renderer.HasColor
					fmt.Println("Color set to " + fmt.Sprintf("%t", h.Renderer.HasColor))
				}}),
		)

		if in == "quit" {
			return nil
		}

		history = append(history, in)

		if strings.HasPrefix(in, translationPrefix) {
			if err := h.translations(in); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			continue
		}

		if err := h.lookup(in); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func (h *Handler) lookup(in string) error {
	tokens := strings.Fields(in)
	if len(tokens) == 0 {
		return errors.New("no headword given")
	}

	p, err := h.Repo.Read(tokens[0])
	if err != nil {
		return err
	}

	if len(tokens) == 1 {
		h.Renderer.Page(p)
		return nil
	}

	lang := tokens[1]
	found := false
	for _, sec := range p.Languages {
		if sec.Code != lang {
			continue
		}
		found = true
		h.Renderer.Section(&sec)
	}

	if !found {
		return fmt.Errorf("no %s section for %s", lang, p.Headword)
	}

	return nil
}

// translations answers /lang term by walking the reverse index batch
// by batch until the cursor stops moving.
func (h *Handler) translations(in string) error {
	tokens := strings.Fields(strings.TrimPrefix(in, translationPrefix))

	var lang, term string
	switch len(tokens) {
	case 1:
		term = tokens[0]
	case 2:
		lang, term = tokens[0], tokens[1]
	default:
		return errors.New("usage: /<lang> <term>")
	}

	cursor := storage.Cursor(0)
	found := 0

	for {
		newCursor, err := h.Repo.FindTranslations(lang, term, cursor, translationLimit, func(p *entry.Page) error {
			found++
			h.Renderer.Page(p)
			return nil
		})
		if err != nil {
			return err
		}

		if newCursor == cursor {
			break
		}
		cursor = newCursor
	}

	if found == 0 {
		fmt.Printf("no page translates to %q\n", term)
	}

	return nil
}

func (h *Handler) completer(headwords []string) func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {

		s := []prompt.Suggest{}
		befCursor := in.TextBeforeCursor()

		if "" == befCursor {
			return s
		}

		if strings.HasPrefix(befCursor, translationPrefix) {
			return s
		}

		tokens := strings.Split(befCursor, " ")

		if len(tokens) == 1 {
			for _, headword := range headwords {
				if strings.HasPrefix(headword, tokens[0]) {
					s = append(s, prompt.Suggest{Text: headword, Description: "📖 " + headword})
				}
			}
			return s
		}

		// second token: the language codes of the chosen headword
		if len(tokens) == 2 {
			p, err := h.Repo.Read(tokens[0])
			if err != nil {
				return s
			}
			for _, sec := range p.Languages {
				if strings.HasPrefix(sec.Code, tokens[1]) {
					s = append(s, prompt.Suggest{Text: sec.Code, Description: "🏷  " + sec.Code})
				}
			}
		}

		return s
	}
}
