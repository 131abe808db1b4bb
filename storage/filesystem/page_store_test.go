package filesystem

import (
	"testing"

	"github.com/revelaction/wikidict/entry"
)

func testPage(headword, lang, term string) *entry.Page {
	return &entry.Page{
		Headword: headword,
		Languages: []entry.LanguageSection{
			{
				Code: "ca",
				Blocks: []entry.PartOfSpeechBlock{
					{
						Kind: entry.Noun,
						Senses: []entry.Sense{
							{
								Gloss:        "una accepció",
								Translations: []entry.Translation{{Lang: lang, Term: term}},
							},
						},
					},
				},
			},
		},
	}
}

func newStore(t *testing.T) *PageStore {
	t.Helper()

	s, err := NewPageStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestWriteRead(t *testing.T) {
	s := newStore(t)

	want := testPage("bot", "en", "wineskin")
	if err := s.Write(want); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := s.Read("bot")
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if !entry.Equal(*want, *got) {
		t.Fatalf("read back a different page: %+v", got)
	}
}

func TestReadMissing(t *testing.T) {
	s := newStore(t)

	if _, err := s.Read("inexistent"); err == nil {
		t.Fatal("expected error for missing page")
	}
}

func TestWriteReplaces(t *testing.T) {
	s := newStore(t)

	if err := s.Write(testPage("bot", "en", "wineskin")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Write(testPage("bot", "en", "leap")); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	got, err := s.Read("bot")
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	tr := got.Languages[0].Blocks[0].Senses[0].Translations[0]
	if tr.Term != "leap" {
		t.Errorf("expected replaced page, got term %q", tr.Term)
	}

	headwords, err := s.List("")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(headwords) != 1 {
		t.Errorf("expected 1 headword after replace, got %v", headwords)
	}
}

func TestList(t *testing.T) {
	s := newStore(t)

	for _, h := range []string{"mar", "bot", "braç"} {
		if err := s.Write(testPage(h, "en", "x")); err != nil {
			t.Fatalf("write %s: %v", h, err)
		}
	}

	headwords, err := s.List("")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(headwords) != 3 {
		t.Fatalf("expected 3 headwords, got %v", headwords)
	}
	// sorted
	if headwords[0] != "bot" {
		t.Errorf("expected sorted list, got %v", headwords)
	}

	filtered, err := s.List("ar")
	if err != nil {
		t.Fatalf("list pattern: %v", err)
	}
	if len(filtered) != 1 || filtered[0] != "mar" {
		t.Errorf("unexpected filtered list: %v", filtered)
	}
}

func TestFindTranslations(t *testing.T) {
	s := newStore(t)

	if err := s.Write(testPage("bot", "en", "wineskin")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Write(testPage("mar", "en", "sea")); err != nil {
		t.Fatalf("write: %v", err)
	}

	var found []string
	cursor, err := s.FindTranslations("en", "sea", 0, 10, func(p *entry.Page) error {
		found = append(found, p.Headword)
		return nil
	})
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	if len(found) != 1 || found[0] != "mar" {
		t.Fatalf("unexpected results: %v", found)
	}

	// the filesystem store is a single cursor step
	next, err := s.FindTranslations("en", "sea", cursor, 10, func(p *entry.Page) error {
		t.Fatal("second step must return nothing")
		return nil
	})
	if err != nil {
		t.Fatalf("find after cursor: %v", err)
	}
	if next != cursor {
		t.Errorf("cursor must not move past EOF: %d -> %d", cursor, next)
	}

	// language mismatch
	n := 0
	if _, err := s.FindTranslations("de", "sea", 0, 10, func(p *entry.Page) error {
		n++
		return nil
	}); err != nil {
		t.Fatalf("find: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no matches for wrong language, got %d", n)
	}

	// empty language matches any
	n = 0
	if _, err := s.FindTranslations("", "wineskin", 0, 10, func(p *entry.Page) error {
		n++
		return nil
	}); err != nil {
		t.Fatalf("find: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 match for any language, got %d", n)
	}
}
