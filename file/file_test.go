package file

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadPages(t *testing.T) {
	dir := t.TempDir()

	pages := map[string]string{
		"bot.wiki": "{{-ca-}}\n{{ca-nom|m}}\n# recipient\n",
		"mar.wiki": "{{-ca-}}\n{{ca-nom|mf}}\n# massa d'aigua\n",
	}
	for name, text := range pages {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	// ignored: wrong extension
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	raws, err := ReadPages(dir)
	if err != nil {
		t.Fatalf("read pages: %v", err)
	}

	if len(raws) != 2 {
		t.Fatalf("expected 2 raw pages, got %d", len(raws))
	}

	for _, raw := range raws {
		want, ok := pages[raw.Headword+pageExt]
		if !ok {
			t.Errorf("unexpected headword %q", raw.Headword)
			continue
		}
		if raw.Text != want {
			t.Errorf("text of %q not kept", raw.Headword)
		}
	}
}

func TestReadPageMissing(t *testing.T) {
	if _, err := ReadPage(filepath.Join(t.TempDir(), "inexistent.wiki")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
