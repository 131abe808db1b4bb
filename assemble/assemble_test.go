package assemble

import (
	"errors"
	"testing"

	"github.com/revelaction/wikidict/entry"
	"github.com/revelaction/wikidict/markup"
	"github.com/revelaction/wikidict/resolve"
)

func assemble(t *testing.T, headword, src string) (*entry.Page, []entry.Diag) {
	t.Helper()

	tokens, tdiags := markup.Tokenize(src)
	if len(tdiags) != 0 {
		t.Fatalf("unexpected tokenizer diags: %v", tdiags)
	}

	p, diags, err := Page(headword, resolve.Resolve(tokens))
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}

	return p, diags
}

const botPage = `{{-ca-}}
{{-etimologia-}} Del llatí ''buttis''.
{{pron|ca|ˈbɔt}}
{{àudio|bot.ogg}}
{{ca-nom|m}}
# {{marca|ca|beguda}} recipient de cuir per a contenir vi
# salt cap amunt
{{-sin-}}
* [[odre]]
* [[bóta]]
{{trad-ini|recipient}}
* {{trad|en|wineskin}}
* {{trad|es|bota|f}}
{{trad-fin}}
`

func TestAssembleFullPage(t *testing.T) {
	p, diags := assemble(t, "bot", botPage)

	if len(diags) != 0 {
		t.Fatalf("unexpected diags: %v", diags)
	}

	if len(p.Languages) != 1 {
		t.Fatalf("expected 1 language section, got %d", len(p.Languages))
	}

	sec := p.Languages[0]
	if sec.Code != "ca" {
		t.Errorf("expected code 'ca', got %q", sec.Code)
	}
	if sec.Etymology != "Del llatí buttis." {
		t.Errorf("unexpected etymology %q", sec.Etymology)
	}
	if len(sec.Pronunciation.Entries) != 1 || sec.Pronunciation.Entries[0].Value != "ˈbɔt" {
		t.Errorf("unexpected pronunciation: %+v", sec.Pronunciation)
	}
	if sec.Pronunciation.Audio != "bot.ogg" {
		t.Errorf("unexpected audio %q", sec.Pronunciation.Audio)
	}

	if len(sec.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(sec.Blocks))
	}

	blk := sec.Blocks[0]
	if blk.Kind != entry.Noun || blk.Attrs["gender"] != "m" {
		t.Errorf("unexpected block: %+v", blk)
	}
	if len(blk.Senses) != 2 {
		t.Fatalf("expected 2 senses, got %d", len(blk.Senses))
	}

	first := blk.Senses[0]
	if first.Tag != "beguda" {
		t.Errorf("expected tag 'beguda', got %q", first.Tag)
	}
	if first.Gloss != "recipient de cuir per a contenir vi" {
		t.Errorf("unexpected gloss %q", first.Gloss)
	}

	// cross references and the translation table follow the second
	// sense, so both attach to it
	second := blk.Senses[1]
	if len(second.CrossRefs) != 2 {
		t.Fatalf("expected 2 cross references, got %+v", second.CrossRefs)
	}
	if second.CrossRefs[0].Kind != entry.Synonym || second.CrossRefs[0].Target != "odre" {
		t.Errorf("unexpected first cross reference: %+v", second.CrossRefs[0])
	}

	if len(second.Translations) != 2 {
		t.Fatalf("expected 2 translations, got %+v", second.Translations)
	}
	if second.Translations[0].Lang != "en" || second.Translations[0].Term != "wineskin" {
		t.Errorf("unexpected translation: %+v", second.Translations[0])
	}
	if second.Translations[1].Attrs["gender"] != "f" {
		t.Errorf("expected gender f, got %+v", second.Translations[1])
	}
}

func TestAssembleTranslationGroupUnderFirstSense(t *testing.T) {
	src := `{{-ca-}}
{{ca-nom|m}}
# recipient de cuir per a contenir vi
{{trad-ini|recipient}}
{{en}}: {{trad|en|wineskin}}
{{trad-fin}}
# salt cap amunt
`
	p, diags := assemble(t, "bot", src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diags: %v", diags)
	}

	senses := p.Languages[0].Blocks[0].Senses
	if len(senses) != 2 {
		t.Fatalf("expected 2 senses, got %d", len(senses))
	}

	if len(senses[0].Translations) != 1 {
		t.Fatalf("expected 1 translation on the first sense, got %+v", senses[0])
	}
	tr := senses[0].Translations[0]
	if tr.Lang != "en" || tr.Term != "wineskin" {
		t.Errorf("unexpected translation: %+v", tr)
	}
	if len(senses[1].Translations) != 0 {
		t.Errorf("second sense must carry no translations: %+v", senses[1])
	}
}

func TestAssembleSiblingBlocksStaySeparate(t *testing.T) {
	src := `{{-ca-}}
{{ca-nom|m}}
# primera accepció
{{ca-nom|f}}
# segona accepció
`
	p, _ := assemble(t, "mar", src)

	blocks := p.Languages[0].Blocks
	if len(blocks) != 2 {
		t.Fatalf("sibling blocks of the same kind must not merge, got %d", len(blocks))
	}
	if blocks[0].Attrs["gender"] != "m" || blocks[1].Attrs["gender"] != "f" {
		t.Errorf("unexpected block attrs: %+v", blocks)
	}
}

func TestAssembleMultipleLanguages(t *testing.T) {
	src := `{{-ca-}}
{{ca-nom|m}}
# accepció catalana
{{-es-}}
{{es-nom|m}}
# acepción castellana
`
	p, _ := assemble(t, "bot", src)

	if len(p.Languages) != 2 {
		t.Fatalf("expected 2 language sections, got %d", len(p.Languages))
	}
	if p.Languages[0].Code != "ca" || p.Languages[1].Code != "es" {
		t.Errorf("unexpected section codes: %+v", p.Languages)
	}
}

func TestAssembleOrphanTranslation(t *testing.T) {
	// translation entry with no open group and no sense at all
	src := "{{-ca-}}\n{{ca-nom|m}}\n* {{trad|en|stray}}\n# accepció\n"

	p, diags := assemble(t, "bot", src)

	found := false
	for _, d := range diags {
		if d.Code == entry.OrphanEvent {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an orphan-event diagnostic, got %v", diags)
	}

	// the page itself survives
	if len(p.Languages[0].Blocks[0].Senses) != 1 {
		t.Errorf("page must survive the orphan event: %+v", p)
	}
}

func TestAssembleOrphanSense(t *testing.T) {
	// a sense line before any part-of-speech block
	src := "{{-ca-}}\n# accepció perduda\n{{ca-nom|m}}\n# accepció\n"

	p, diags := assemble(t, "bot", src)

	if len(diags) == 0 {
		t.Fatal("expected an orphan-event diagnostic")
	}
	if n := len(p.Languages[0].Blocks[0].Senses); n != 1 {
		t.Errorf("expected 1 surviving sense, got %d", n)
	}
}

func TestAssembleTranslationGroupAfterSenseList(t *testing.T) {
	// group after the sense list attaches to the last sense
	src := `{{-ca-}}
{{ca-nom|m}}
# primera
# segona
== Traduccions ==
{{trad-ini|segona}}
* {{trad|en|second}}
{{trad-fin}}
`
	p, diags := assemble(t, "x", src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diags: %v", diags)
	}

	senses := p.Languages[0].Blocks[0].Senses
	if len(senses[0].Translations) != 0 {
		t.Errorf("first sense must carry no translations: %+v", senses[0])
	}
	if len(senses[1].Translations) != 1 || senses[1].Translations[0].Term != "second" {
		t.Errorf("unexpected translations on last sense: %+v", senses[1])
	}
}

func TestAssembleEmptyPageFails(t *testing.T) {
	_, diags, err := Page("buit", nil)
	if err == nil {
		t.Fatal("expected validation error for an empty page")
	}

	var invalid *entry.InvalidEntryError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidEntryError, got %T", err)
	}

	found := false
	for _, d := range diags {
		if d.Code == entry.InvalidEntry {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an invalid-entry diagnostic, got %v", diags)
	}
}

func TestAssembleEtymologyOnlySection(t *testing.T) {
	// a stub with etymology but no senses is still a valid entry
	src := "{{-ca-}}\n{{-etimologia-}} D'origen incert.\n"

	p, diags := assemble(t, "xot", src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diags: %v", diags)
	}
	if p.Languages[0].Etymology != "D'origen incert." {
		t.Errorf("unexpected etymology %q", p.Languages[0].Etymology)
	}
}
