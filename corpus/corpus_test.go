package corpus

import (
	"context"
	"testing"

	"github.com/revelaction/wikidict/entry"
)

var rawBot = RawPage{
	Headword: "bot",
	Text: `{{-ca-}}
{{ca-nom|m}}
# recipient de cuir per a contenir vi
# salt cap amunt
{{-sin-}}
* [[odre]]
{{trad-ini|recipient}}
* {{trad|en|wineskin}}
{{trad-fin}}
{{-es-}}
{{es-nom|m}}
# barco pequeño
`,
}

var rawMar = RawPage{
	Headword: "mar",
	Text: `{{-ca-}}
{{ca-nom|mf}}
# massa d'aigua salada
`,
}

// no language marker at all: the page fails validation
var rawBroken = RawPage{
	Headword: "trencat",
	Text:     "només prosa sense seccions\n",
}

func build(t *testing.T, raws ...RawPage) (*Corpus, *Report) {
	t.Helper()

	c, report, err := Build(context.Background(), raws, 4)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	return c, report
}

func TestBuild(t *testing.T) {
	c, report := build(t, rawBot, rawMar)

	if len(report.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", report.Failures)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 pages, got %d", c.Len())
	}

	// insertion order follows input order regardless of which worker
	// finished first
	headwords := c.Headwords()
	if headwords[0] != "bot" || headwords[1] != "mar" {
		t.Errorf("unexpected order: %v", headwords)
	}
}

func TestBuildFailureIsolation(t *testing.T) {
	c, report := build(t, rawBot, rawBroken, rawMar)

	if c.Len() != 2 {
		t.Fatalf("expected 2 surviving pages, got %d", c.Len())
	}

	if len(report.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %v", report.Failures)
	}
	if report.Failures[0].Headword != "trencat" {
		t.Errorf("unexpected failed headword %q", report.Failures[0].Headword)
	}
}

func TestBuildIdempotent(t *testing.T) {
	first, _ := build(t, rawBot, rawMar)
	second, _ := build(t, rawBot, rawMar)

	for _, headword := range first.Headwords() {
		a, _ := first.Page(headword)
		b, ok := second.Page(headword)
		if !ok {
			t.Fatalf("second build misses %q", headword)
		}
		if !entry.Equal(*a, *b) {
			t.Errorf("parses of %q differ", headword)
		}
	}
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Build(ctx, []RawPage{rawBot}, 1)
	if err == nil {
		t.Fatal("expected error on canceled context")
	}
}

func TestLookup(t *testing.T) {
	c, _ := build(t, rawBot)

	all := c.Lookup("bot", "")
	if len(all) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(all))
	}

	es := c.Lookup("bot", "es")
	if len(es) != 1 || es[0].Code != "es" {
		t.Fatalf("unexpected es lookup: %+v", es)
	}

	if got := c.Lookup("inexistent", ""); got != nil {
		t.Errorf("lookup of missing headword must be nil, got %v", got)
	}
}

func TestSensesOf(t *testing.T) {
	c, _ := build(t, rawBot)

	senses := c.SensesOf("bot", "ca", entry.Noun)
	if len(senses) != 2 {
		t.Fatalf("expected 2 senses, got %d", len(senses))
	}
	if senses[0].Gloss != "recipient de cuir per a contenir vi" {
		t.Errorf("unexpected first gloss %q", senses[0].Gloss)
	}

	if got := c.SensesOf("bot", "ca", entry.Verb); got != nil {
		t.Errorf("expected no verb senses, got %v", got)
	}
}

func TestTranslationsOf(t *testing.T) {
	c, _ := build(t, rawBot)

	// the translation table follows sense 2, so it attaches there
	trs := c.TranslationsOf("bot", "ca", 2, "")
	if len(trs) != 1 || trs[0].Lang != "en" || trs[0].Term != "wineskin" {
		t.Fatalf("unexpected translations: %+v", trs)
	}

	if got := c.TranslationsOf("bot", "ca", 2, "de"); got != nil {
		t.Errorf("expected no de translations, got %v", got)
	}

	if got := c.TranslationsOf("bot", "ca", 9, ""); got != nil {
		t.Errorf("expected nil for out of range sense, got %v", got)
	}
}

func TestResolveCrossReference(t *testing.T) {
	c, _ := build(t, rawBot, rawMar)

	p, _ := c.Page("bot")
	ref := p.Languages[0].Blocks[0].Senses[1].CrossRefs[0]
	if ref.Target != "odre" {
		t.Fatalf("unexpected cross reference %+v", ref)
	}

	// odre is not part of the batch: resolution is best effort
	if _, ok := c.ResolveCrossReference(ref); ok {
		t.Error("missing target must not resolve")
	}

	if _, ok := c.ResolveCrossReference(entry.CrossReference{Kind: entry.Related, Target: "mar"}); !ok {
		t.Error("target in the batch must resolve")
	}
}

func TestNewSkipsDuplicates(t *testing.T) {
	a := &entry.Page{Headword: "dup"}
	b := &entry.Page{Headword: "dup"}

	c := New([]*entry.Page{a, nil, b})
	if c.Len() != 1 {
		t.Fatalf("expected 1 page, got %d", c.Len())
	}

	got, _ := c.Page("dup")
	if got != a {
		t.Error("first page must win on duplicate headwords")
	}
}
