package fluxcrystal

import "testing"

func TestRichEmbed_ImmutableBuilder(t *testing.T) {
	base := NewRichEmbed().WithTitle("base title")
	derivedA := base.WithDescription("from A")
	derivedB := base.WithDescription("from B")

	if base.title != "base title" || base.description != "" {
		t.Fatalf("base was mutated: %+v", base)
	}
	if derivedA.description != "from A" {
		t.Fatalf("derivedA description wrong: %q", derivedA.description)
	}
	if derivedB.description != "from B" {
		t.Fatalf("derivedB description wrong: %q", derivedB.description)
	}
	if derivedA.title != "base title" || derivedB.title != "base title" {
		t.Fatalf("derived embeds lost the base title")
	}
}

func TestRichEmbed_FieldsDontAlias(t *testing.T) {
	base := NewRichEmbed().WithField("k1", "v1", false)
	derived := base.WithField("k2", "v2", true)

	if len(base.fields) != 1 {
		t.Fatalf("base.fields mutated, len=%d", len(base.fields))
	}
	if len(derived.fields) != 2 {
		t.Fatalf("expected 2 fields on derived, got %d", len(derived.fields))
	}
	if derived.fields[0].Name != "k1" || derived.fields[1].Name != "k2" {
		t.Fatalf("unexpected field order: %+v", derived.fields)
	}
}

func TestRichEmbed_ToWire(t *testing.T) {
	e := NewRichEmbed().
		WithTitle("hello").
		WithColor(0x00ff00).
		WithFooter("footer text", "")

	w := e.toWire()
	if w.Type != "rich" {
		t.Fatalf("expected type rich, got %q", w.Type)
	}
	if w.Title != "hello" {
		t.Fatalf("unexpected title: %q", w.Title)
	}
	if w.Color == nil || *w.Color != 0x00ff00 {
		t.Fatalf("unexpected color: %v", w.Color)
	}
	if w.Footer == nil || w.Footer.Text != "footer text" {
		t.Fatalf("unexpected footer: %+v", w.Footer)
	}
}

func TestRichEmbed_NoColorOmitsField(t *testing.T) {
	w := NewRichEmbed().WithTitle("x").toWire()
	if w.Color != nil {
		t.Fatalf("expected nil color when WithColor never called, got %v", *w.Color)
	}
}
