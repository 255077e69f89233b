package contentnorm

import (
	"testing"

	"golang.org/x/text/language"
)

func spanish() *Translator {
	return New(StaticLocale(language.MustParse("es-MX")))
}

func TestStepName(t *testing.T) {
	tr := spanish()
	tests := []struct {
		in   string
		want string
	}{
		{"Cleanser", "Limpiador"},
		{"  gentle cleanser ", "Limpiador suave"},
		{"Step 1: Vitamin C Serum", "Step 1: Sérum de vitamina C"},
		{"Retinol", "Retinol"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := tr.StepName(tt.in); got != tt.want {
			t.Fatalf("StepName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInstructions(t *testing.T) {
	tr := spanish()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "longest phrase first",
			in:   "Apply a pea-sized amount to clean, dry skin twice a day.",
			want: "Aplica una cantidad del tamaño de un guisante sobre la piel limpia y seca dos veces al día.",
		},
		{
			name: "spf clean-up",
			in:   "Use SPF 50 and reapply every 2 hours",
			want: "Use FPS 50 y vuelve a aplicar cada 2 horas",
		},
		{
			name: "minutes clean-up",
			in:   "Leave on for 10 minutes, then rinse.",
			want: "Deja actuar durante 10 minutos, luego enjuaga.",
		},
		{
			name: "times a day and whitespace",
			in:   "Apply  3 times a day",
			want: "Aplica 3 veces al día",
		},
		{
			name: "unmapped text passes through",
			in:   "Use retinol sparingly",
			want: "Use retinol sparingly",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.Instructions(tt.in); got != tt.want {
				t.Fatalf("Instructions(%q)\n got: %q\nwant: %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestProductName(t *testing.T) {
	tr := spanish()
	got := tr.ProductName("CeraVe Foaming Cleanser for Oily Skin")
	if want := "CeraVe Limpiador espumoso para piel grasa"; got != want {
		t.Fatalf("ProductName = %q, want %q", got, want)
	}
}

func TestTranslateDispatchOrder(t *testing.T) {
	tr := spanish()
	tests := []struct {
		in   string
		want string
	}{
		{"Gentle Cleanser", "Limpiador suave"},
		{"Apply twice a day", "Aplica dos veces al día"},
		// The step table matches first, so product-only phrases stay English.
		{"Broad Spectrum SPF 30 Sunscreen", "Broad Spectrum SPF 30 Protector solar"},
		{"Retinol", "Retinol"},
	}
	for _, tt := range tests {
		if got := tr.Translate(tt.in); got != tt.want {
			t.Fatalf("Translate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGuardIsIdentityOutsideTheLanguagePair(t *testing.T) {
	inputs := []string{
		"Apply a pea-sized amount to clean, dry skin twice a day.",
		"Leave on for 10 minutes,   then rinse .",
		"Cleanser",
		"  ",
		"SPF 30",
	}
	locales := []language.Tag{
		language.English,
		language.MustParse("en-GB"),
		language.French,
		language.Und,
	}
	for _, loc := range locales {
		tr := New(StaticLocale(loc))
		if tr.Active() {
			t.Fatalf("expected translator to be inactive for %s", loc)
		}
		for _, in := range inputs {
			if got := tr.Instructions(in); got != in {
				t.Fatalf("locale %s: Instructions(%q) = %q, want unchanged", loc, in, got)
			}
			if got := tr.Translate(in); got != in {
				t.Fatalf("locale %s: Translate(%q) = %q, want unchanged", loc, in, got)
			}
		}
	}
}

func TestGuardRequiresTargetDifferentFromSource(t *testing.T) {
	tr := New(StaticLocale(language.Spanish), WithLanguages(language.Spanish, language.Spanish))
	if tr.Active() {
		t.Fatalf("expected inactive when source and target share a language")
	}
	var nilTr *Translator
	if nilTr.Translate("Cleanser") != "Cleanser" {
		t.Fatalf("expected nil translator to pass text through")
	}
}

func TestNewTableOrdering(t *testing.T) {
	table := NewTable(
		Rule{Match: "sun", Replace: "sol"},
		Rule{Match: "sunscreen", Replace: "protector solar"},
		Rule{Match: "sun", Replace: "ignored"},
		Rule{Match: "", Replace: "ignored"},
	)
	rules := table.Rules()
	if len(rules) != 2 || rules[0].Match != "sunscreen" {
		t.Fatalf("expected longest rule first without duplicates, got %+v", rules)
	}
	if got := table.ReplaceAll("sunscreen in the sun"); got != "protector solar in the sol" {
		t.Fatalf("ReplaceAll = %q", got)
	}
	if v, ok := table.Lookup(" SUN "); !ok || v != "sol" {
		t.Fatalf("Lookup = %q %v", v, ok)
	}
}

func TestCustomTables(t *testing.T) {
	tr := New(StaticLocale(language.German),
		WithLanguages(language.English, language.German),
		WithTables(NewTable(Rule{Match: "Toner", Replace: "Gesichtswasser"}), NewTable(), NewTable(), nil),
	)
	if got := tr.Translate("Toner"); got != "Gesichtswasser" {
		t.Fatalf("Translate = %q", got)
	}
}
