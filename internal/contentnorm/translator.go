// Package contentnorm rewrites backend-authored routine text into the display
// language. It is a phrase-table heuristic for one language pair, not a
// translation engine: unknown phrases pass through untouched.
package contentnorm

import (
	"strings"

	"golang.org/x/text/language"

	"skincare-client/internal/shared/metrics"
)

// LocaleSource reports the active display language.
type LocaleSource interface {
	Locale() language.Tag
}

// StaticLocale is a fixed LocaleSource.
type StaticLocale language.Tag

func (s StaticLocale) Locale() language.Tag { return language.Tag(s) }

// Translator applies the phrase tables when the active locale calls for it.
type Translator struct {
	Source language.Tag
	Target language.Tag
	Locale LocaleSource

	steps        *Table
	instructions *Table
	products     *Table
	cleanup      []Pattern
}

// Option configures a Translator.
type Option func(*Translator)

// WithLanguages overrides the authoring and display languages.
func WithLanguages(source, target language.Tag) Option {
	return func(t *Translator) {
		t.Source = source
		t.Target = target
	}
}

// WithTables replaces the built-in phrase tables and clean-up passes.
func WithTables(steps, instructions, products *Table, cleanup []Pattern) Option {
	return func(t *Translator) {
		t.steps = steps
		t.instructions = instructions
		t.products = products
		t.cleanup = cleanup
	}
}

// New returns an English to Spanish Translator driven by locale.
func New(locale LocaleSource, opts ...Option) *Translator {
	t := &Translator{
		Source:       language.English,
		Target:       language.Spanish,
		Locale:       locale,
		steps:        NewTable(stepNameRules...),
		instructions: NewTable(instructionRules...),
		products:     NewTable(productNameRules...),
		cleanup:      cleanupPatterns,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Active reports whether the current locale needs translation: its base
// language must be the target's and differ from the source's.
func (t *Translator) Active() bool {
	if t == nil || t.Locale == nil {
		return false
	}
	active, _ := t.Locale.Locale().Base()
	target, _ := t.Target.Base()
	source, _ := t.Source.Base()
	return active == target && active != source
}

// StepName translates a routine step title.
func (t *Translator) StepName(text string) string {
	if !t.Active() {
		return text
	}
	return t.phrase(t.steps, text, "step")
}

// ProductName translates a product name.
func (t *Translator) ProductName(text string) string {
	if !t.Active() {
		return text
	}
	return t.phrase(t.products, text, "product")
}

// Instructions translates free-form routine instructions: all phrases
// longest first, then the clean-up passes, then whitespace collapsing.
func (t *Translator) Instructions(text string) string {
	if !t.Active() || strings.TrimSpace(text) == "" {
		return text
	}
	if v, ok := t.instructions.Lookup(text); ok {
		metrics.IncTranslation("instructions")
		return v
	}
	out := t.instructions.ReplaceAll(text)
	for _, p := range t.cleanup {
		out = p.Expr.ReplaceAllString(out, p.Replace)
	}
	out = collapseSpaces(out)
	if out != text {
		metrics.IncTranslation("instructions")
	}
	return out
}

// Translate tries step names, then instructions, then product names and
// returns the first result that differs from text.
func (t *Translator) Translate(text string) string {
	if !t.Active() {
		return text
	}
	for _, fn := range []func(string) string{t.StepName, t.Instructions, t.ProductName} {
		if out := fn(text); out != text {
			return out
		}
	}
	return text
}

func (t *Translator) phrase(table *Table, text, kind string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	if v, ok := table.Lookup(text); ok {
		metrics.IncTranslation(kind)
		return v
	}
	out := table.ReplaceAll(text)
	if out != text {
		metrics.IncTranslation(kind)
	}
	return out
}
