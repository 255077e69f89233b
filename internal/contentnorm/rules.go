package contentnorm

import (
	"regexp"
	"sort"
	"strings"
)

// Rule replaces a literal phrase.
type Rule struct {
	Match   string
	Replace string
}

// Pattern is a regex clean-up pass. Replace may use $1-style references.
type Pattern struct {
	Expr    *regexp.Regexp
	Replace string
}

// Table is a phrase table: exact whole-text matches first, then a single
// longest-match-first substitution pass. Replaced text is never rescanned.
type Table struct {
	exact    map[string]string
	rules    []Rule
	replacer *strings.Replacer
}

// NewTable builds a Table. Rules with an empty Match are ignored; on
// duplicate matches the first rule wins.
func NewTable(rules ...Rule) *Table {
	seen := make(map[string]bool, len(rules))
	sorted := make([]Rule, 0, len(rules))
	exact := make(map[string]string, len(rules))
	for _, r := range rules {
		if r.Match == "" || seen[r.Match] {
			continue
		}
		seen[r.Match] = true
		sorted = append(sorted, r)
		key := exactKey(r.Match)
		if _, ok := exact[key]; !ok {
			exact[key] = r.Replace
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Match) > len(sorted[j].Match)
	})

	// strings.Replacer tries old strings in argument order at each position.
	pairs := make([]string, 0, 2*len(sorted))
	for _, r := range sorted {
		pairs = append(pairs, r.Match, r.Replace)
	}
	return &Table{exact: exact, rules: sorted, replacer: strings.NewReplacer(pairs...)}
}

// Lookup returns the replacement for text when the whole text, trimmed and
// case-folded, is a known phrase.
func (t *Table) Lookup(text string) (string, bool) {
	v, ok := t.exact[exactKey(text)]
	return v, ok
}

// ReplaceAll substitutes every known phrase inside text.
func (t *Table) ReplaceAll(text string) string {
	return t.replacer.Replace(text)
}

// Rules returns the rules in evaluation order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

func exactKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var spaces = regexp.MustCompile(`\s+`)

func collapseSpaces(s string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}
