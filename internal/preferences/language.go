package preferences

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"skincare-client/internal/shared/storage/kv"
	"skincare-client/internal/shared/telemetry"
)

// LanguageKey is the store key for the display language.
const LanguageKey = "app_language"

// Supported lists the display languages the app ships.
var Supported = []language.Tag{language.English, language.Spanish}

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")

	matcher = language.NewMatcher(Supported)
)

// ParseLanguage maps a BCP 47 tag such as "es-MX" onto a supported language.
func ParseLanguage(raw string) (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, raw)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.Und, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, raw)
	}
	return Supported[idx], nil
}

// Language holds the persisted display language and keeps a copy in memory
// so Locale never blocks.
type Language struct {
	store kv.Store

	mu      sync.RWMutex
	current language.Tag
}

// NewLanguage returns a Language that reports fallback until Load or Set.
func NewLanguage(store kv.Store, fallback language.Tag) *Language {
	return &Language{store: store, current: fallback}
}

// Load reads the stored preference. Missing or unreadable values keep the
// current language.
func (l *Language) Load(ctx context.Context) (language.Tag, error) {
	raw, ok, err := l.store.Get(ctx, LanguageKey)
	if err != nil {
		telemetry.Warn("preferences.load_failed", map[string]any{"error": err})
		return l.Locale(), err
	}
	if !ok {
		return l.Locale(), nil
	}
	tag, err := ParseLanguage(raw)
	if err != nil {
		telemetry.Warn("preferences.invalid_language", map[string]any{"value": raw})
		return l.Locale(), nil
	}
	l.mu.Lock()
	l.current = tag
	l.mu.Unlock()
	return tag, nil
}

// Set validates and persists a new display language.
func (l *Language) Set(ctx context.Context, raw string) (language.Tag, error) {
	tag, err := ParseLanguage(raw)
	if err != nil {
		return language.Und, err
	}
	if err := l.store.Set(ctx, LanguageKey, tag.String()); err != nil {
		return language.Und, fmt.Errorf("save language: %w", err)
	}
	l.mu.Lock()
	l.current = tag
	l.mu.Unlock()
	telemetry.Info("preferences.language_set", map[string]any{"language": tag.String()})
	return tag, nil
}

// Locale returns the active display language.
func (l *Language) Locale() language.Tag {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}
