package scoring

import "sync/atomic"

// Flag reports whether score boosting is enabled. It is consulted on every call.
type Flag interface {
	Enabled() bool
}

// StaticFlag is a Flag with a fixed value.
type StaticFlag bool

// Enabled implements Flag.
func (f StaticFlag) Enabled() bool { return bool(f) }

// ToggleFlag is a Flag that can be flipped at runtime.
type ToggleFlag struct {
	v atomic.Bool
}

// NewToggleFlag returns a ToggleFlag with the given initial value.
func NewToggleFlag(enabled bool) *ToggleFlag {
	f := &ToggleFlag{}
	f.v.Store(enabled)
	return f
}

// Enabled implements Flag.
func (f *ToggleFlag) Enabled() bool {
	if f == nil {
		return false
	}
	return f.v.Load()
}

// Set changes the flag value.
func (f *ToggleFlag) Set(enabled bool) {
	f.v.Store(enabled)
}
