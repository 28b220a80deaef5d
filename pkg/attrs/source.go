package attrs

// ValueSource supplies a directive's value. It is either a static literal or
// a handle into an external reactive runtime. The engine treats reactive
// sources as opaque capabilities: it reads Current and installs OnChange
// callbacks, nothing more.
type ValueSource interface {
	// Current returns the source's current value.
	Current() any

	// OnChange registers a callback invoked whenever the value changes.
	// The returned release function removes the registration; it must be
	// safe to call more than once.
	OnChange(fn func()) (release func())
}

// staticSource is a ValueSource for a literal value. It never changes.
type staticSource struct {
	value any
}

// Static wraps a literal value as a ValueSource.
func Static(value any) ValueSource {
	return staticSource{value: value}
}

// Current implements ValueSource.
func (s staticSource) Current() any { return s.value }

// OnChange implements ValueSource. Static values never fire.
func (s staticSource) OnChange(func()) func() {
	return func() {}
}

// IsStatic reports whether source is a static literal. Directives with
// non-static sources survive into a snapshot's dynamic slots for rebinding.
func IsStatic(source ValueSource) bool {
	_, ok := source.(staticSource)
	return ok
}
