package tgmsg

// lazy is a write-once derived-state cell: NotComputed until the first set,
// then stable until an explicit reset. The computed flag distinguishes "never
// derived" from a derived zero value, which matters for caching negative
// lookup results.
type lazy[T any] struct {
	value    T
	computed bool
}

func (l *lazy[T]) set(value T) {
	l.value = value
	l.computed = true
}

func (l *lazy[T]) reset() {
	var zero T
	l.value = zero
	l.computed = false
}
