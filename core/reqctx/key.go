package reqctx

import "github.com/google/uuid"

// Key identifies one piece of request-scoped state and carries the value
// resolved when nothing has been registered for it. Keys are constructed
// once, typically at application startup, and shared read-only across all
// requests; registries track values by key identity, so two keys created
// with identical defaults never observe each other's writes.
type Key[T any] struct {
	id  string
	def T
}

// NewKey creates a key with a fresh process-unique identity and the given
// default value.
func NewKey[T any](defaultValue T) *Key[T] {
	return &Key[T]{
		id:  uuid.NewString(),
		def: defaultValue,
	}
}

// ID returns the key's unique identity.
func (k *Key[T]) ID() string {
	return k.id
}

// Default returns the value resolved when no scope holds a value for the key.
func (k *Key[T]) Default() T {
	return k.def
}
