package reqctx

// Getter reads values from a registry at a fixed scope path. The pipeline
// hands a Getter to every stage; terminal handlers receive only a Getter,
// never a Setter, because no later stage within their scope could observe
// a write made that late.
type Getter struct {
	registry *Registry
	scope    []string
}

// Setter writes values to a registry at a fixed scope path. Middleware
// receive a Setter bound to the scope of the stage they run in: entry
// middleware write at the root, group middleware write at their group's
// scope.
type Setter struct {
	registry *Registry
	scope    []string
}

// Getter returns a read view of the registry bound to the given scope path.
func (r *Registry) Getter(scope ...string) Getter {
	return Getter{registry: r, scope: append([]string(nil), scope...)}
}

// Setter returns a write view of the registry bound to the given scope path.
func (r *Registry) Setter(scope ...string) Setter {
	return Setter{registry: r, scope: append([]string(nil), scope...)}
}

// Getter returns the read view at the same scope path as the setter.
func (s Setter) Getter() Getter {
	return Getter{registry: s.registry, scope: s.scope}
}

// Scope returns a copy of the path the view is bound to.
func (g Getter) Scope() []string {
	return append([]string(nil), g.scope...)
}

// Scope returns a copy of the path the view is bound to.
func (s Setter) Scope() []string {
	return append([]string(nil), s.scope...)
}

// Value resolves key through the getter's scope path with the usual ancestor
// fallback. A zero-value Getter resolves to the key's default.
func Value[T any](g Getter, key *Key[T]) T {
	if g.registry == nil {
		return key.Default()
	}
	return Get(g.registry, key, g.scope...)
}

// Set stores value for key at the setter's scope path. A zero-value Setter
// is a no-op.
func Set[T any](s Setter, key *Key[T], value T) {
	if s.registry == nil {
		return
	}
	Register(s.registry, key, value, s.scope...)
}

// Remove discards the scope the setter is bound to for key, including all
// nested scopes beneath it. A zero-value Setter is a no-op.
func Remove[T any](s Setter, key *Key[T]) {
	if s.registry == nil {
		return
	}
	RemoveScope(s.registry, key, s.scope...)
}
