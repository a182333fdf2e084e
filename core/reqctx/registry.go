package reqctx

// node is a single scope in a key's scope tree. A node may hold a value,
// children, both, or neither; hasValue distinguishes an explicitly stored
// zero value from no value at all.
type node struct {
	value    any
	hasValue bool
	children map[string]*node
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

func (n *node) ensureChild(id string) *node {
	child, ok := n.children[id]
	if !ok {
		child = newNode()
		n.children[id] = child
	}
	return child
}

// Registry holds the request-scoped values of a single in-flight request,
// organized into one scope tree per key. Scope paths address tree positions:
// the empty path is the root (entry) scope, each additional segment descends
// into a nested scope.
//
// A registry is created when a request starts and discarded when its response
// has been produced. It is not safe for concurrent use: pipeline stages within
// a request run strictly one after another, so no locking is required.
type Registry struct {
	roots map[string]*node
}

// New creates an empty registry for a single request.
func New() *Registry {
	return &Registry{roots: make(map[string]*node)}
}

// Register stores value for key at the given scope path, lazily creating the
// key's root and any missing intermediate scopes along the way. Registering
// again at the same path overwrites the previous value at exactly that node;
// sibling and ancestor scopes are never disturbed.
func Register[T any](r *Registry, key *Key[T], value T, scope ...string) {
	root, ok := r.roots[key.id]
	if !ok {
		root = newNode()
		r.roots[key.id] = root
	}

	n := root
	for _, id := range scope {
		n = n.ensureChild(id)
	}
	n.value = value
	n.hasValue = true
}

// Get resolves the value for key at the given scope path. The walk starts at
// the key's root and remembers the deepest value seen so far; a path segment
// with no matching child stops the walk early rather than failing. The result
// is the value at the deepest reachable node if it holds one, otherwise the
// nearest ancestor value encountered on the way down, otherwise the key's
// default. Get never fails.
func Get[T any](r *Registry, key *Key[T], scope ...string) T {
	root, ok := r.roots[key.id]
	if !ok {
		return key.def
	}

	last := key.def
	n := root
	if n.hasValue {
		if v, ok := n.value.(T); ok {
			last = v
		}
	}
	for _, id := range scope {
		child, ok := n.children[id]
		if !ok {
			break
		}
		n = child
		if n.hasValue {
			if v, ok := n.value.(T); ok {
				last = v
			}
		}
	}
	return last
}

// RemoveScope discards the scope at the given path for key together with
// every scope nested beneath it. An empty path forgets the key entirely for
// this registry, so subsequent Get calls resolve to the key's default.
// Removing a path that was never registered is a silent no-op, and removal
// never affects ancestor values or sibling subtrees.
func RemoveScope[T any](r *Registry, key *Key[T], scope ...string) {
	if len(scope) == 0 {
		delete(r.roots, key.id)
		return
	}

	n, ok := r.roots[key.id]
	if !ok {
		return
	}
	for _, id := range scope[:len(scope)-1] {
		n, ok = n.children[id]
		if !ok {
			return
		}
	}
	delete(n.children, scope[len(scope)-1])
}
