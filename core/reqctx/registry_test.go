package reqctx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrCamelCode/potami/core/reqctx"
)

func TestGet_DefaultOnFreshRegistry(t *testing.T) {
	t.Parallel()

	key := reqctx.NewKey(42)
	r := reqctx.New()

	assert.Equal(t, 42, reqctx.Get(r, key))
	assert.Equal(t, 42, reqctx.Get(r, key, "a"))
	assert.Equal(t, 42, reqctx.Get(r, key, "a", "b", "c"))
}

func TestRegisterAndGet_RootScope(t *testing.T) {
	t.Parallel()

	key := reqctx.NewKey(0)
	r := reqctx.New()

	assert.Equal(t, 0, reqctx.Get(r, key))

	reqctx.Register(r, key, 123)
	assert.Equal(t, 123, reqctx.Get(r, key))
}

func TestRegisterAndGet_NestedScope(t *testing.T) {
	t.Parallel()

	key := reqctx.NewKey(0)
	r := reqctx.New()

	reqctx.Register(r, key, 123)
	reqctx.Register(r, key, 321, "nested1")

	assert.Equal(t, 321, reqctx.Get(r, key, "nested1"))
	assert.Equal(t, 123, reqctx.Get(r, key), "root value must stay untouched")

	// A deeper path with no value of its own falls back to the nearest ancestor.
	assert.Equal(t, 321, reqctx.Get(r, key, "nested1", "deeper"))
	assert.Equal(t, 321, reqctx.Get(r, key, "nested1", "deeper", "still"))
}

func TestRegister_SiblingScopesIndependent(t *testing.T) {
	t.Parallel()

	t.Run("a then b", func(t *testing.T) {
		t.Parallel()

		key := reqctx.NewKey("")
		r := reqctx.New()

		reqctx.Register(r, key, "v1", "a")
		reqctx.Register(r, key, "v2", "b")

		assert.Equal(t, "v1", reqctx.Get(r, key, "a"))
		assert.Equal(t, "v2", reqctx.Get(r, key, "b"))
	})

	t.Run("b then a", func(t *testing.T) {
		t.Parallel()

		key := reqctx.NewKey("")
		r := reqctx.New()

		reqctx.Register(r, key, "v2", "b")
		reqctx.Register(r, key, "v1", "a")

		assert.Equal(t, "v1", reqctx.Get(r, key, "a"))
		assert.Equal(t, "v2", reqctx.Get(r, key, "b"))
	})
}

func TestGet_FallbackToNearestAncestor(t *testing.T) {
	t.Parallel()

	key := reqctx.NewKey(0)
	r := reqctx.New()

	reqctx.Register(r, key, 123)
	reqctx.Register(r, key, 321, "scope")
	reqctx.Register(r, key, 10, "scope2")

	assert.Equal(t, 123, reqctx.Get(r, key))
	assert.Equal(t, 321, reqctx.Get(r, key, "scope"))
	assert.Equal(t, 10, reqctx.Get(r, key, "scope2"))

	// Unknown segments truncate the walk; resolution falls back to "scope",
	// not to the root and never through the unrelated "scope2" sibling.
	assert.Equal(t, 321, reqctx.Get(r, key, "scope", "nope", "another"))
}

func TestRemoveScope_Root(t *testing.T) {
	t.Parallel()

	key := reqctx.NewKey("default")
	r := reqctx.New()

	reqctx.Register(r, key, "root")
	reqctx.Register(r, key, "nested", "a", "b")

	reqctx.RemoveScope(r, key)

	assert.Equal(t, "default", reqctx.Get(r, key))
	assert.Equal(t, "default", reqctx.Get(r, key, "a"))
	assert.Equal(t, "default", reqctx.Get(r, key, "a", "b"))
}

func TestRemoveScope_Subtree(t *testing.T) {
	t.Parallel()

	key := reqctx.NewKey(0)
	r := reqctx.New()

	reqctx.Register(r, key, 100)
	reqctx.Register(r, key, 200, "inner")
	reqctx.Register(r, key, 300, "inner", "inner")

	reqctx.RemoveScope(r, key, "inner", "inner")

	assert.Equal(t, 200, reqctx.Get(r, key, "inner", "inner"), "removed scope falls back to its parent")
	assert.Equal(t, 200, reqctx.Get(r, key, "inner"))
	assert.Equal(t, 100, reqctx.Get(r, key))
}

func TestRemoveScope_DiscardsNestedScopes(t *testing.T) {
	t.Parallel()

	key := reqctx.NewKey(0)
	r := reqctx.New()

	reqctx.Register(r, key, 1)
	reqctx.Register(r, key, 2, "a")
	reqctx.Register(r, key, 3, "a", "b")
	reqctx.Register(r, key, 4, "a", "b", "c")
	reqctx.Register(r, key, 5, "sibling")

	reqctx.RemoveScope(r, key, "a")

	assert.Equal(t, 1, reqctx.Get(r, key, "a"))
	assert.Equal(t, 1, reqctx.Get(r, key, "a", "b"))
	assert.Equal(t, 1, reqctx.Get(r, key, "a", "b", "c"))
	assert.Equal(t, 1, reqctx.Get(r, key), "ancestor value untouched")
	assert.Equal(t, 5, reqctx.Get(r, key, "sibling"), "sibling subtree untouched")
}

func TestRemoveScope_MissingPathIsNoop(t *testing.T) {
	t.Parallel()

	key := reqctx.NewKey(7)
	r := reqctx.New()

	// Key was never registered at all.
	require.NotPanics(t, func() { reqctx.RemoveScope(r, key, "ghost") })
	require.NotPanics(t, func() { reqctx.RemoveScope(r, key) })

	reqctx.Register(r, key, 99, "real")

	// Missing leaf and missing intermediate segments abort silently.
	reqctx.RemoveScope(r, key, "missing")
	reqctx.RemoveScope(r, key, "missing", "deeper")
	reqctx.RemoveScope(r, key, "real", "missing", "deeper")

	assert.Equal(t, 99, reqctx.Get(r, key, "real"))
	assert.Equal(t, 7, reqctx.Get(r, key))
}

func TestRegister_IdempotentPerPath(t *testing.T) {
	t.Parallel()

	key := reqctx.NewKey("")
	r := reqctx.New()

	reqctx.Register(r, key, "once", "a", "b")
	reqctx.Register(r, key, "once", "a", "b")

	assert.Equal(t, "once", reqctx.Get(r, key, "a", "b"))

	// A repeat write with a new value overwrites exactly that node.
	reqctx.Register(r, key, "root")
	reqctx.Register(r, key, "twice", "a", "b")

	assert.Equal(t, "twice", reqctx.Get(r, key, "a", "b"))
	assert.Equal(t, "root", reqctx.Get(r, key))
}

func TestGet_IntermediateScopesStayValueless(t *testing.T) {
	t.Parallel()

	key := reqctx.NewKey(-1)
	r := reqctx.New()

	reqctx.Register(r, key, 5, "a", "b", "c")

	assert.Equal(t, 5, reqctx.Get(r, key, "a", "b", "c"))
	assert.Equal(t, -1, reqctx.Get(r, key, "a", "b"), "intermediate node created without a value")
	assert.Equal(t, -1, reqctx.Get(r, key, "a"))
	assert.Equal(t, -1, reqctx.Get(r, key))
}

func TestRegister_ZeroValueShadowsAncestor(t *testing.T) {
	t.Parallel()

	key := reqctx.NewKey(100)
	r := reqctx.New()

	reqctx.Register(r, key, 55)
	reqctx.Register(r, key, 0, "a")

	assert.Equal(t, 0, reqctx.Get(r, key, "a"), "an explicit zero is a value, not an absence")
	assert.Equal(t, 55, reqctx.Get(r, key))
}

func TestKeys_NeverAlias(t *testing.T) {
	t.Parallel()

	k1 := reqctx.NewKey(0)
	k2 := reqctx.NewKey(0)
	r := reqctx.New()

	reqctx.Register(r, k1, 11)

	assert.Equal(t, 11, reqctx.Get(r, k1))
	assert.Equal(t, 0, reqctx.Get(r, k2), "keys with identical defaults stay independent")

	reqctx.RemoveScope(r, k1)
	reqctx.Register(r, k2, 22, "s")

	assert.Equal(t, 0, reqctx.Get(r, k1, "s"))
	assert.Equal(t, 22, reqctx.Get(r, k2, "s"))
}

func TestRemoveScope_OtherKeysUntouched(t *testing.T) {
	t.Parallel()

	k1 := reqctx.NewKey("")
	k2 := reqctx.NewKey("")
	r := reqctx.New()

	reqctx.Register(r, k1, "one", "shared")
	reqctx.Register(r, k2, "two", "shared")

	reqctx.RemoveScope(r, k1)

	assert.Equal(t, "", reqctx.Get(r, k1, "shared"))
	assert.Equal(t, "two", reqctx.Get(r, k2, "shared"))
}

func TestRegistry_StructAndPointerValues(t *testing.T) {
	t.Parallel()

	type user struct {
		Name string
	}

	byValue := reqctx.NewKey(user{Name: "anonymous"})
	byPointer := reqctx.NewKey[*user](nil)
	r := reqctx.New()

	assert.Equal(t, user{Name: "anonymous"}, reqctx.Get(r, byValue))
	assert.Nil(t, reqctx.Get(r, byPointer))

	reqctx.Register(r, byValue, user{Name: "alice"}, "g")
	reqctx.Register(r, byPointer, &user{Name: "bob"}, "g")

	assert.Equal(t, user{Name: "alice"}, reqctx.Get(r, byValue, "g"))
	require.NotNil(t, reqctx.Get(r, byPointer, "g"))
	assert.Equal(t, "bob", reqctx.Get(r, byPointer, "g").Name)
}

func TestRegistries_Isolated(t *testing.T) {
	t.Parallel()

	key := reqctx.NewKey(0)
	r1 := reqctx.New()
	r2 := reqctx.New()

	reqctx.Register(r1, key, 1)

	assert.Equal(t, 1, reqctx.Get(r1, key))
	assert.Equal(t, 0, reqctx.Get(r2, key), "registries never share state")
}
