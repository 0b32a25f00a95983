package tree_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/arthur-debert/pagesmith/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromNative(t *testing.T) {
	t.Run("nested_structures", func(t *testing.T) {
		n, err := tree.FromNative(map[string]any{
			"env": "dev",
			"projects": []any{
				map[string]any{"title": "Old", "stars": 3},
			},
			"draft": false,
			"ratio": 0.5,
			"none":  nil,
		})
		require.NoError(t, err)

		m, ok := n.(*tree.Mapping)
		require.True(t, ok)
		assert.Equal(t, []string{"draft", "env", "none", "projects", "ratio"}, m.Keys())

		projects, _ := m.Get("projects")
		seq, ok := projects.(*tree.Sequence)
		require.True(t, ok)
		require.Equal(t, 1, seq.Len())

		first := seq.Items[0].(*tree.Mapping)
		stars, _ := first.Get("stars")
		assert.Equal(t, int64(3), stars.(*tree.Scalar).Value)
	})

	t.Run("yaml_style_interface_keys", func(t *testing.T) {
		n, err := tree.FromNative(map[any]any{1: "one", "two": 2})
		require.NoError(t, err)
		m := n.(*tree.Mapping)
		assert.Equal(t, []string{"1", "two"}, m.Keys())
	})

	t.Run("typed_slices_and_maps", func(t *testing.T) {
		n, err := tree.FromNative(map[string]any{
			"tags":   []string{"a", "b"},
			"labels": map[string]string{"k": "v"},
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"tags":   []any{"a", "b"},
			"labels": map[string]any{"k": "v"},
		}, tree.ToNative(n))
	})

	t.Run("json_numbers", func(t *testing.T) {
		n, err := tree.FromNative([]any{json.Number("42"), json.Number("1.5")})
		require.NoError(t, err)
		assert.Equal(t, []any{int64(42), 1.5}, tree.ToNative(n))
	})

	t.Run("timestamps_become_strings", func(t *testing.T) {
		ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		n, err := tree.FromNative(ts)
		require.NoError(t, err)
		assert.Equal(t, "2024-05-01T10:00:00Z", n.(*tree.Scalar).Value)
	})

	t.Run("unsupported_type", func(t *testing.T) {
		_, err := tree.FromNative(map[string]any{"ch": make(chan int)})
		assert.Error(t, err)
	})
}

func TestToNativeRoundTrip(t *testing.T) {
	native := map[string]any{
		"site":  map[string]any{"name": "demo", "pages": []any{"a", "b"}},
		"count": int64(2),
		"ok":    true,
	}
	n, err := tree.FromNative(native)
	require.NoError(t, err)
	assert.Equal(t, native, tree.ToNative(n))
}

func TestCloneAndEqual(t *testing.T) {
	n, err := tree.FromNative(map[string]any{"a": []any{map[string]any{"b": 1}}})
	require.NoError(t, err)

	c := tree.Clone(n)
	assert.True(t, tree.Equal(n, c))

	inner := c.(*tree.Mapping).Entries["a"].(*tree.Sequence).Items[0].(*tree.Mapping)
	inner.Set("b", tree.NewScalar(2))

	assert.False(t, tree.Equal(n, c), "clone must not share nodes with the original")
	assert.False(t, tree.Equal(tree.NewScalar("1"), tree.NewScalar(1)))
	assert.False(t, tree.Equal(tree.NewMapping(), &tree.Sequence{}))
}

func TestMarshalJSON(t *testing.T) {
	n, err := tree.FromNative(map[string]any{"list": []any{}, "obj": map[string]any{}, "n": nil})
	require.NoError(t, err)

	out, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{"list":[],"obj":{},"n":null}`, string(out))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "scalar", tree.NewScalar("x").Kind().String())
	assert.Equal(t, "sequence", (&tree.Sequence{}).Kind().String())
	assert.Equal(t, "mapping", tree.NewMapping().Kind().String())
}
