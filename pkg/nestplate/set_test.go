package nestplate

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_RegisterAndRender(t *testing.T) {
	set := NewSet()
	set.Register("greeting", MustNew("Hello {:name:user}", nil))

	msg, err := set.Render("greeting", map[string]any{"user": "ops"})
	require.NoError(t, err)
	assert.Equal(t, "Hello ops", msg)
}

func TestSet_RenderMissing(t *testing.T) {
	set := NewSet()

	_, err := set.Render("nope", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.Contains(t, err.Error(), "nope")
}

func TestSet_Add(t *testing.T) {
	set := NewSet()

	require.NoError(t, set.Add("range", "{:title} must be {:min}-{:max}", map[string]any{"min": 1, "max": 9}))
	msg, err := set.Render("range", map[string]any{"title": "Size"})
	require.NoError(t, err)
	assert.Equal(t, "Size must be 1-9", msg)

	err = set.Add("bad", "x", nil, WithEnclosure("", "}"))
	assert.ErrorIs(t, err, ErrEmptyEnclosure)
	assert.False(t, set.Has("bad"))
}

func TestSet_Lifecycle(t *testing.T) {
	set := NewSet()
	set.Register("b", MustNew("b", nil))
	set.Register("a", MustNew("a", nil))

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"a", "b"}, set.Names())
	assert.True(t, set.Has("a"))

	tmpl, ok := set.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", tmpl.Message())

	set.Delete("a")
	assert.False(t, set.Has("a"))
	_, ok = set.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, set.Len())
}

func TestSet_Range(t *testing.T) {
	set := NewSet()
	for i := range 5 {
		set.Register(fmt.Sprintf("t%d", i), MustNew("x", nil))
	}

	t.Run("visits all", func(t *testing.T) {
		seen := 0
		set.Range(func(_ string, _ *Template) bool {
			seen++
			return true
		})
		assert.Equal(t, 5, seen)
	})

	t.Run("stops early", func(t *testing.T) {
		seen := 0
		set.Range(func(_ string, _ *Template) bool {
			seen++
			return false
		})
		assert.Equal(t, 1, seen)
	})

	t.Run("mutation during range", func(t *testing.T) {
		assert.NotPanics(t, func() {
			set.Range(func(name string, _ *Template) bool {
				set.Delete(name)
				return true
			})
		})
		assert.Equal(t, 0, set.Len())
	})
}

func TestSet_Concurrent(t *testing.T) {
	set := NewSet()
	var wg sync.WaitGroup

	for i := range 20 {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			set.Register(fmt.Sprintf("t%d", i), MustNew("{:n}", map[string]any{"n": i}))
		}(i)
		go func(i int) {
			defer wg.Done()
			_, _ = set.Render(fmt.Sprintf("t%d", i), nil)
			_ = set.Names()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, set.Len())
	msg, err := set.Render("t7", nil)
	require.NoError(t, err)
	assert.Equal(t, "7", msg)
}
