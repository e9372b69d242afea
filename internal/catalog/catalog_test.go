package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neurondemo/internal/playback"
)

func TestBuiltinCatalog(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	var names []string
	for _, cat := range c.Categories() {
		names = append(names, cat.Name)
	}
	assert.Equal(t, []string{"build", "vectors", "ml", "embeddings", "llm", "gpu", "hybrid", "advanced"}, names)

	for _, key := range c.Keys() {
		demo, err := c.Lookup(key)
		require.NoError(t, err, key.String())
		assert.NotEmpty(t, demo.Script.Steps, key.String())
		assert.NotEmpty(t, demo.Description, key.String())
		assert.NotEmpty(t, demo.Badges, key.String())
	}
	assert.Len(t, c.Keys(), 30)
}

func TestBuiltinTitles(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	llm, ok := c.Category("llm")
	require.True(t, ok)
	assert.Equal(t, "LLM", llm.Title)

	demo, err := c.Lookup(Key{Category: "embeddings", Subcategory: "hf_models"})
	require.NoError(t, err)
	assert.Equal(t, "Hf Models", demo.Label)
	assert.Equal(t, "Embeddings: Hf Models", demo.Title)

	build, err := c.Lookup(Key{Category: "build"})
	require.NoError(t, err)
	assert.Equal(t, "Build", build.Title)
	assert.Equal(t, "build", build.Script.Name)
}

func TestLookupResolvesDefaultSubcategory(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	demo, err := c.Lookup(Key{Category: "vectors"})
	require.NoError(t, err)
	assert.Equal(t, Key{Category: "vectors", Subcategory: "operations"}, demo.Key)

	first := demo.Script.Steps[0]
	assert.Equal(t, "psql -d neurondb", first.Command)
	assert.True(t, first.EntersInteractive)
	assert.True(t, demo.Script.Steps[1].InteractivePrompt)

	assert.Equal(t, Key{Category: "build"}, c.DefaultKey())
}

func TestLookupMissing(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	_, err = c.Lookup(Key{Category: "nope"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.Lookup(Key{Category: "vectors", Subcategory: "nope"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseKey(t *testing.T) {
	key, err := ParseKey("ml/clustering")
	require.NoError(t, err)
	assert.Equal(t, Key{Category: "ml", Subcategory: "clustering"}, key)
	assert.Equal(t, "ml/clustering", key.String())

	key, err = ParseKey(" gpu ")
	require.NoError(t, err)
	assert.Equal(t, "gpu", key.String())

	for _, bad := range []string{"", "/x", "a/b/c"} {
		_, err := ParseKey(bad)
		assert.ErrorIs(t, err, ErrInvalid, bad)
	}
}

func TestParseCategoryErrors(t *testing.T) {
	tests := map[string]string{
		"missing name": "order: 1\nsteps: []\n",
		"steps and subcategories": `name: x
steps: [{command: ls}]
subcategories: [{name: a, steps: []}]
`,
		"bad yaml": "name: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCategory([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestNewRejectsBadDefault(t *testing.T) {
	cat, err := ParseCategory([]byte(`name: x
default: missing
subcategories:
  - name: a
    steps: [{command: ls, output: [a]}]
`))
	require.NoError(t, err)

	_, err = New([]Category{cat})
	assert.ErrorIs(t, err, ErrInvalid)

	flat, err := ParseCategory([]byte("name: y\nsteps: [{command: ls}]\n"))
	require.NoError(t, err)
	_, err = New([]Category{flat, flat})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestMarshalCategoryRoundTrip(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	for _, name := range []string{"gpu", "llm"} {
		cat, ok := c.Category(name)
		require.True(t, ok)

		data, err := MarshalCategory(cat)
		require.NoError(t, err)
		back, err := ParseCategory(data)
		require.NoError(t, err)

		assert.Equal(t, cat.Title, back.Title)
		assert.Equal(t, cat.Default, back.Default)
		require.Len(t, back.Demos, len(cat.Demos))
		for i := range cat.Demos {
			assert.Equal(t, cat.Demos[i].Key, back.Demos[i].Key)
			assert.Equal(t, commands(cat.Demos[i].Script), commands(back.Demos[i].Script))
		}
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Hf Models", Title("hf_models"))
	assert.Equal(t, "Timeseries", Title("timeseries"))
}

func commands(s playback.Script) []string {
	out := make([]string, len(s.Steps))
	for i, step := range s.Steps {
		out[i] = step.Command
	}
	return out
}
