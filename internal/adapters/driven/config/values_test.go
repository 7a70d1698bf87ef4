package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValues_Getters(t *testing.T) {
	v := Values{
		"s":      "hello",
		"i":      42,
		"i64":    int64(7),
		"f":      2.5,
		"b":      true,
		"list":   []string{"a", "b"},
		"anylst": []any{"x", 1, "y"},
	}

	assert.Equal(t, "hello", v.String("s"))
	assert.Equal(t, "", v.String("i"))
	assert.Equal(t, "", v.String("missing"))

	assert.Equal(t, 42, v.Int("i"))
	assert.Equal(t, 7, v.Int("i64"))
	assert.Equal(t, 2, v.Int("f"))
	assert.Equal(t, 0, v.Int("s"))

	assert.InDelta(t, 2.5, v.Float("f"), 0.0001)
	assert.InDelta(t, 42.0, v.Float("i"), 0.0001)
	assert.InDelta(t, 7.0, v.Float("i64"), 0.0001)
	assert.Zero(t, v.Float("b"))

	assert.True(t, v.Bool("b"))
	assert.False(t, v.Bool("s"))

	assert.Equal(t, []string{"a", "b"}, v.StringSlice("list"))
	assert.Equal(t, []string{"x", "y"}, v.StringSlice("anylst"))
	assert.Nil(t, v.StringSlice("s"))
}

func TestFlatten(t *testing.T) {
	got := Flatten(map[string]any{
		"search": map[string]any{"pages": int64(3), "languages": []any{"Go"}},
		"top":    "x",
	})

	assert.Equal(t, Values{
		"search.pages":     int64(3),
		"search.languages": []any{"Go"},
		"top":              "x",
	}, got)
}

func TestNest_RoundTrip(t *testing.T) {
	v := Values{
		"search.pages": 3,
		"output.color": "never",
		"output.host":  "gitlab.com",
		"client.rate":  2.5,
		"standalone":   true,
	}

	nested := v.Nest()
	assert.Equal(t, map[string]any{"pages": 3}, nested["search"])
	assert.Equal(t, true, nested["standalone"])
	assert.Equal(t, v, Flatten(nested))
}

func TestNest_TableWins(t *testing.T) {
	nested := Values{"a": 1, "a.b": 2}.Nest()
	assert.Equal(t, map[string]any{"b": 2}, nested["a"])
}
