package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) Expression {
	t.Helper()
	expr, err := ParsePath(text)
	require.NoError(t, err)
	return expr
}

// TestParsePath tests the path grammar edge cases
func TestParsePath(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		canonical string
		expectErr bool
	}{
		{"BareKey", "debug", "debug", false},
		{"DottedKeys", "server.port", "server.port", false},
		{"IndexAfterKey", "items[0]", "items[0]", false},
		{"IndexThenKey", "items[0].name", "items[0].name", false},
		{"ChainedIndexes", "arr[0][1]", "arr[0][1]", false},
		{"DeepChain", "a.b[2].c[0]", "a.b[2].c[0]", false},
		{"UnderscoreAndDash", "feature-flags.enable_debug", "feature-flags.enable_debug", false},
		{"Empty", "", "", true},
		{"LeadingDot", ".server", "", true},
		{"TrailingDot", "server.", "", true},
		{"DoubleDot", "server..port", "", true},
		{"DotBeforeBracket", "items.[0]", "", true},
		{"LeadingBracket", "[0]", "", true},
		{"UnclosedBracket", "items[0", "", true},
		{"EmptyIndex", "items[]", "", true},
		{"NonDigitIndex", "items[x]", "", true},
		{"SignedIndex", "items[-1]", "", true},
		{"StrayCloseBracket", "items]", "", true},
		{"TextAfterIndex", "items[0]name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := ParsePath(tt.input)
			if tt.expectErr {
				require.Error(t, err)
				var perr *ParseError
				assert.ErrorAs(t, err, &perr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.canonical, expr.String())
			}
		})
	}
}

// TestExpressionSteps tests the parsed step structure
func TestExpressionSteps(t *testing.T) {
	expr := mustParse(t, "items[0].name")
	assert.Equal(t, []step{
		{kind: stepKey, name: "items"},
		{kind: stepIndex, index: 0},
		{kind: stepKey, name: "name"},
	}, expr.steps)
}

// TestExpressionGet tests read traversal over an existing tree
func TestExpressionGet(t *testing.T) {
	root := ValueOf(map[string]any{
		"place": map[string]any{
			"name":   "Torre di Pisa",
			"rating": 4.5,
			"creators": []any{
				map[string]any{"name": "John Smith"},
				map[string]any{"name": "Bob Dole"},
			},
		},
	})

	t.Run("NestedKey", func(t *testing.T) {
		v, ok := mustParse(t, "place.name").Get(root)
		require.True(t, ok)
		s, err := v.Str()
		require.NoError(t, err)
		assert.Equal(t, "Torre di Pisa", s)
	})

	t.Run("IndexedKey", func(t *testing.T) {
		v, ok := mustParse(t, "place.creators[1].name").Get(root)
		require.True(t, ok)
		assert.Equal(t, "Bob Dole", v.String())
	})

	t.Run("MissingKey", func(t *testing.T) {
		_, ok := mustParse(t, "place.owner").Get(root)
		assert.False(t, ok)
	})

	t.Run("IndexOutOfRange", func(t *testing.T) {
		_, ok := mustParse(t, "place.creators[5]").Get(root)
		assert.False(t, ok)
	})

	t.Run("IndexIntoScalar", func(t *testing.T) {
		_, ok := mustParse(t, "place.name[0]").Get(root)
		assert.False(t, ok)
	})

	t.Run("KeyIntoScalar", func(t *testing.T) {
		_, ok := mustParse(t, "place.rating.x").Get(root)
		assert.False(t, ok)
	})

	t.Run("EmptyTreeStaysUntouched", func(t *testing.T) {
		empty := emptyTable()
		_, ok := mustParse(t, "a.b.c").Get(empty)
		assert.False(t, ok)
		assert.Empty(t, empty.tab)
	})
}

// TestExpressionSet tests write traversal with auto-vivification
func TestExpressionSet(t *testing.T) {
	t.Run("AutoVivify", func(t *testing.T) {
		root := emptyTable()
		mustParse(t, "items[0].name").Set(&root, ValueOf("John"))

		v, ok := mustParse(t, "items[0].name").Get(root)
		require.True(t, ok)
		assert.Equal(t, "John", v.String())

		items, ok := mustParse(t, "items").Get(root)
		require.True(t, ok)
		require.Equal(t, KindArray, items.Kind())
		assert.Len(t, items.arr, 1)
	})

	t.Run("SparseIndexPadsWithNil", func(t *testing.T) {
		root := emptyTable()
		mustParse(t, "items[0].name").Set(&root, ValueOf("John"))
		mustParse(t, "items[2]").Set(&root, ValueOf("George"))

		items, ok := mustParse(t, "items").Get(root)
		require.True(t, ok)
		require.Len(t, items.arr, 3)

		name, ok := mustParse(t, "items[0].name").Get(root)
		require.True(t, ok)
		assert.Equal(t, "John", name.String())
		assert.Equal(t, KindNil, items.arr[1].Kind())
		assert.Equal(t, "George", items.arr[2].String())
	})

	t.Run("ClobberScalarWithTable", func(t *testing.T) {
		root := emptyTable()
		mustParse(t, "a").Set(&root, ValueOf("scalar"))
		mustParse(t, "a.b").Set(&root, ValueOf(1))

		v, ok := mustParse(t, "a.b").Get(root)
		require.True(t, ok)
		i, err := v.Int()
		require.NoError(t, err)
		assert.Equal(t, int64(1), i)
	})

	t.Run("ClobberTableWithIndex", func(t *testing.T) {
		root := emptyTable()
		mustParse(t, "a.b").Set(&root, ValueOf(1))
		mustParse(t, "a[0]").Set(&root, ValueOf("first"))

		v, ok := mustParse(t, "a[0]").Get(root)
		require.True(t, ok)
		assert.Equal(t, "first", v.String())
	})

	t.Run("FinalStepReplaces", func(t *testing.T) {
		root := emptyTable()
		mustParse(t, "key").Set(&root, ValueOf(map[string]any{"deep": true}))
		mustParse(t, "key").Set(&root, ValueOf("flat"))

		v, ok := mustParse(t, "key").Get(root)
		require.True(t, ok)
		assert.Equal(t, KindString, v.Kind())
		assert.Equal(t, "flat", v.String())
	})
}
