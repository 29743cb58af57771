package calculate

import (
	"testing"

	"github.com/alecthomas/repr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTree(t *testing.T) {
	node, err := Parse("(+  1 (*   2 3))")
	require.NoError(t, err)

	expr, ok := node.(*Expression)
	require.True(t, ok, repr.String(node))
	require.NotNil(t, expr.Operator)
	assert.Equal(t, "+", *expr.Operator)

	left, ok := expr.Left.(*Number)
	require.True(t, ok, repr.String(expr.Left))
	assert.Equal(t, "1", left.Text)
	assert.Equal(t, 1, left.Pos.Line)

	inner, ok := expr.Right.(*Expression)
	require.True(t, ok, repr.String(expr.Right))
	assert.Equal(t, "*", *inner.Operator)
	assert.Equal(t, "(* 2 3)", inner.String())
}

func TestParseStandaloneNumber(t *testing.T) {
	node, err := Parse(" -12.75 ")
	require.NoError(t, err)
	number, ok := node.(*Number)
	require.True(t, ok, repr.String(node))
	assert.Equal(t, "-12.75", number.Text)
}

func TestParseKeepsMissingPositions(t *testing.T) {
	node, err := Parse("(+ 1)")
	require.NoError(t, err)
	expr := node.(*Expression)
	assert.NotNil(t, expr.Left)
	assert.Nil(t, expr.Right)

	node, err = Parse("()")
	require.NoError(t, err)
	expr = node.(*Expression)
	assert.Nil(t, expr.Operator)
	assert.Nil(t, expr.Left)
}

func TestParseAcceptsAnyOperatorToken(t *testing.T) {
	for input, op := range map[string]string{
		"(%% 1 2)": "%%",
		"(-1 2 3)": "-1",
		"(7 2 3)":  "7",
		"(-1 2)":   "-1",
	} {
		node, err := Parse(input)
		require.NoError(t, err, input)
		expr := node.(*Expression)
		require.NotNil(t, expr.Operator, input)
		assert.Equal(t, op, *expr.Operator)
	}
}

func TestNodeString(t *testing.T) {
	tests := map[string]string{
		"(+  1 (*   2 3))":     "(+ 1 (* 2 3))",
		"(+ 1)":                "(+ 1)",
		"( )":                  "()",
		"\t(/ -1.5\n(- 2 3) )": "(/ -1.5 (- 2 3))",
		"7":                    "7",
	}
	for input, expected := range tests {
		node, err := Parse(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, node.String(), input)
	}
}

func TestNodeDepth(t *testing.T) {
	tests := map[string]int{
		"1":                   1,
		"(+ 1 2)":             2,
		"(+ 1 (+ 2 (+ 3 4)))": 4,
		"(+ (* 1 2) (- 3 4))": 3,
		"(+ 1)":               2,
		"()":                  1,
	}
	for input, expected := range tests {
		node, err := Parse(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, node.Depth(), input)
	}
}
