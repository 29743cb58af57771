package main

import (
	"bytes"
	"testing"

	"github.com/GGmuzem/polish-calc/internal/calculate"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	showAST, maxDepth = false, 256

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCalcCommand(t *testing.T) {
	out, err := execute(t, "(+ 1 (* 2 3))")
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestCalcJoinsArguments(t *testing.T) {
	out, err := execute(t, "(/", "7", "2)")
	require.NoError(t, err)
	assert.Equal(t, "3.5\n", out)
}

func TestCalcAST(t *testing.T) {
	out, err := execute(t, "--ast", "(+   1 2)")
	require.NoError(t, err)
	assert.Contains(t, out, "(+ 1 2)\n")
	assert.Contains(t, out, "calculate.Expression")
	assert.Contains(t, out, "3\n")
}

func TestCalcErrors(t *testing.T) {
	_, err := execute(t, "(/ 1 0)")
	assert.ErrorIs(t, err, calculate.ErrDivisionByZero)

	_, err = execute(t, "--max-depth", "1", "(+ 1 (+ 1 1))")
	assert.ErrorIs(t, err, calculate.ErrParse)
}
