// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santhosh-tekuri/xpath31"
	"github.com/santhosh-tekuri/xpath31/eval"
)

// execute runs the command line args with stdin and an empty config.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return executeWithConfig(t, "", stdin, args...)
}

func executeWithConfig(t *testing.T, config, stdin string, args ...string) (string, error) {
	t.Helper()
	noColor(t)
	resetFlags(rootCmd)
	args = append([]string{"--config", writeConfig(t, config), "--color", "off"}, args...)
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores the defaults cobra keeps from earlier executions.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if v, ok := f.Value.(pflag.SliceValue); ok {
			_ = v.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestParseCommand(t *testing.T) {
	out, err := execute(t, "", "parse", "--format", "xpath", "a//b")
	require.NoError(t, err)
	assert.Equal(t, "(child::a//child::b)\n", out)

	out, err = execute(t, "1 + 2\n", "parse", "--format", "xpath")
	require.NoError(t, err)
	assert.Equal(t, "(1 + 2)\n", out)

	_, err = execute(t, "", "parse", "--format", "xpath", "a +")
	var parseErr *xpath31.ParseError
	assert.True(t, errors.As(err, &parseErr), "got %v", err)
}

func TestTokenizeCommand(t *testing.T) {
	out, err := execute(t, "", "tokenize", "--format", "json", "$x + 1")
	require.NoError(t, err)
	var tokens []jsonToken
	require.NoError(t, json.Unmarshal([]byte(out), &tokens))
	require.Len(t, tokens, 5)
	assert.Equal(t, jsonToken{Kind: "$", Offset: 0, Text: "$", Value: "$"}, tokens[0])
	assert.Equal(t, jsonToken{Kind: "name", Offset: 1, Text: "x", Value: "x"}, tokens[1])
	assert.Equal(t, "symbol", tokens[2].Kind)
	require.NotNil(t, tokens[3].Number)
	assert.Equal(t, 1.0, *tokens[3].Number)
	assert.Equal(t, jsonToken{Kind: "<eof>", Offset: 6}, tokens[4])

	out, err = execute(t, "", "tokenize", "--format", "pretty", "(: c :) 'a'")
	require.NoError(t, err)
	assert.Contains(t, out, "OFFSET")
	assert.Contains(t, out, "comment")
	assert.Contains(t, out, "string-literal")

	_, err = execute(t, "", "tokenize", "--format", "pretty", "'a")
	var lexErr *xpath31.LexError
	assert.True(t, errors.As(err, &lexErr), "got %v", err)
}

func TestEvalCommand(t *testing.T) {
	out, err := execute(t, "", "eval", "--format", "pretty", "--var", "n=2", "--var", "s=hi", "($n, $s, -3)")
	require.NoError(t, err)
	assert.Equal(t, "(2, \"hi\", -3)\n", out)

	out, err = execute(t, "", "eval", "--format", "json", "(1, 'a')")
	require.NoError(t, err)
	assert.Equal(t, "[1,\"a\"]\n", out)

	_, err = execute(t, "", "eval", "--format", "pretty", "a/b")
	assert.True(t, errors.Is(err, eval.ErrNotImplemented), "got %v", err)
}

func TestEvalContext(t *testing.T) {
	ctx, err := evalContext([]string{"a=1.5", "b=x=y", "c="})
	require.NoError(t, err)
	assert.Equal(t, eval.Sequence{1.5}, ctx.Vars["a"])
	assert.Equal(t, eval.Sequence{"x=y"}, ctx.Vars["b"])
	assert.Equal(t, eval.Sequence{""}, ctx.Vars["c"])

	for _, v := range []string{"a", "=1"} {
		_, err := evalContext([]string{v})
		assert.Error(t, err, v)
	}
}

func TestUnknownColor(t *testing.T) {
	_, err := execute(t, "", "parse", "--format", "xpath", "--color", "sometimes", "1")
	assert.Error(t, err)
}

func TestConfiguredFormat(t *testing.T) {
	out, err := executeWithConfig(t, "format = \"xpath\"\n", "", "parse", "1+2")
	require.NoError(t, err)
	assert.Equal(t, "(1 + 2)\n", out)

	// subcommands without the configured format print pretty output
	out, err = executeWithConfig(t, "format = \"yaml\"\n", "", "tokenize", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "number-literal")

	out, err = executeWithConfig(t, "format = \"yaml\"\n", "", "eval", "(1, 'a')")
	require.NoError(t, err)
	assert.Equal(t, "(1, \"a\")\n", out)

	out, err = executeWithConfig(t, "format = \"json\"\n", "", "eval", "1")
	require.NoError(t, err)
	assert.Equal(t, "[1]\n", out)

	out, err = executeWithConfig(t, "format = \"json\"\n", "", "eval", "--format", "pretty", "1")
	require.NoError(t, err)
	assert.Equal(t, "(1)\n", out)

	_, err = execute(t, "", "tokenize", "--format", "yaml", "1")
	assert.EqualError(t, err, "unknown format: yaml")
}
