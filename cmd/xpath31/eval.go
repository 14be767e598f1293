// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/santhosh-tekuri/xpath31/eval"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] [xpath]",
	Short: "Evaluate a literal xpath",
	Long: `Eval evaluates an xpath built from literals, sequences, negation and variables.
The xpath is read from stdin when not given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	evalCmd.Flags().StringArray("var", nil, "bind variable, as name=value (repeatable)")
}

func runEval(cmd *cobra.Command, args []string) error {
	xpath, err := expression(cmd, args)
	if err != nil {
		return err
	}
	vars, err := cmd.Flags().GetStringArray("var")
	if err != nil {
		return fmt.Errorf("failed to get var flag: %w", err)
	}
	ctx, err := evalContext(vars)
	if err != nil {
		return err
	}
	result, err := eval.Eval(xpath, ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch f := format(cmd, "pretty", "json"); f {
	case "pretty":
		_, err = fmt.Fprintln(out, result)
		return err
	case "json":
		return json.NewEncoder(out).Encode(result)
	default:
		return fmt.Errorf("unknown format: %s", f)
	}
}

// evalContext binds each name=value to a single item sequence.
// Values that parse as numbers are bound as numbers.
func evalContext(vars []string) (*eval.Context, error) {
	ctx := &eval.Context{Vars: make(map[string]eval.Sequence)}
	for _, v := range vars {
		name, value, ok := strings.Cut(v, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid variable binding %q, want name=value", v)
		}
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			ctx.Vars[name] = eval.Sequence{f}
		} else {
			ctx.Vars[name] = eval.Sequence{value}
		}
	}
	return ctx, nil
}
