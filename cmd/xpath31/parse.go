// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/santhosh-tekuri/xpath31"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] [xpath]",
	Short: "Parse an xpath and print its syntax tree",
	Long:  `Parse builds the syntax tree of an xpath. The xpath is read from stdin when not given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|xpath)")
}

func runParse(cmd *cobra.Command, args []string) error {
	xpath, err := expression(cmd, args)
	if err != nil {
		return err
	}
	expr, err := xpath31.Parse(xpath)
	if err != nil {
		return err
	}
	return writeExpr(cmd.OutOrStdout(), expr, format(cmd, "pretty", "json", "yaml", "xpath"))
}

func writeExpr(w io.Writer, expr xpath31.Expr, format string) error {
	switch format {
	case "pretty":
		return tree(expr).write(w, 0)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(tree(expr))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tree(expr)); err != nil {
			return err
		}
		return enc.Close()
	case "xpath":
		_, err := fmt.Fprintln(w, expr)
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
