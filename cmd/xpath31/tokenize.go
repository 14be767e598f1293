// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/santhosh-tekuri/xpath31"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] [xpath]",
	Short: "Tokenize an xpath",
	Long:  `Tokenize breaks an xpath into its tokens. The xpath is read from stdin when not given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type jsonToken struct {
	Kind   string   `json:"kind"`
	Offset int      `json:"offset"`
	Text   string   `json:"text"`
	Value  string   `json:"value,omitempty"`
	Number *float64 `json:"number,omitempty"`
}

func runTokenize(cmd *cobra.Command, args []string) error {
	xpath, err := expression(cmd, args)
	if err != nil {
		return err
	}
	tokens, err := xpath31.Tokenize(xpath)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch f := format(cmd, "pretty", "json"); f {
	case "pretty":
		writeTokensTable(out, tokens)
		return nil
	case "json":
		return writeTokensJSON(out, tokens)
	default:
		return fmt.Errorf("unknown format: %s", f)
	}
}

func writeTokensTable(w io.Writer, tokens []xpath31.Token) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Offset", "Kind", "Text", "Value"})
	table.SetAutoWrapText(false)
	for _, t := range tokens {
		value := t.Value
		if t.Kind == xpath31.NumberToken {
			value = strconv.FormatFloat(t.Number, 'g', -1, 64)
		}
		table.Append([]string{strconv.Itoa(t.Offset), t.Kind.String(), t.Text, value})
	}
	table.Render()
}

func writeTokensJSON(w io.Writer, tokens []xpath31.Token) error {
	out := make([]jsonToken, len(tokens))
	for i, t := range tokens {
		out[i] = jsonToken{Kind: t.Kind.String(), Offset: t.Offset, Text: t.Text, Value: t.Value}
		if t.Kind == xpath31.NumberToken {
			n := t.Number
			out[i].Number = &n
		}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
