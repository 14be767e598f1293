// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command xpath31 tokenizes, parses and evaluates XPath 3.1 expressions.
package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:               "xpath31",
	Short:             "XPath 3.1 lexer and parser",
	Long:              `xpath31 tokenizes and parses XPath 3.1 expressions and prints the result.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// cfg is loaded before any subcommand runs.
var cfg config

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(evalCmd)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.xpath31.toml)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if cfg, err = readConfig(path); err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("color"); f != nil && f.Changed {
		cfg.Color = f.Value.String()
	}
	switch cfg.Color {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stderr)
	default:
		return fmt.Errorf("invalid color %q, want auto, on or off", cfg.Color)
	}
	return nil
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// expression returns the xpath given as argument, or read from stdin.
func expression(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read xpath: %w", err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

// format returns the --format flag, or the configured format if it is
// one of supported. Otherwise it returns "pretty".
func format(cmd *cobra.Command, supported ...string) string {
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		return f.Value.String()
	}
	if slices.Contains(supported, cfg.Format) {
		return cfg.Format
	}
	return "pretty"
}
