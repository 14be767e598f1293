// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xpath31.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadConfig(t *testing.T) {
	path := writeConfig(t, "format = \"yaml\"\ncolor = \"off\"\n")
	cfg, err := readConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config{Format: "yaml", Color: "off"}, cfg)
}

func TestReadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "format = \"json\"\n")
	cfg, err := readConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "auto", cfg.Color)
}

func TestReadConfigMissingDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := readConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestReadConfigErrors(t *testing.T) {
	_, err := readConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = readConfig(writeConfig(t, "format = \"json\"\nindent = 4\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys")
	assert.Contains(t, err.Error(), "indent")

	_, err = readConfig(writeConfig(t, "format = \n"))
	assert.Error(t, err)
}
