// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// config holds defaults for command line flags.
type config struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

func defaultConfig() config {
	return config{Format: "pretty", Color: "auto"}
}

// readConfig reads the toml file at path. If path is empty, the file
// .xpath31.toml in home directory is read if it exists.
func readConfig(path string) (config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".xpath31.toml")
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return cfg, fmt.Errorf("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}
