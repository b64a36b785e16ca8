// Copyright 2026 The shimctl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
)

// Config holds shimctl's on-disk configuration, loaded from
// $HOME/.shimctl.yaml (or the file named by -conf) and overridable by
// flags. Keys are not case-sensitive.
type Config struct {
	DevPath string `koanf:"devpath"`
	Home    string `koanf:"home"`
}

func defaultConfig() Config {
	return Config{
		DevPath: "/dev/mem",
		Home:    ".",
	}
}

// loadConfig layers defaults, then the YAML file at path if present. A
// missing file is not an error: defaults stand on their own.
func loadConfig(path string) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config{}, err
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if !strings.Contains(err.Error(), "no such file") {
			return Config{}, err
		}
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
