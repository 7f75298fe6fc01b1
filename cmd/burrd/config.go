// burr-solver - a six-piece burr puzzle solver and web service.
// Copyright (C) 2026 Matthew Johnson.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program; if not, write to the Free Software Foundation, Inc.,
// 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// A Config holds the server settings.
type Config struct {
	// Addr is the listen address, like ":8080".
	Addr string `yaml:"addr"`
	// Budget bounds the disassembly planner; zero means the
	// package default.
	Budget int `yaml:"budget"`
	// Storage enables the Redis/Postgres layer.  Without it the
	// server still solves, it just doesn't remember.
	Storage bool `yaml:"storage"`
}

// loadConfig reads the YAML config file if one is named (by the
// -config flag or BURRD_CONFIG) and applies the environment on
// top.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{Addr: "localhost:8080", Storage: true}
	if path == "" {
		path = os.Getenv("BURRD_CONFIG")
	}
	if path != "" {
		bytes, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("Couldn't read config %q: %v", path, err)
		}
		if err := yaml.Unmarshal(bytes, cfg); err != nil {
			return nil, fmt.Errorf("Couldn't parse config %q: %v", path, err)
		}
	}
	// Heroku environment port sensing
	if port := os.Getenv("PORT"); port != "" {
		// running as a true server
		cfg.Addr = ":" + port
	}
	return cfg, nil
}
