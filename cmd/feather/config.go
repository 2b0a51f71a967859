package main

import (
	"os"
	"path/filepath"

	"github.com/naoina/toml"
)

// config holds CLI-wide defaults loaded from ~/.featherrc.toml (SPEC_FULL.md
// §A.3), overridden by flags once cobra parses them.
type config struct {
	RecursionLimit int    `toml:"recursion_limit"`
	TraceVerbose   bool   `toml:"trace_verbose"`
	Prompt         string `toml:"prompt"`
}

func defaultConfig() config {
	return config{
		RecursionLimit: 1000,
		TraceVerbose:   false,
		Prompt:         "feather> ",
	}
}

// loadConfig reads ~/.featherrc.toml if present, the same way
// ProbeChain-go-probe's gprobe loads its node config with naoina/toml.
// A missing file is not an error: the defaults stand.
func loadConfig() (config, error) {
	cfg := defaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}
	path := filepath.Join(home, ".featherrc.toml")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
