// Package config loads the interpreter's optional TOML configuration
// file, the way chazu-maggie's manifest package loads maggie.toml: a
// small struct decoded from an optional project-root file, silently
// absent is not an error.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the config file this package looks for.
const FileName = "lurac.toml"

// Config holds the interpreter settings a project (or the user's
// home directory) may override. CLI flags take precedence over
// whatever is loaded here.
type Config struct {
	TraceExecution bool `toml:"trace_execution"`
	Disassemble    bool `toml:"disassemble"`
}

// Default returns the zero-override configuration: no trace, no
// disassembly, the VM package's own StackMax.
func Default() Config {
	return Config{}
}

// Load looks for lurac.toml in dir, then in the user's home
// directory, and decodes the first one it finds. A missing file is
// not an error — Default() is returned unchanged.
func Load(dir string) (Config, error) {
	cfg := Default()

	candidates := []string{filepath.Join(dir, FileName)}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, FileName))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	return cfg, nil
}
