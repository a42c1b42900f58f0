// Package config loads algoc.toml, the compiler's optional project
// configuration file. Nothing in the language itself requires a config
// file to exist; when one is absent, Default() is used.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Cache configures the on-disk compile cache.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Output configures the emitter's target surface language.
type Output struct {
	// ReservedWords is the set of identifiers (case-insensitive) the
	// analyzer additionally forbids as declared names, on top of the
	// language's own keyword set — the reserved words of whatever target
	// language the emitter is generating, so a user cannot declare an
	// algorithm variable that collides with one.
	ReservedWords []string `toml:"reserved_words"`
}

// Config is the full set of project-level knobs algoc.toml can set.
type Config struct {
	Output Output `toml:"output"`
	Cache  Cache  `toml:"cache"`
}

// defaultReservedWords is the C keyword set, used when algoc.toml is
// absent or omits [output] entirely: the reference emitter targets C, so
// that is what an un-configured project collides against.
var defaultReservedWords = []string{
	"int", "float", "char", "bool", "return", "void",
	"for", "while", "if", "else", "struct", "main",
}

// Default is the configuration used when no algoc.toml is found: the C
// reserved word set, caching on, in the default cache directory.
func Default() Config {
	return Config{
		Output: Output{ReservedWords: defaultReservedWords},
		Cache:  Cache{Enabled: true, Dir: ".algocache"},
	}
}

// Load reads and decodes the TOML file at path. A missing file is not an
// error: Load returns Default() unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// ReservedSet returns ReservedWords as a lookup set, upper-cased so the
// analyzer can compare case-insensitively the same way the lexer folds
// keyword spellings.
func (c Config) ReservedSet() map[string]bool {
	set := make(map[string]bool, len(c.Output.ReservedWords))
	for _, w := range c.Output.ReservedWords {
		set[upper(w)] = true
	}
	return set
}

func upper(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}
