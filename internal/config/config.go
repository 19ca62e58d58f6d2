package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileName is the optional per-project configuration file.
const FileName = "qrlgen.toml"

// Build holds the [build] section of qrlgen.toml.
type Build struct {
	Target string `toml:"target"`
	Scope  string `toml:"scope"`
	Out    string `toml:"out"`
}

// Config is the full qrlgen.toml contents.
type Config struct {
	Build Build `toml:"build"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Build: Build{
			Target: "dev",
			Out:    ".qrlgen",
		},
	}
}

// Load reads a qrlgen.toml. A missing file is not an error; the defaults
// apply, and any key the file omits keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}
