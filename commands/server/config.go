package server

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/algobounty/weave/errors"
)

// ConfigFile is the name of the node configuration, looked up in the
// config directory of the home folder.
const ConfigFile = "bountyd.toml"

// Config holds the settings of a running node. Command line flags take
// precedence over values read from the file.
type Config struct {
	// Bind is the address the ABCI server listens on.
	Bind string `toml:"bind"`
	// Debug returns the call stack with every error.
	Debug bool `toml:"debug"`
	// Metrics is the address of the prometheus endpoint. Empty disables it.
	Metrics string `toml:"metrics"`
	// LogLevel is one of debug, info, error or none.
	LogLevel string `toml:"log_level"`
}

// DefaultConfig is used when no configuration file exists.
func DefaultConfig() Config {
	return Config{
		Bind:     "tcp://localhost:46658",
		Debug:    false,
		Metrics:  "",
		LogLevel: "info",
	}
}

// LoadConfig reads the TOML file at path on top of the defaults. A missing
// file is not an error.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return conf, nil
	}
	meta, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "config %s: %s", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		return conf, errors.Wrapf(errors.ErrInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return conf, nil
}

// WriteConfig stores the configuration as TOML, creating the directory if
// needed.
func WriteConfig(path string, conf Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := toml.NewEncoder(f).Encode(conf); err != nil {
		f.Close()
		return errors.Wrapf(errors.ErrInput, "encode config: %s", err)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(errors.ErrInput, "close config: %s", err)
	}
	return nil
}
