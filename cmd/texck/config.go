package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"

	"github.com/fractalqb/texck"
)

const defaultConfigFile = ".texck.toml"

// config holds the settings that can be read from a TOML file, e.g.
//
//	prefix = "EXPECT"
//	suffix = ".expect"
//	wide_caret = true
type config struct {
	// Prefix of check rules.
	Prefix string `toml:"prefix"`
	// Suffix of checks files written by prepare.
	Suffix string `toml:"suffix"`
	// WideCaret places carets in diagnostics by display width.
	WideCaret bool `toml:"wide_caret"`
}

func defaultConfig() config {
	return config{
		Prefix: texck.DefaultPrefix,
		Suffix: texck.ChecksSuffix,
	}
}

// loadConfig reads file over the defaults. With an empty file name the
// default config file is read if it exists.
func loadConfig(file string) (config, error) {
	cfg := defaultConfig()
	if file == "" {
		if _, err := os.Stat(defaultConfigFile); errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		file = defaultConfigFile
	}
	md, err := toml.DecodeFile(file, &cfg)
	if err != nil {
		return cfg, err
	}
	for _, key := range md.Undecoded() {
		log.Warn().Str("file", file).Str("key", key.String()).Msg("unknown config key")
	}
	log.Debug().Str("file", file).Str("prefix", cfg.Prefix).Msg("config loaded")
	return cfg, nil
}
