package config

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
)

// Read reads a config from the given file and validates it. ${VAR} references are replaced
// from the environment before the JSON is parsed.
func Read(filePath string) (*Config, error) {
	cfg, err := Load(filePath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(filePath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads a config from the given file without validating it, for callers that complete it
// from other sources first.
func Load(filePath string) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %q", filePath)
	}
	return decode(filePath, bytes.NewReader(buf))
}

// FromReader reads a config from the given reader and specifies where, if applicable, the file
// the reader originated from. Unset optional fields take their defaults and the result is
// validated.
func FromReader(originalPath string, r io.Reader) (*Config, error) {
	cfg, err := decode(originalPath, r)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(originalPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(originalPath string, r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "cannot parse config %q", originalPath)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Merge overlays every non-empty field of override onto cfg.
func (cfg *Config) Merge(override *Config) {
	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	set(&cfg.Tiepoints, override.Tiepoints)
	set(&cfg.Navigation, override.Navigation)
	set(&cfg.Images, override.Images)
	set(&cfg.Labels, override.Labels)
	set(&cfg.OutputDir, override.OutputDir)
	set(&cfg.TracksFile, override.TracksFile)
	set(&cfg.CamerasFile, override.CamerasFile)
	if len(override.ImageExtensions) > 0 {
		cfg.ImageExtensions = override.ImageExtensions
	}
	if len(override.LabelExtensions) > 0 {
		cfg.LabelExtensions = override.LabelExtensions
	}
	if override.ImageIDPrefixLength != nil {
		cfg.ImageIDPrefixLength = override.ImageIDPrefixLength
	}
	if override.ReferenceFrameSuffix != nil {
		cfg.ReferenceFrameSuffix = override.ReferenceFrameSuffix
	}
}
