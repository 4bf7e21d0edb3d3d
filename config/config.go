// Package config defines the inputs and outputs of a conversion run.
package config

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// Defaults applied by Default and by Read for unset fields.
const (
	DefaultOutputDir            = "."
	DefaultTracksFile           = "tracks.xml"
	DefaultCamerasFile          = "cameras.xml"
	DefaultImageIDPrefixLength  = 6
	DefaultReferenceFrameSuffix = "_FRAME"
)

var (
	// DefaultImageExtensions are the extensions of image files searched for by default.
	DefaultImageExtensions = []string{".png"}
	// DefaultLabelExtensions are the extensions of label files searched for by default.
	DefaultLabelExtensions = []string{".vic", ".vicb"}
)

// Config describes one conversion run.
type Config struct {
	Tiepoints  string `json:"tiepoints"`
	Navigation string `json:"navigation"`
	Images     string `json:"images"`
	// Labels is optional. Without it cameras are written without transform chains.
	Labels string `json:"labels,omitempty"`

	OutputDir   string `json:"output_dir,omitempty"`
	TracksFile  string `json:"tracks_file,omitempty"`
	CamerasFile string `json:"cameras_file,omitempty"`

	ImageExtensions      []string `json:"image_extensions,omitempty"`
	LabelExtensions      []string `json:"label_extensions,omitempty"`
	ImageIDPrefixLength  *int     `json:"image_id_prefix_length,omitempty"`
	ReferenceFrameSuffix *string  `json:"reference_frame_suffix,omitempty"`
}

// Default returns a config with every optional field set to its default.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.TracksFile == "" {
		cfg.TracksFile = DefaultTracksFile
	}
	if cfg.CamerasFile == "" {
		cfg.CamerasFile = DefaultCamerasFile
	}
	if len(cfg.ImageExtensions) == 0 {
		cfg.ImageExtensions = append([]string(nil), DefaultImageExtensions...)
	}
	if len(cfg.LabelExtensions) == 0 {
		cfg.LabelExtensions = append([]string(nil), DefaultLabelExtensions...)
	}
	if cfg.ImageIDPrefixLength == nil {
		n := DefaultImageIDPrefixLength
		cfg.ImageIDPrefixLength = &n
	}
	if cfg.ReferenceFrameSuffix == nil {
		s := DefaultReferenceFrameSuffix
		cfg.ReferenceFrameSuffix = &s
	}
}

// Validate ensures all parts of the config are valid. path is the config's location, used in
// error messages.
func (cfg *Config) Validate(path string) error {
	for _, field := range []struct {
		name  string
		value string
	}{
		{"tiepoints", cfg.Tiepoints},
		{"navigation", cfg.Navigation},
		{"images", cfg.Images},
	} {
		if field.value == "" {
			return utils.NewConfigValidationFieldRequiredError(path, field.name)
		}
	}
	for _, field := range []struct {
		name  string
		value string
	}{
		{"tracks_file", cfg.TracksFile},
		{"cameras_file", cfg.CamerasFile},
	} {
		if field.value == "" {
			return utils.NewConfigValidationFieldRequiredError(path, field.name)
		}
		if filepath.Base(field.value) != field.value {
			return utils.NewConfigValidationError(path,
				errors.Errorf("%s %q must be a file name, not a path", field.name, field.value))
		}
	}
	if cfg.TracksFile == cfg.CamerasFile {
		return utils.NewConfigValidationError(path,
			errors.Errorf("tracks_file and cameras_file must differ, both are %q", cfg.TracksFile))
	}
	for _, exts := range [][]string{cfg.ImageExtensions, cfg.LabelExtensions} {
		for _, ext := range exts {
			if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
				return utils.NewConfigValidationError(path, errors.Errorf("extension %q must start with a dot", ext))
			}
		}
	}
	if cfg.ImageIDPrefixLength != nil && *cfg.ImageIDPrefixLength < 0 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("image_id_prefix_length must not be negative, got %d", *cfg.ImageIDPrefixLength))
	}
	return nil
}

// PrefixLength returns the number of leading image id characters ignored when matching files.
func (cfg *Config) PrefixLength() int {
	if cfg.ImageIDPrefixLength == nil {
		return DefaultImageIDPrefixLength
	}
	return *cfg.ImageIDPrefixLength
}

// FrameSuffix returns the suffix appended to the tiepoint document's reference frame name.
func (cfg *Config) FrameSuffix() string {
	if cfg.ReferenceFrameSuffix == nil {
		return DefaultReferenceFrameSuffix
	}
	return *cfg.ReferenceFrameSuffix
}

// TracksPath returns where the track document is written.
func (cfg *Config) TracksPath() string {
	return filepath.Join(cfg.OutputDir, cfg.TracksFile)
}

// CamerasPath returns where the camera document is written.
func (cfg *Config) CamerasPath() string {
	return filepath.Join(cfg.OutputDir, cfg.CamerasFile)
}
