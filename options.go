package srf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Suffixes appended to the PNG base name for the extra output files.
const (
	DefaultMaskSuffix = "_mask"
	DefaultInfoSuffix = "_info.txt"
)

// Options adjust how a Converter names its outputs and what it writes into
// the header of a freshly built file. The zero value selects the package
// defaults.
type Options struct {
	Product    string `yaml:"product"`
	Version    string `yaml:"version"`
	PartNumber string `yaml:"part_number"`
	MaskSuffix string `yaml:"mask_suffix"`
	InfoSuffix string `yaml:"info_suffix"`
}

// LoadOptions reads options from a YAML file. A missing file is not an
// error; the zero Options are returned so the defaults apply.
func LoadOptions(path string) (Options, error) {
	var opts Options

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return opts, nil
	}
	if err != nil {
		return opts, err
	}

	if err := yaml.Unmarshal(b, &opts); err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// OptionsPath returns the per-user location of the options file, or the
// empty string if there is no user configuration directory.
func OptionsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "srf", "config.yaml")
}
