// Package appconfig loads the optional YAML operator profile that
// overrides CLI defaults.
package appconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is an optional, YAML-loaded operator profile. Every field is
// optional; zero values mean "use the CLI default".
type Profile struct {
	DefaultUnit    string                  `yaml:"default_unit"`
	OutputDir      string                  `yaml:"output_dir"`
	LogDir         string                  `yaml:"log_dir"`
	LogRetainDays  int                     `yaml:"log_retain_days"`
	ChecksumMode   string                  `yaml:"checksum_mode"` // "xor" (default) or "twos_complement"
	AlarmOverrides map[string]AlarmProfile `yaml:"alarm_overrides"`
}

// AlarmProfile overrides one tail number's alarm limits, keyed in
// Profile.AlarmOverrides by tail number.
type AlarmProfile struct {
	CHT int `yaml:"cht"`
	TIT int `yaml:"tit"`
	Oil int `yaml:"oil"`
}

// Load reads and parses a YAML profile from path. A missing file is not
// an error; it returns a zero-value Profile so callers can apply it
// unconditionally.
func Load(path string) (*Profile, error) {
	if path == "" {
		return &Profile{}, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &p, nil
}
