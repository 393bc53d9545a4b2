package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyTable   = "table"
	keyLogging = "logging"
	keySession = "session"
	keyDemo    = "demo"
	keyExport  = "export"
)

// knownTopLevelKeys lists the YAML keys that correspond to exported Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyTable:   true,
	keyLogging: true,
	keySession: true,
	keyDemo:    true,
	keyExport:  true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. A key present in the overlay replaces its whole
// section; fields the overlay leaves out take their default values, not
// the target's. Keys absent in the overlay are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]any
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file: nothing to merge.
	if len(overlay) == 0 {
		return nil
	}

	defaults := New()
	for key, value := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}

		// Re-marshal the single section so it can be decoded onto the
		// strongly-typed field.
		sectionBytes, marshalErr := yaml.Marshal(value)
		if marshalErr != nil {
			return fmt.Errorf("re-marshalling overlay section %q: %w", key, marshalErr)
		}

		if err = unmarshalSection(target, defaults, key, sectionBytes); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection decodes data onto a copy of the default section for key
// and stores the result in target.
func unmarshalSection(target, defaults *Config, key string, data []byte) error {
	switch key {
	case keyTable:
		v := defaults.Table
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Table = v
		return nil
	case keyLogging:
		v := defaults.Logging
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Logging = v
		return nil
	case keySession:
		v := defaults.Session
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Session = v
		return nil
	case keyDemo:
		v := defaults.Demo
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Demo = v
		return nil
	case keyExport:
		v := defaults.Export
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Export = v
		return nil
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}
