// Package config loads paydesk settings from YAML files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/paydesk/paydesk/internal/grid"
	"github.com/paydesk/paydesk/internal/logging"
	"github.com/paydesk/paydesk/internal/pager"
)

// Environment variables read by ApplyEnv.
const (
	EnvHome       = "PAYDESK_HOME"
	EnvLogLevel   = "PAYDESK_LOG_LEVEL"
	EnvLogFormat  = "PAYDESK_LOG_FORMAT"
	EnvPageSize   = "PAYDESK_PAGE_SIZE"
	EnvProjectDir = "PAYDESK_PROJECT_DIR"
)

const (
	configDirName  = ".paydesk"
	configFileName = "config.yaml"
)

// Config is the complete paydesk configuration.
type Config struct {
	Table   TableConfig   `yaml:"table"`
	Logging LoggingConfig `yaml:"logging"`
	Session SessionConfig `yaml:"session"`
	Demo    DemoConfig    `yaml:"demo"`
	Export  ExportConfig  `yaml:"export"`
}

// TableConfig mirrors grid.Config in YAML form.
type TableConfig struct {
	EnableSorting          bool          `yaml:"enable_sorting"`
	EnableFiltering        bool          `yaml:"enable_filtering"`
	EnableRowSelection     bool          `yaml:"enable_row_selection"`
	EnablePagination       bool          `yaml:"enable_pagination"`
	EnableColumnVisibility bool          `yaml:"enable_column_visibility"`
	StickyHeader           bool          `yaml:"sticky_header"`
	PersistSelection       bool          `yaml:"persist_selection"`
	PageSize               int           `yaml:"page_size"`
	PageSizeOptions        []int         `yaml:"page_size_options"`
	MaxVisiblePages        int           `yaml:"max_visible_pages"`
	SearchDebounce         time.Duration `yaml:"search_debounce"`
	EmptyMessage           string        `yaml:"empty_message,omitempty"`
	EmptyDescription       string        `yaml:"empty_description,omitempty"`
}

// SessionConfig locates the session file.
type SessionConfig struct {
	File string `yaml:"file"`
}

// DemoConfig sizes the generated demo data.
type DemoConfig struct {
	Seed         int64         `yaml:"seed"`
	Transactions int           `yaml:"transactions"`
	Terminals    int           `yaml:"terminals"`
	Settlements  int           `yaml:"settlements"`
	Latency      time.Duration `yaml:"latency"`
	FailTerm     string        `yaml:"fail_term"`
	// CacheTTL keeps fetched pages in the interactive UI. Zero disables it.
	CacheTTL     time.Duration `yaml:"cache_ttl"`
}

// ExportConfig locates CSV exports.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// New returns the default configuration.
func New() *Config {
	dir, err := GetConfigDir()
	if err != nil {
		dir = configDirName
	}
	return &Config{
		Table: TableConfig{
			EnableSorting:          true,
			EnableFiltering:        true,
			EnableRowSelection:     true,
			EnablePagination:       true,
			EnableColumnVisibility: true,
			StickyHeader:           true,
			PageSize:               grid.DefaultPageSize,
			PageSizeOptions:        []int{10, 20, 30, 40, 50},
			MaxVisiblePages:        pager.DefaultMaxVisiblePages,
			SearchDebounce:         grid.DefaultSearchDebounce,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
			File:   filepath.Join(dir, "logs", "paydesk.log"),
		},
		Session: SessionConfig{File: filepath.Join(dir, "session.yaml")},
		Demo: DemoConfig{
			Seed:         20260105,
			Transactions: 1234,
			Terminals:    86,
			Settlements:  240,
			Latency:      250 * time.Millisecond,
			FailTerm:     "#fail",
			CacheTTL:     30 * time.Second,
		},
		Export: ExportConfig{Dir: filepath.Join(dir, "exports")},
	}
}

// GetConfigDir returns PAYDESK_HOME or ~/.paydesk.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName), nil
}

// GridConfig converts the table section into a grid.Config.
func (tc TableConfig) GridConfig() grid.Config {
	return grid.Config{
		EnableSorting:          tc.EnableSorting,
		EnableFiltering:        tc.EnableFiltering,
		EnableRowSelection:     tc.EnableRowSelection,
		EnablePagination:       tc.EnablePagination,
		EnableColumnVisibility: tc.EnableColumnVisibility,
		StickyHeader:           tc.StickyHeader,
		PersistSelection:       tc.PersistSelection,
		PageSize:               tc.PageSize,
		PageSizeOptions:        slices.Clone(tc.PageSizeOptions),
		MaxVisiblePages:        tc.MaxVisiblePages,
		SearchDebounce:         tc.SearchDebounce,
		EmptyMessage:           tc.EmptyMessage,
		EmptyDescription:       tc.EmptyDescription,
	}
}

// ApplyEnv applies environment overrides read through lookupEnv.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookupEnv(EnvPageSize); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPageSize, err)
		}
		c.Table.PageSize = n
		if !slices.Contains(c.Table.PageSizeOptions, n) && n > 0 {
			c.Table.PageSizeOptions = append(c.Table.PageSizeOptions, n)
			slices.Sort(c.Table.PageSizeOptions)
		}
	}
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Table.GridConfig().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("table: %w", err))
	}
	switch c.Logging.Format {
	case "", logging.FormatJSON, logging.FormatConsole:
	default:
		errs = append(errs, fmt.Errorf("logging: format must be %q or %q, got %q",
			logging.FormatJSON, logging.FormatConsole, c.Logging.Format))
	}
	if c.Session.File == "" {
		errs = append(errs, errors.New("session: file must be set"))
	}
	if c.Demo.Transactions < 0 || c.Demo.Terminals < 0 || c.Demo.Settlements < 0 {
		errs = append(errs, errors.New("demo: row counts must not be negative"))
	}
	if c.Demo.Latency < 0 {
		errs = append(errs, errors.New("demo: latency must not be negative"))
	}
	if c.Demo.CacheTTL < 0 {
		errs = append(errs, errors.New("demo: cache_ttl must not be negative"))
	}
	return errors.Join(errs...)
}

// LoadOptions selects the files Load reads.
type LoadOptions struct {
	// Path is an explicit config file. When empty the global config file
	// is read if it exists.
	Path string
	// ProjectDir is a resolved project directory whose config.yaml is
	// merged on top of the global one.
	ProjectDir string
	LookupEnv  func(string) (string, bool)
}

// Load builds the configuration: defaults, then the global or explicit
// file, then the project file, then the environment.
func Load(opts LoadOptions) (*Config, error) {
	cfg := New()

	path := opts.Path
	if path == "" {
		if dir, err := GetConfigDir(); err == nil {
			candidate := filepath.Join(dir, configFileName)
			if _, statErr := os.Stat(candidate); statErr == nil {
				path = candidate
			}
		}
	}
	if path != "" {
		if err := ShallowMergeYAML(cfg, path); err != nil {
			return nil, err
		}
	}

	if opts.ProjectDir != "" {
		overlay := filepath.Join(opts.ProjectDir, configFileName)
		if _, err := os.Stat(overlay); err == nil {
			if err := ShallowMergeYAML(cfg, overlay); err != nil {
				return nil, err
			}
		}
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DefaultPath returns the global config file path.
func DefaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// WriteFile writes c as YAML to path, creating the parent directory.
func (c *Config) WriteFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
