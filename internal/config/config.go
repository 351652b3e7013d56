package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/alhinc/calcsales/internal/model"
)

// Modes accepted by ForMode.
const (
	ModeBranch          = "branch"
	ModeBranchCommodity = "branch-commodity"
)

const (
	defaultExtension = "rcd"
	defaultSumDigits = 10
	maxSumDigits     = 18
)

// Config represents a calcsales.yaml run configuration.
type Config struct {
	Record    RecordConfig  `yaml:"record"`
	SumDigits int           `yaml:"sum_digits"`
	Tables    []TableConfig `yaml:"tables"`
}

// RecordConfig describes the per-day record files.
type RecordConfig struct {
	Extension string `yaml:"extension"` // "rcd" for 00000001.rcd
}

// TableConfig describes one master table. Table order is the order of the
// code lines in every record file.
type TableConfig struct {
	Name        string `yaml:"name"`
	Label       string `yaml:"label"`
	MasterFile  string `yaml:"master_file"`
	OutputFile  string `yaml:"output_file"`
	CodePattern string `yaml:"code_pattern"`
}

// Load reads a calcsales.yaml file from disk. Missing record extension and
// sum digits take their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Record.Extension == "" {
		cfg.Record.Extension = defaultExtension
	}
	if cfg.SumDigits == 0 {
		cfg.SumDigits = defaultSumDigits
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the branch-only configuration.
func Default() *Config {
	return &Config{
		Record:    RecordConfig{Extension: defaultExtension},
		SumDigits: defaultSumDigits,
		Tables:    []TableConfig{branchTable()},
	}
}

// BranchCommodity returns a configuration with branch and commodity tables.
func BranchCommodity() *Config {
	cfg := Default()
	cfg.Tables = append(cfg.Tables, commodityTable())
	return cfg
}

// ForMode returns the built-in configuration for a mode name.
func ForMode(mode string) (*Config, error) {
	switch mode {
	case "", ModeBranch:
		return Default(), nil
	case ModeBranchCommodity:
		return BranchCommodity(), nil
	default:
		return nil, fmt.Errorf("unknown mode %q (want %s or %s)", mode, ModeBranch, ModeBranchCommodity)
	}
}

func branchTable() TableConfig {
	return TableConfig{
		Name:        "branch",
		Label:       "branch",
		MasterFile:  "branch.lst",
		OutputFile:  "branch.out",
		CodePattern: `[0-9]{3}`,
	}
}

func commodityTable() TableConfig {
	return TableConfig{
		Name:        "commodity",
		Label:       "commodity",
		MasterFile:  "commodity.lst",
		OutputFile:  "commodity.out",
		CodePattern: `[A-Za-z0-9]{8}`,
	}
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	var errs []error
	if c.Record.Extension == "" {
		errs = append(errs, errors.New("record.extension is required"))
	}
	if c.SumDigits < 1 || c.SumDigits > maxSumDigits {
		errs = append(errs, fmt.Errorf("sum_digits must be between 1 and %d, got %d", maxSumDigits, c.SumDigits))
	}
	if len(c.Tables) == 0 {
		errs = append(errs, errors.New("at least one table is required"))
	}

	names := make(map[string]bool)
	files := make(map[string]bool)
	for i, t := range c.Tables {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("tables[%d]: name is required", i))
		} else if names[t.Name] {
			errs = append(errs, fmt.Errorf("tables[%d]: duplicate name %q", i, t.Name))
		}
		names[t.Name] = true

		if t.MasterFile == "" || t.OutputFile == "" {
			errs = append(errs, fmt.Errorf("tables[%d]: master_file and output_file are required", i))
		}
		for _, f := range []string{t.MasterFile, t.OutputFile} {
			if f != "" && files[f] {
				errs = append(errs, fmt.Errorf("tables[%d]: file %q used twice", i, f))
			}
			files[f] = true
		}

		if t.CodePattern == "" {
			errs = append(errs, fmt.Errorf("tables[%d]: code_pattern is required", i))
		} else if _, err := regexp.Compile(t.CodePattern); err != nil {
			errs = append(errs, fmt.Errorf("tables[%d]: code_pattern: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// TableDefs returns the table descriptors in record field order. An empty
// label falls back to the table name.
func (c *Config) TableDefs() []model.TableDef {
	defs := make([]model.TableDef, len(c.Tables))
	for i, t := range c.Tables {
		label := t.Label
		if label == "" {
			label = t.Name
		}
		defs[i] = model.TableDef{
			Name:        t.Name,
			Label:       label,
			MasterFile:  t.MasterFile,
			OutputFile:  t.OutputFile,
			CodePattern: t.CodePattern,
		}
	}
	return defs
}
