// =============================================================================
// International Shipment Splitter - Configuration
// =============================================================================
//
// Optional YAML configuration for the CLI. Every setting has a default, so
// running without a config file is fully supported; the file exists to
// rename output artifacts, enable input archival, extend the country alias
// table, and toggle strict reference checking.
//
// Loading follows read -> defaults -> validate. A config that shadows a
// documented country alias is rejected rather than silently merged.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/silverscreenprint/shipsplit/internal/countries"
)

// Config holds all application settings.
type Config struct {
	// RecipientFile is the file name of the recipient output table.
	// Default: "recipients.csv"
	RecipientFile string `yaml:"recipient_file"`

	// CommodityFile is the file name of the commodity output table.
	// Default: "commodities.csv"
	CommodityFile string `yaml:"commodity_file"`

	// ReportFile is the file name of the validation report.
	// Default: "validation_report.txt"
	ReportFile string `yaml:"report_file"`

	// ArchiveDir, when set, is the directory processed input manifests are
	// moved to after a successful run. Empty disables archival.
	ArchiveDir string `yaml:"archive_dir"`

	// LogLevel controls logging verbosity: "debug", "info", "warn",
	// "error". Default: "info". The --verbose flag forces "debug".
	LogLevel string `yaml:"log_level"`

	// CountryAliases extends the built-in country alias table with
	// additional name -> 2-letter-code pairs. Keys are matched
	// case-insensitively. Entries may not shadow documented aliases.
	CountryAliases map[string]string `yaml:"country_aliases"`

	// StrictReferenceCheck additionally warns when rows sharing a
	// reference number disagree on a required address field. Off by
	// default: the importer only reads the first row per reference, and
	// the default preserves that behavior exactly.
	StrictReferenceCheck bool `yaml:"strict_reference_check"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.RecipientFile == "" {
		cfg.RecipientFile = "recipients.csv"
	}
	if cfg.CommodityFile == "" {
		cfg.CommodityFile = "commodities.csv"
	}
	if cfg.ReportFile == "" {
		cfg.ReportFile = "validation_report.txt"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

func validate(cfg *Config) error {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}

	// Alias extensions are normalized to uppercase here so lookups stay a
	// single map access at standardization time.
	normalized := make(map[string]string, len(cfg.CountryAliases))
	for name, code := range cfg.CountryAliases {
		key := strings.ToUpper(strings.TrimSpace(name))
		if key == "" {
			return fmt.Errorf("country_aliases contains an empty name")
		}
		if countries.IsDocumentedAlias(key) {
			return fmt.Errorf("country_aliases may not redefine documented alias %q", name)
		}
		code = strings.ToUpper(strings.TrimSpace(code))
		if len(code) != 2 {
			return fmt.Errorf("country_aliases[%q]: code %q is not 2 letters", name, code)
		}
		normalized[key] = code
	}
	if len(normalized) > 0 {
		cfg.CountryAliases = normalized
	}

	return nil
}
