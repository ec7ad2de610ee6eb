package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Configuration defaults.
const (
	DefaultExperiment = "default"
	DefaultOutDir     = "."
	DefaultFormat     = "text"
	EnvPrefix         = "CONNECTIVE_"
)

// ConfigFileNames are searched in the working directory when no --config
// is given.
var ConfigFileNames = []string{"connective.yaml", "connective.yml"}

// Config holds the operational settings of a CLI invocation. The scientific
// settings (catalog, weights, utility) live in the CUE experiments.
type Config struct {
	Experiment     string `koanf:"experiment"`
	ExperimentsDir string `koanf:"experiments_dir"`
	OutDir         string `koanf:"out_dir"`
	Plot           string `koanf:"plot"`
	XLSX           string `koanf:"xlsx"`
	WriteCSV       bool   `koanf:"write_csv"`
	Verbose        bool   `koanf:"verbose"`
	Format         string `koanf:"format"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// flagKeys maps flag names to config keys where they differ after
// kebab-to-snake conversion.
var flagKeys = map[string]string{
	"out":    "out_dir",
	"no-csv": "write_csv",
	"config": "",
}

// LoadConfig loads configuration from defaults, a config file, environment
// variables and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
//
// Only flags that were explicitly set override lower layers.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"experiment":      DefaultExperiment,
		"experiments_dir": "",
		"out_dir":         DefaultOutDir,
		"plot":            "",
		"xlsx":            "",
		"write_csv":       true,
		"verbose":         false,
		"format":          DefaultFormat,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used, err := findConfigFile(cfgFile)
	if err != nil {
		return nil, err
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: CONNECTIVE_OUT_DIR -> out_dir
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key, mapped := flagKeys[f.Name]
			if !mapped {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			if key == "" {
				return "", nil
			}
			if f.Name == "no-csv" {
				noCSV, _ := flags.GetBool("no-csv")
				return key, !noCSV
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if !isValidFormat(cfg.Format) {
		return nil, fmt.Errorf("invalid format %q: must be one of %v", cfg.Format, ValidFormats)
	}
	return &cfg, nil
}

// findConfigFile returns the config file to read. An explicit path must
// exist; otherwise the default names are tried and a miss is not an error.
func findConfigFile(cfgFile string) (string, error) {
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return cfgFile, nil
	}
	for _, name := range ConfigFileNames {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", nil
}
