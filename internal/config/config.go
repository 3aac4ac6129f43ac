package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/yairfalse/kulut/internal/costs"
)

// Config is the full application configuration, loaded from
// ~/.kulut/config.yaml (or an explicit --config file) with environment
// overrides under the KULUT_ prefix.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	AWS     AWSConfig     `mapstructure:"aws"`
	Costs   CostsConfig   `mapstructure:"costs"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// StorageConfig locates the snapshot store.
type StorageConfig struct {
	BaseDir string `mapstructure:"base_dir"`
}

// AWSConfig holds collector settings.
type AWSConfig struct {
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

// CostsConfig carries the cost-factor table. All values are heuristic
// monthly estimates, not billing figures.
type CostsConfig struct {
	Factors                 map[string]float64 `mapstructure:"factors"`
	DefaultFactor           float64            `mapstructure:"default_factor"`
	ModificationImpactRatio float64            `mapstructure:"modification_impact_ratio"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// Load reads configuration from file, environment, and defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.GetViper()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".kulut"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("KULUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// no config file is fine, defaults apply
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// CostFactors converts the configured table into the estimator's input,
// falling back to the built-in defaults for anything unset.
func (c *Config) CostFactors() costs.Factors {
	factors := costs.DefaultFactors()
	if len(c.Costs.Factors) > 0 {
		factors.PerType = c.Costs.Factors
	}
	if c.Costs.DefaultFactor > 0 {
		factors.Default = c.Costs.DefaultFactor
	}
	if c.Costs.ModificationImpactRatio > 0 {
		factors.ModificationRatio = c.Costs.ModificationImpactRatio
	}
	return factors
}

// expandPaths resolves ~ in configured paths.
func (c *Config) expandPaths() error {
	if strings.HasPrefix(c.Storage.BaseDir, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to expand home directory: %w", err)
		}
		c.Storage.BaseDir = filepath.Join(homeDir, strings.TrimPrefix(c.Storage.BaseDir, "~"))
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.base_dir", "~/.kulut")
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.profile", "")
	v.SetDefault("costs.default_factor", 10.0)
	v.SetDefault("costs.modification_impact_ratio", 0.1)
	v.SetDefault("logging.level", "info")
	v.SetDefault("output.format", "table")
	v.SetDefault("output.no_color", false)
}
