// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"os"
	"path/filepath"
	"strings"

	apperr "github.com/jjtimmons/crossdome/internal/errors"
	"github.com/jjtimmons/crossdome/internal/score"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	// Root is the directory of crossdome's settings, ex: ~/.crossdome
	Root = filepath.Join(home(), ".crossdome")

	// UserSettings is the path to the user's settings file
	UserSettings = filepath.Join(Root, "config.yaml")
)

// EnvPrefix is prepended to settings read from the environment, ex: CROSSDOME_WORKERS
const EnvPrefix = "CROSSDOME"

// envReplacer maps setting names to environment names, ex: log-level to LOG_LEVEL
var envReplacer = strings.NewReplacer("-", "_")

// Config is the root-level settings struct and is a mix
// of settings available in config.yaml, the environment, and those
// available from the command line
type Config struct {
	// Weights per peptide position. Empty means unweighted
	Weights []float64 `mapstructure:"weights"`

	// Workers is the number of goroutines used to score a background
	Workers int `mapstructure:"workers"`

	// Precision is the number of decimals written for real valued columns.
	// Negative writes full precision
	Precision int `mapstructure:"precision"`

	// LogLevel is one of ERROR, WARN, INFO, DEBUG
	LogLevel string `mapstructure:"log-level"`

	// PeptideColumn is the name of the column holding peptides in a background file
	PeptideColumn string `mapstructure:"peptide-column"`

	// Allele used when a background doesn't name one
	Allele string `mapstructure:"allele"`
}

func home() string {
	h, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return h
}

// SetDefaults registers the default settings with viper
func SetDefaults(v *viper.Viper) {
	v.SetDefault("weights", []float64{})
	v.SetDefault("workers", 1)
	v.SetDefault("precision", 6)
	v.SetDefault("log-level", "INFO")
	v.SetDefault("peptide-column", "peptide")
	v.SetDefault("allele", "unknown")
}

// Setup readies the global viper instance: defaults, a .env file in the
// working directory if there is one, CROSSDOME_* environment variables and
// the settings file (UserSettings unless file is set).
func Setup(file string) error {
	return setup(viper.GetViper(), file)
}

func setup(v *viper.Viper, file string) error {
	SetDefaults(v)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return apperr.IO(err, "failed to load .env")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()

	if file == "" {
		file = UserSettings
		if _, err := os.Stat(file); os.IsNotExist(err) {
			return nil // no user settings, defaults are fine
		}
	}

	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return apperr.IO(err, "failed to read settings "+file)
	}
	return nil
}

// New returns a new Config struct populated by the global viper settings
func New() (*Config, error) {
	return fromViper(viper.GetViper())
}

func fromViper(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, apperr.Wrap(err, "unable to decode settings")
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return &c, nil
}

// PositionWeights returns the configured weights, or the unweighted default
func (c *Config) PositionWeights() (score.Weights, error) {
	if len(c.Weights) == 0 {
		return score.DefaultWeights(), nil
	}
	return score.NewWeights(c.Weights)
}
