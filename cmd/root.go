package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/bizfit/internal/ranking"
	"github.com/spigell/bizfit/internal/traits"
)

const (
	app       = "bizfit"
	envPrefix = "BIZFIT"
)

type Config struct {
	CatalogFile string         `mapstructure:"catalog-file"`
	Spacing     *SpacingConfig `mapstructure:"spacing"`
	Cache       *CacheConfig   `mapstructure:"cache"`
	Metrics     *MetricsConfig `mapstructure:"metrics"`
}

type SpacingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Mode    string `mapstructure:"mode"`
	MinGap  int    `mapstructure:"min-gap"`
	MaxGap  int    `mapstructure:"max-gap"`
	Seed    int64  `mapstructure:"seed"`
}

type CacheConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Address      string        `mapstructure:"address"`
	DB           int           `mapstructure:"db"`
	Password     string        `mapstructure:"password" json:"-"`
	PasswordFile string        `mapstructure:"password-file"`
	TTL          time.Duration `mapstructure:"ttl"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

var defaults = map[string]any{
	"catalog-file":        "",
	"spacing.enabled":     true,
	"spacing.mode":        ranking.ModeSequence,
	"spacing.min-gap":     ranking.DefaultMinGap,
	"spacing.max-gap":     ranking.DefaultMaxGap,
	"spacing.seed":        0,
	"cache.enabled":       false,
	"cache.address":       "localhost:6379",
	"cache.db":            0,
	"cache.password":      "",
	"cache.password-file": "",
	"cache.ttl":           "24h",
	"metrics.textfile":    "",
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "bizfit ranks business models against a questionnaire answer set",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is bizfit.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("catalog-file", "", "business model catalog in yaml (default is the built-in catalog)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("catalog-file", rootCmd.PersistentFlags().Lookup("catalog-file"))

	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

func initConfig() {
	// version does not need any configuration
	if versionCmd.CalledAs() != "" {
		return
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Fatalf("loading .env: %s", err)
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless it was passed explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		return nil, errors.New("config is empty")
	}
	if config.Spacing == nil {
		config.Spacing = &SpacingConfig{Enabled: true, MinGap: ranking.DefaultMinGap, MaxGap: ranking.DefaultMaxGap}
	}
	if config.Cache == nil {
		config.Cache = &CacheConfig{}
	}
	if config.Metrics == nil {
		config.Metrics = &MetricsConfig{}
	}

	return config, nil
}

// spacerFromConfig builds the spacing settings described by cfg.
func spacerFromConfig(cfg *SpacingConfig) (ranking.Spacer, error) {
	picker, err := ranking.NewPicker(strings.ToLower(strings.TrimSpace(cfg.Mode)), cfg.Seed)
	if err != nil {
		return ranking.Spacer{}, err
	}

	spacer := ranking.Spacer{MinGap: cfg.MinGap, MaxGap: cfg.MaxGap, Picker: picker}
	if err := spacer.Validate(); err != nil {
		return ranking.Spacer{}, err
	}
	return spacer, nil
}

// loadCatalog returns the configured catalog, or the built-in one.
func loadCatalog(path string) (*traits.Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return traits.Builtin(), nil
	}

	c, err := traits.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return c, nil
}
