package cmd

import (
	"log"
	"time"

	"github.com/jeremyhunt/jobscout/internal/jobapi"
	"github.com/jeremyhunt/jobscout/internal/profile"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jobscout"
)

type Config struct {
	Backend *BackendConfig       `mapstructure:"backend"`
	Search  *jobapi.SearchParams `mapstructure:"search"`
	Profile map[string]any       `mapstructure:"profile"`
	Weights *profile.Weights     `mapstructure:"weights"`
}

type BackendConfig struct {
	URL           string        `mapstructure:"url"`
	HealthTimeout time.Duration `mapstructure:"health-timeout"`
	SearchTimeout time.Duration `mapstructure:"search-timeout"`
	RateLimit     float64       `mapstructure:"rate-limit"`
	Burst         int           `mapstructure:"burst"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobscout ranks job postings against your profile, falling back to a local dataset when the backend is down",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("backend.url", "JOBSCOUT_BACKEND_URL"); err != nil {
		log.Fatalf("binding JOBSCOUT_BACKEND_URL environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobscout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// An explicitly requested config file must parse.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")

	// Without a config file the built-in defaults cover everything.
	_ = viper.ReadInConfig()
}

func getConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Backend == nil {
		config.Backend = &BackendConfig{}
	}
	if config.Search == nil {
		config.Search = &jobapi.SearchParams{}
	}

	return &config, nil
}
