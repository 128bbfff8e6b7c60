package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/syrianarchive/archivectl/internal/api"
	"github.com/syrianarchive/archivectl/internal/model"
	"github.com/syrianarchive/archivectl/internal/session"
)

var (
	cfgFile    string
	verbose    bool
	apiURL     string
	outputJSON bool
	noCache    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "archivectl",
	Short: "archivectl - client for the documentation archive API",
	Long: `archivectl is a command-line client for a human-rights documentation
archive. It authenticates against the archive API, browses and submits
posts, comments, persons and events, drives the moderation workflow
(like, trust, report, verify), and manages verification requests and
payments.

Sessions are persisted locally; expired access tokens are refreshed
transparently and the failed call is retried once.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("archivectl v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.archivectl/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "archive API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "print raw JSON instead of tables")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "disable the local GET cache")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("api-url"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.archivectl")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match ARCHIVECTL_*
	viper.SetEnvPrefix("ARCHIVECTL")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig merges defaults, config file and flags into one Config.
func loadConfig() model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("api.base_url"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := viper.GetString("api.payment_base_url"); v != "" {
		cfg.API.PaymentBaseURL = v
	}
	if v := viper.GetString("api.session_path"); v != "" {
		cfg.API.SessionPath = v
	}
	if v := viper.GetDuration("http.timeout"); v > 0 {
		cfg.HTTP.Timeout = v
	}
	if v := viper.GetString("http.user_agent"); v != "" {
		cfg.HTTP.UserAgent = v
	}
	if viper.IsSet("http.insecure_tls") {
		cfg.HTTP.InsecureTLS = viper.GetBool("http.insecure_tls")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if viper.IsSet("rate_limit.enabled") {
		cfg.RateLimit.Enabled = viper.GetBool("rate_limit.enabled")
	}
	if v := viper.GetDuration("rate_limit.min_interval"); v > 0 {
		cfg.RateLimit.MinInterval = v
	}
	if viper.IsSet("mirror.enabled") {
		cfg.Mirror.Enabled = viper.GetBool("mirror.enabled")
	}
	if v := viper.GetInt("mirror.workers"); v > 0 {
		cfg.Mirror.Workers = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("llm.base_url"); v != "" {
		cfg.LLM.BaseURL = v
	}

	if noCache {
		cfg.Cache.Enabled = false
	}
	if outputJSON {
		cfg.Output.Format = "json"
	}
	cfg.Output.Verbose = verbose

	if cfg.Cache.Enabled && cfg.Cache.Dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Cache.Dir = home + "/.archivectl/cache"
		} else {
			cfg.Cache.Enabled = false
		}
	}

	return cfg
}

// newAPI wires the SDK from the merged configuration.
func newAPI() (*api.API, model.Config, error) {
	cfg := loadConfig()

	sessionPath := cfg.API.SessionPath
	if sessionPath == "" {
		p, err := session.DefaultPath()
		if err != nil {
			return nil, cfg, err
		}
		sessionPath = p
	}

	store := session.NewStore(sessionPath)
	return api.New(cfg, store), cfg, nil
}

// printResult renders a value as JSON or hands it to the table renderer.
func printResult(cfg model.Config, v interface{}, table func()) error {
	if cfg.Output.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	table()
	return nil
}

// cmdContext returns a context bounded by three HTTP timeouts: the call
// itself plus headroom for one refresh and one retry.
func cmdContext(cfg model.Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 3*cfg.HTTP.Timeout)
}
