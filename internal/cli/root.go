package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/lexscan/internal/logger"
	"github.com/ppiankov/lexscan/internal/model"
)

// Build information, set with -ldflags "-X ...cli.Version=..."
var (
	Version = "0.1.0"
	Commit  = "none"
)

var (
	cfgFile  string
	verbose  bool
	logLevel string
)

// flagKeys maps command flags onto configuration keys. A flag only
// overrides the file and environment when it is set explicitly.
var flagKeys = map[string]string{
	"method":        "chunking.method",
	"size":          "chunking.size",
	"overlap":       "chunking.overlap",
	"min-frequency": "keywords.min_frequency",
	"max-keywords":  "keywords.max_keywords",
	"max-phrases":   "keywords.max_phrases",
	"type":          "summary.type",
	"length":        "summary.length",
	"ner":           "capabilities.ner",
	"abstractive":   "capabilities.abstractive",
	"provider":      "llm.provider",
	"model":         "llm.model",
	"workers":       "concurrency.workers",
	"output-dir":    "output.dir",
	"addr":          "server.addr",
}

// Keys omitted from the marshalled defaults that can still come from the environment
var secretKeys = []string{"llm.api_key", "llm.base_url", "llm.http_proxy", "llm.https_proxy", "llm.no_proxy"}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lexscan",
	Short: "lexscan - legal document chunking, keywords and summaries",
	Long: `lexscan analyzes legal documents such as leases and contracts.

It splits documents into overlapping chunks, ranks legal keywords by
category, extracts clause-like key phrases and builds extractive
summaries. Named-entity recognition and abstractive summaries are
available through an optional LLM provider and fall back to the
lexical results when the provider is missing or fails.`,
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
		fmt.Fprintf(cmd.OutOrStdout(), "lexscan v%s (%s)\n", Version, Commit)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.lexscan/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in .env, the config file and LEXSCAN_* variables
func initConfig() {
	// A missing .env is normal
	_ = godotenv.Load()

	if err := registerDefaults(viper.GetViper(), model.DefaultConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering config defaults: %v\n", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".lexscan"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("LEXSCAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for _, key := range secretKeys {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// registerDefaults makes every configuration key known to viper so that
// LEXSCAN_* variables override keys that the config file leaves out
func registerDefaults(v *viper.Viper, cfg *model.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal defaults: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("unmarshal defaults: %w", err)
	}
	setDefaults(v, "", tree)
	return nil
}

func setDefaults(v *viper.Viper, prefix string, tree map[string]any) {
	for key, value := range tree {
		if prefix != "" {
			key = prefix + "." + key
		}
		if sub, ok := value.(map[string]any); ok {
			setDefaults(v, key, sub)
			continue
		}
		v.SetDefault(key, value)
	}
}

// loadConfig merges defaults, config file, environment and the explicitly
// set flags of cmd, then validates the result
func loadConfig(cmd *cobra.Command) (*model.Config, error) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && f.Changed {
			_ = viper.BindPFlag(key, f)
		}
	})

	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the zap logger for cfg. --verbose raises the level to debug.
func newLogger(cfg *model.Config) (*zap.Logger, error) {
	level := cfg.Logging.Level
	if verbose && logLevel == "" {
		level = "debug"
	}
	return logger.NewLogger(cfg.Logging.Env, level)
}
