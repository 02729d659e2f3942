package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/psytests/psytests/internal/config"
	"github.com/psytests/psytests/internal/questionnaire"
	"github.com/psytests/psytests/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "psytests",
	Short: "Terminal self-assessment questionnaire",
	Long: "PsyTests walks you through a short personality questionnaire, scores it by " +
		"category and compares the result with a reference average.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("config", "", "Path to the TOML config file (default $XDG_CONFIG_HOME/psytests/config.toml)")
	f.String("db", "", "Path to SQLite database file (overrides PSYTESTS_DB env var)")
	f.String("lang", "", "Question bank locale, e.g. ru or en (overrides PSYTESTS_LANG and LANG)")
	f.String("bank", "", "Load the question bank from a YAML file instead of the built-in one")
	f.Bool("no-insights", false, "Disable AI commentary on results")
	f.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9464")

	rootCmd.AddCommand(quickCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadConfig layers flags over the file and environment configuration.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath, _ = flags.GetString("db")
	}
	if flags.Changed("lang") {
		cfg.Locale, _ = flags.GetString("lang")
	}
	if flags.Changed("bank") {
		cfg.BankFile, _ = flags.GetString("bank")
	}
	if off, _ := flags.GetBool("no-insights"); off {
		cfg.Insights = false
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr, _ = flags.GetString("metrics-addr")
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path, then the default
// XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// openStoreFromFlags is the shortcut for subcommands that only need the
// database.
func openStoreFromFlags(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return openStore(cfg)
}

func loadBank(cfg config.Config) (*questionnaire.Bank, error) {
	if cfg.BankFile != "" {
		return questionnaire.Load(cfg.BankFile)
	}
	return questionnaire.Default(cfg.Locale)
}
