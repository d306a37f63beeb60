package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/docgrade/docgrade/internal/config"
	"github.com/docgrade/docgrade/internal/logging"
)

const app = "docgrade"

var (
	cfgFile string
	verbose bool

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "docgrade scores structured document extractions against ground truth",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose/debug output")
	rootCmd.PersistentFlags().String("ledger-dir", "", "directory holding per-source ledgers")

	_ = viper.BindPFlag("ledger_dir", rootCmd.PersistentFlags().Lookup("ledger-dir"))
	_ = viper.BindEnv("ledger_dir", "DOCGRADE_LEDGER_DIR")
	_ = viper.BindEnv("listen_addr", "DOCGRADE_LISTEN_ADDR")
}

// loadConfig resolves the effective configuration: file values first,
// then environment and flag overrides through viper.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, err
	}
	if dir := viper.GetString("ledger_dir"); dir != "" {
		cfg.LedgerDir = dir
	}
	if addr := viper.GetString("listen_addr"); addr != "" {
		cfg.ListenAddr = addr
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogLevel, verbose)
}
