package cmd

import (
	"context"
	"errors"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/storacha/api3ctl/cli/cmd/calldata"
	"github.com/storacha/api3ctl/cli/cmd/feeds"
	"github.com/storacha/api3ctl/cli/cmd/governance"
	"github.com/storacha/api3ctl/cli/cmd/metrics"
	"github.com/storacha/api3ctl/cli/cmd/network"
	"github.com/storacha/api3ctl/cli/cmd/staking"
	"github.com/storacha/api3ctl/cli/cmd/token"
	"github.com/storacha/api3ctl/cli/config"
)

var log = logging.Logger("api3ctl")

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "api3ctl",
	Short: "A CLI for reading API3 data feeds, token, staking and governance contracts",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl, err := logging.LevelFromString(viper.GetString("log_level"))
		if err != nil {
			return err
		}
		logging.SetAllLoggers(lvl)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.PersistentFlags().StringP("network", "n", "", "network id, see 'api3ctl network list' (default ethereum)")
	rootCmd.PersistentFlags().String("rpc-url", "", "JSON-RPC endpoint of a node on the selected network")
	rootCmd.PersistentFlags().Uint("rpc-retries", 0, "attempts per RPC request on transport failures (default 3)")
	rootCmd.PersistentFlags().Duration("rpc-timeout", 0, "timeout of a single RPC request (default 30s)")

	rootCmd.PersistentFlags().String("private-key", "", "hex private key, only used to derive the sender of prepared transactions")
	rootCmd.PersistentFlags().String("keystore-path", "", "path to keystore")
	rootCmd.PersistentFlags().String("keystore-password", "", "password to decrypt keystore")

	rootCmd.PersistentFlags().String("market-api-url", "", "base URL of the API3 market API")
	rootCmd.PersistentFlags().String("market-api-key", "", "API key for the market API")
	rootCmd.PersistentFlags().String("database-url", "", "PostgreSQL URL for feed history")

	rootCmd.PersistentFlags().StringP("output", "o", "json", "output format: json or table")
	rootCmd.PersistentFlags().String("log-level", "error", "log level: debug, info, warn, error")

	for key, flag := range map[string]string{
		"network":           "network",
		"rpc_url":           "rpc-url",
		"rpc_retries":       "rpc-retries",
		"rpc_timeout":       "rpc-timeout",
		"private_key":       "private-key",
		"keystore_path":     "keystore-path",
		"keystore_password": "keystore-password",
		"market_api_url":    "market-api-url",
		"market_api_key":    "market-api-key",
		"database_url":      "database-url",
		"output":            "output",
		"log_level":         "log-level",
	} {
		cobra.CheckErr(viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)))
	}

	rootCmd.AddCommand(network.Cmd)
	rootCmd.AddCommand(feeds.Cmd)
	rootCmd.AddCommand(token.Cmd)
	rootCmd.AddCommand(staking.Cmd)
	rootCmd.AddCommand(governance.Cmd)
	rootCmd.AddCommand(calldata.Cmd)
	rootCmd.AddCommand(metrics.Cmd)
}

func initConfig() {
	for key, value := range config.Defaults {
		viper.SetDefault(key, value)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("API3CTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Don't error if config file is not found
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			cobra.CheckErr(err)
		}
	} else {
		log.Debugw("using config file", "path", viper.ConfigFileUsed())
	}
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
