package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	check   bool
	logger  *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "apriori",
	Short: "apriori - frequent-itemset mining and association rules",
	Long: `apriori mines frequent itemsets from basket files with the A-Priori
algorithm and derives association rules scored by confidence, lift and
conviction.

A basket file holds one basket per line, items separated by whitespace:

  FRO11987 ELE17451 ELE89019 SNA90258 GRO99222
  ELE17451 GRO73461 DAI22896 SNA99873 FRO86643

Examples:
  # Mine a basket file with the default support threshold (100)
  apriori mine -i browsing.txt

  # Lower the threshold, enable consistency checks, verbose timings
  apriori mine -i browsing.txt -s 500 -c -v

  # Persist the run and serve it over HTTP
  apriori mine -i browsing.txt --db apriori.sqlite
  apriori serve --db apriori.sqlite`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if logger == nil {
			initLogger()
		}
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.apriori.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&check, "check", "c", false, "perform consistency checks")

	for _, name := range []string{"verbose", "check"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			fmt.Fprintln(os.Stderr, "failed to bind flag:", name, err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".apriori")
	}

	viper.SetEnvPrefix("APRIORI")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// initLogger sets up the slog logger from the verbosity settings.
func initLogger() {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
