// Package cmd is for command line interactions with the crossdome application
package cmd

import (
	"os"

	"github.com/jjtimmons/crossdome/config"
	"github.com/jjtimmons/crossdome/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// logger reports errors that end a command
var logger = internal.NewLogger(internal.LogLevelError)

// settingsFile is a settings file passed with --config, ~/.crossdome/config.yaml if empty
var settingsFile string

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "crossdome",
	Short: `Screen a peptide for cross-reactivity against a background of peptides.
Rank background peptides by their relatedness to the query`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&settingsFile, "config", "", "settings file (default ~/.crossdome/config.yaml)")
	RootCmd.PersistentFlags().String("log-level", "INFO", "one of ERROR, WARN, INFO, DEBUG")
	RootCmd.PersistentFlags().IntP("workers", "j", 1, "number of goroutines to score the background with")
	RootCmd.PersistentFlags().IntP("precision", "p", 6, "decimals written for real valued columns, negative for all")
	RootCmd.PersistentFlags().String("peptide-column", "peptide", "name of the peptide column in background files")

	viper.BindPFlag("log-level", RootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("workers", RootCmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("precision", RootCmd.PersistentFlags().Lookup("precision"))
	viper.BindPFlag("peptide-column", RootCmd.PersistentFlags().Lookup("peptide-column"))
}

// initConfig reads in the settings file and environment
func initConfig() {
	if err := config.Setup(settingsFile); err != nil {
		logger.Fatal("%v", err)
	}
}
