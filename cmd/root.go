/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tristendillon/create-common-app/core/config"
	"github.com/tristendillon/create-common-app/core/logger"
)

var rootCmd = &cobra.Command{
	Use:   "create-common-app",
	Short: "Scaffold a JavaScript or TypeScript project with linting already wired up.",
	Long: `create-common-app generates a new project from a template, derives an
ESLint config for the chosen language and framework, installs every plugin,
shared config and peer dependency it needs, and commits the result.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return configureLogging(os.Stdout) },
	PersistentPostRun: func(cmd *cobra.Command, args []string) { closeLogFile() },
}

var logfile string
var verbose bool
var configPath string

var openLogFile *os.File

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("%v", err)
		closeLogFile()
		stop()
		os.Exit(1)
	}
}

// configureLogging points INFO and DEBUG at console. Warnings and errors
// always go to stderr, and --logfile receives every level.
func configureLogging(console io.Writer) error {
	logger.SetVerbose(verbose)
	logger.SetWriter(logger.DEBUG, console)
	logger.SetWriter(logger.INFO, console)
	logger.SetErrorWriter()

	if logfile == "" {
		return nil
	}
	f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logfile, err)
	}
	openLogFile = f
	logger.AddWriterForAll(f)
	return nil
}

func closeLogFile() {
	if openLogFile != nil {
		openLogFile.Close()
		openLogFile = nil
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cannot determine working dir: %w", err)
	}
	return config.Load(wd)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to "+config.FileName+" (defaults to the working directory)")
}
