/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/tokenuses/pkg/config"
	"github.com/ssargent/tokenuses/pkg/metrics"
	"github.com/ssargent/tokenuses/pkg/record"
	"github.com/ssargent/tokenuses/pkg/uses"
)

type envKey struct{}

// env is what every subcommand runs with.
type env struct {
	config  *config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	codec   *record.Codec[uses.Uses]
}

func envFrom(cmd *cobra.Command) (*env, error) {
	e, ok := cmd.Context().Value(envKey{}).(*env)
	if !ok {
		return nil, fmt.Errorf("command environment not initialised")
	}
	return e, nil
}

// NewRootCmd builds the uses command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "uses",
		Short: "Inspect and build token Uses records",
		Long: `uses encodes, decodes and verifies the 17 byte "Uses" record that
tracks how often a token may still be used.

Records are read and written as hex, base64 or base58 strings. Account data
can be checked against its expected owner program before it is decoded.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default "+config.GetDefaultConfigPath()+" if present)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("metrics-file", "", "Write Prometheus metrics to this file after the command")
	flags.StringP("encoding", "e", "", "Data encoding: hex, base64 or base58")
	flags.StringP("output", "o", "", "Output format: text, yaml or json")

	rootCmd.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newVerifyCmd(),
		newSchemaCmd(),
		newInitCmd(),
	)

	// Metrics are flushed after RunE whatever it returns, so failed
	// operations reach the textfile too. Commands with their own pre-run
	// hook skip setup and have nothing to flush.
	for _, c := range rootCmd.Commands() {
		if c.RunE == nil || c.PersistentPreRunE != nil {
			continue
		}
		c.RunE = flushingMetrics(c.RunE)
	}

	return rootCmd
}

func flushingMetrics(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		runErr := run(cmd, args)
		if err := writeMetrics(cmd); err != nil && runErr == nil {
			return err
		}
		return runErr
	}
}

func writeMetrics(cmd *cobra.Command) error {
	e, err := envFrom(cmd)
	if err != nil {
		return err
	}
	if e.config.Metrics.Textfile == "" {
		return nil
	}
	if err := e.metrics.WriteTextfile(e.config.Metrics.Textfile); err != nil {
		e.logger.Warn("failed to write metrics", "path", e.config.Metrics.Textfile, "error", err)
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	e.logger.Debug("metrics written", "path", e.config.Metrics.Textfile)
	return nil
}

// setup loads configuration, applies flag overrides and prepares the logger,
// metrics and codec for the command being run.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	overrides := []struct {
		flag   string
		target *string
	}{
		{"log-level", &cfg.Logging.Level},
		{"metrics-file", &cfg.Metrics.Textfile},
		{"encoding", &cfg.Codec.Encoding},
		{"output", &cfg.Codec.Output},
	}
	for _, o := range overrides {
		if v, _ := cmd.Flags().GetString(o.flag); v != "" {
			*o.target = v
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cmd, cfg.Logging.Level)
	m := metrics.NewMetrics()

	e := &env{
		config:  cfg,
		logger:  logger,
		metrics: m,
		codec:   uses.NewCodec(record.WithObserver(m)),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, envKey{}, e))
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.LoadConfig(path)
	}

	path = config.GetDefaultConfigPath()
	if config.ConfigExists(path) {
		return config.LoadConfig(path)
	}
	return config.DefaultConfig(), nil
}

func newLogger(cmd *cobra.Command, level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
