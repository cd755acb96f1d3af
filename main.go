package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"f1q1report/pkg/config"
	"f1q1report/pkg/logging"

	"github.com/spf13/cobra"
)

type app struct {
	configPath string
	cfg        config.Config
	logger     *slog.Logger
	stderr     io.Writer
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stderr: stderr}

	rootCmd := &cobra.Command{
		Use:           "f1report",
		Short:         "Formula 1 Q1 qualifying report",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv("F1_CONFIG"), "YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "text or json")

	rootCmd.AddCommand(
		a.generateReportCmd(),
		a.serveCmd(),
	)
	return rootCmd
}

// init loads the configuration and builds the logger. Flags win over the
// config file and the environment.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		cfg.LogFormat = format
	}
	a.cfg = cfg
	a.logger = logging.New(a.stderr, cfg.LogFormat, logging.ParseLevel(cfg.LogLevel))
	return nil
}
