package main

import (
	"context"
	"f1q1report/pkg/display"
	"f1q1report/pkg/parser"
	"f1q1report/pkg/report"
	"f1q1report/pkg/store"
	"f1q1report/pkg/webserver"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

type serveOptions struct {
	dataDir      string
	addr         string
	ignoreErrors bool
}

func (a *app) serveCmd() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the Q1 report once and serve it over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("data-dir") {
				opts.dataDir = a.cfg.DataDir
			}
			if !cmd.Flags().Changed("addr") {
				opts.addr = a.cfg.WebserverAddress
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, opts)
		},
	}
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "directory with abbreviations.txt, start.log and end.log")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address")
	cmd.Flags().BoolVar(&opts.ignoreErrors, "ignore-errors", true, "skip invalid records instead of failing")
	return cmd
}

func (a *app) serve(ctx context.Context, opts *serveOptions) error {
	order, err := display.ParseOrder(a.cfg.WebOrder)
	if err != nil {
		return err
	}

	r, err := report.NewBuilder(parser.PolicyFromIgnoreErrors(opts.ignoreErrors), a.logger).Build(opts.dataDir)
	if err != nil {
		a.logger.Error("failed during report generation", "error", err)
		return err
	}

	st, err := store.NewManager(a.cfg.StoreDSN, a.logger)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Load(r.Results); err != nil {
		return err
	}

	ws, err := webserver.NewManager(st, order, opts.addr, a.logger)
	if err != nil {
		return err
	}
	for _, route := range ws.Routes() {
		a.logger.Debug("route", "route", route)
	}
	return ws.Serve(ctx)
}
