package main

import (
	"context"
	"f1q1report/pkg/display"
	"f1q1report/pkg/notification"
	"f1q1report/pkg/parser"
	"f1q1report/pkg/raceerrors"
	"f1q1report/pkg/report"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	formatText  = "text"
	formatTable = "table"
)

type reportOptions struct {
	dataDir      string
	order        string
	driver       string
	ignoreErrors bool
	format       string
	notify       bool
}

func (a *app) generateReportCmd() *cobra.Command {
	opts := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "generate-report",
		Short: "Build the Q1 report from a data directory and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("order") {
				opts.order = a.cfg.Order
			}
			if !cmd.Flags().Changed("ignore-errors") {
				opts.ignoreErrors = a.cfg.IgnoreErrors
			}
			err := a.generateReport(cmd, opts)
			if err != nil {
				a.logger.Error("failed during report generation",
					"kind", raceerrors.KindOf(err).String(), "error", err, "cause", errors.Cause(err))
			}
			return err
		},
	}
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "directory with abbreviations.txt, start.log and end.log")
	cmd.Flags().StringVar(&opts.order, "order", string(display.Ascending), "sort order: asc or desc")
	cmd.Flags().StringVar(&opts.driver, "driver", "", "show a single driver by 3-letter code or full name")
	cmd.Flags().BoolVar(&opts.ignoreErrors, "ignore-errors", false, "skip invalid records instead of failing")
	cmd.Flags().StringVar(&opts.format, "format", formatText, "output format: text or table")
	cmd.Flags().BoolVar(&opts.notify, "notify", false, "send a summary to the configured Telegram chats")
	_ = cmd.MarkFlagRequired("data-dir")
	return cmd
}

func (a *app) generateReport(cmd *cobra.Command, opts *reportOptions) error {
	order, err := display.ParseOrder(opts.order)
	if err != nil {
		return err
	}
	format := strings.ToLower(opts.format)
	if format != formatText && format != formatTable {
		return fmt.Errorf("unknown output format %q", opts.format)
	}
	if _, err := os.Stat(opts.dataDir); err != nil {
		return raceerrors.MissedFile(opts.dataDir, err)
	}

	a.logger.Debug("starting report generation", "data_dir", opts.dataDir)
	builder := report.NewBuilder(parser.PolicyFromIgnoreErrors(opts.ignoreErrors), a.logger)
	r, err := builder.Build(opts.dataDir)
	if err != nil {
		return err
	}
	if len(r.Skipped) > 0 {
		a.logger.Warn("invalid records skipped", "count", len(r.Skipped))
	}

	results := r.Results
	if opts.driver != "" {
		a.logger.Debug("filtering report", "driver", opts.driver)
		results = display.Filter(results, opts.driver)
		if len(results) == 0 {
			return raceerrors.DriverNotFound(opts.driver)
		}
	}
	results = display.Sort(results, order)
	a.logger.Debug("report sorted", "order", string(order))

	out := cmd.OutOrStdout()
	if format == formatTable {
		err = display.RenderTable(out, results)
	} else {
		err = display.Render(out, results)
	}
	if err != nil {
		return err
	}

	if opts.notify {
		a.notify(cmd.Context(), r)
	}
	return nil
}

// notify is best effort: a delivery failure is logged, the report already
// printed.
func (a *app) notify(ctx context.Context, r report.Report) {
	if !a.cfg.Telegram.Enabled() {
		a.logger.Warn("notification requested but telegram is not configured")
		return
	}
	tg, err := notification.NewTelegram(a.cfg.Telegram.Token)
	if err != nil {
		a.logger.Error("error creating telegram client", "error", err)
		return
	}
	tg.AddReceivers(a.cfg.Telegram.ChatIDs...)
	if ctx == nil {
		ctx = context.Background()
	}
	_ = notification.NewManager(a.logger, tg).NotifyReport(ctx, r)
}
