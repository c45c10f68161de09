package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dynoinc/shiftboard/internal/dashboard"
	"github.com/dynoinc/shiftboard/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print dashboard reports as text tables",
}

var reportOverviewCmd = &cobra.Command{
	Use:   "overview MONTH",
	Short: "Fleet overview for a month",
	Args:  cobra.ExactArgs(1),
	RunE: withService(func(ctx context.Context, svc *dashboard.Service, out io.Writer, args []string) error {
		view, err := svc.Overview(ctx, args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, report.NewGenerator().Overview(view))
		return err
	}),
}

var reportShiftCmd = &cobra.Command{
	Use:   "shift MONTH SHIFT",
	Short: "Every metric of one shift for a month",
	Args:  cobra.ExactArgs(2),
	RunE: withService(func(ctx context.Context, svc *dashboard.Service, out io.Writer, args []string) error {
		detail, err := svc.ShiftDetail(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, report.NewGenerator().Shift(detail))
		return err
	}),
}

var reportCompareCmd = &cobra.Command{
	Use:   "compare MONTH SHIFT SHIFT [SHIFT]",
	Short: "Side-by-side comparison of two or three shifts",
	Args:  cobra.RangeArgs(1+dashboard.MinSelected, 1+dashboard.MaxSelected),
	RunE: withService(func(ctx context.Context, svc *dashboard.Service, out io.Writer, args []string) error {
		res, err := svc.Compare(ctx, args[0], args[1:])
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, report.NewGenerator().Comparison(res))
		return err
	}),
}

var reportWeeklyCmd = &cobra.Command{
	Use:   "weekly MONTH SHIFT METRIC",
	Short: "Weekly breakdown of one metric",
	Args:  cobra.ExactArgs(3),
	RunE: withService(func(ctx context.Context, svc *dashboard.Service, out io.Writer, args []string) error {
		w, err := svc.Weekly(ctx, args[0], args[1], args[2])
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, report.NewGenerator().Weekly(w))
		return err
	}),
}

func init() {
	reportCmd.AddCommand(reportOverviewCmd, reportShiftCmd, reportCompareCmd, reportWeeklyCmd)
}

func withService(run func(context.Context, *dashboard.Service, io.Writer, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, cleanup, err := newService(ctx, nil)
		if err != nil {
			return fmt.Errorf("setting up dashboard: %w", err)
		}
		defer func() {
			if err := cleanup(ctx); err != nil {
				slog.Warn("error shutting down tracing", "error", err)
			}
		}()

		return run(ctx, svc, cmd.OutOrStdout(), args)
	}
}
