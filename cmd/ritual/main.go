package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ritual/internal/bootstrap"
	"ritual/internal/httpapi"
	"ritual/internal/platform/calendar"
	"ritual/internal/platform/config"
	"ritual/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type cliState struct {
	dataDir string
	verbose bool
	cfg     config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	state := &cliState{}

	root := &cobra.Command{
		Use:           "ritual",
		Short:         "Unlock and screen-time ledger for digital wellbeing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(state.dataDir)
			if err != nil {
				return err
			}
			level := cfg.LogLevel
			if state.verbose {
				level = "debug"
			}
			logger, err := logging.New(level)
			if err != nil {
				return err
			}
			state.cfg = cfg
			state.logger = logger
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if state.logger != nil {
				_ = state.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&state.dataDir, "data", defaultDataDir(), "data directory (database, config, outbox)")
	root.PersistentFlags().BoolVarP(&state.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newSignalCmd(state))
	root.AddCommand(newIngestCmd(state))
	root.AddCommand(newWatchCmd(state))
	root.AddCommand(newSummaryCmd(state))
	root.AddCommand(newInstagramCmd(state))
	root.AddCommand(newSettingsCmd(state))
	root.AddCommand(newTrainingCmd(state))
	root.AddCommand(newAlertsCmd(state))
	root.AddCommand(newServeCmd(state))
	root.AddCommand(newTUICmd(state))
	return root
}

func defaultDataDir() string {
	if v := os.Getenv("RITUAL_DATA"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ritual"
	}
	return filepath.Join(home, ".ritual")
}

func loadApp(state *cliState) (*bootstrap.App, error) {
	return bootstrap.New(state.cfg, state.logger)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newSignalCmd(state *cliState) *cobra.Command {
	var pkg string
	var at int64
	var replacing bool

	cmd := &cobra.Command{
		Use:   "signal <kind>",
		Short: "Feed one device signal (unlocked, locked, notification_posted, ...)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(state)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.DeviceCLI.Signal(context.Background(), args[0], pkg, at, replacing)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s at %d handled=%t\n", out.Kind, out.TS, out.Handled)
			return nil
		},
	}
	cmd.Flags().StringVar(&pkg, "package", "", "package name for app-scoped signals")
	cmd.Flags().Int64Var(&at, "at", 0, "epoch milliseconds (default now)")
	cmd.Flags().BoolVar(&replacing, "replacing", false, "package change is an in-place update")
	return cmd
}

func newIngestCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest [file|-]",
		Short: "Dispatch newline-delimited JSON signals",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open signals: %w", err)
				}
				defer file.Close()
				r = file
			}
			app, err := loadApp(state)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.DeviceCLI.Ingest(context.Background(), r)
			if err != nil {
				return fmt.Errorf("ingest stopped after %d signals: %w", out.Processed, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "processed=%d handled=%d\n", out.Processed, out.Handled)
			return nil
		},
	}
}

func newWatchCmd(state *cliState) *cobra.Command {
	var inbox string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Ingest *.jsonl signal files dropped into an inbox directory",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(state)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.InboxWatcher(inboxDir(state, inbox)).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&inbox, "inbox", "", "inbox directory (default <data>/inbox)")
	return cmd
}

func inboxDir(state *cliState, flag string) string {
	if flag != "" {
		return flag
	}
	return filepath.Join(state.cfg.DataDir, "inbox")
}

func newSummaryCmd(state *cliState) *cobra.Command {
	var from, to string
	var asJSON bool

	summary := &cobra.Command{
		Use:   "summary",
		Short: "Recompute and print daily summaries (default: last 7 days)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, end, err := summaryRange(from, to, time.Now().UnixMilli())
			if err != nil {
				return err
			}
			app, err := loadApp(state)
			if err != nil {
				return err
			}
			defer app.Close()
			days, err := app.SummaryCLI.Range(context.Background(), start, end)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), days)
			}
			if len(days) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no days in range")
				return nil
			}
			for _, d := range days {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(),
					"%s unlocks=%d impulsive=%d (%.0f%%) reactive=%d (%.0f%%) streak=%s usage=%s instagram=%t\n",
					d.DayKey, d.UnlockCount, d.ImpulsiveCount, d.ImpulsivePct*100, d.ReactiveCount, d.ReactivePct*100,
					millis(d.BestStreakMs), millis(d.TotalUsageMs), d.InstagramInstalled)
			}
			return nil
		},
	}
	summary.Flags().StringVar(&from, "from", "", "first day (YYYY-MM-DD) or epoch ms")
	summary.Flags().StringVar(&to, "to", "", "last day (YYYY-MM-DD) or epoch ms")
	summary.Flags().BoolVar(&asJSON, "json", false, "print the full JSON rows")

	var day string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write one day's summary into the vault note",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if day == "" {
				day = calendar.DayKey(time.Now().UnixMilli())
			}
			app, err := loadApp(state)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SummaryCLI.Export(context.Background(), day)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", out.DayKey, out.Path)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&day, "day", "", "day key YYYY-MM-DD (default today)")

	summary.AddCommand(exportCmd)
	return summary
}

func millis(ms int64) time.Duration {
	return (time.Duration(ms) * time.Millisecond).Round(time.Second)
}

func newInstagramCmd(state *cliState) *cobra.Command {
	instagram := &cobra.Command{Use: "instagram", Short: "Instagram install history and relapse reasons"}

	instagram.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List install and uninstall events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(state)
			if err != nil {
				return err
			}
			defer app.Close()
			events, err := app.InstagramCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(events) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no events")
				return nil
			}
			for _, e := range events {
				reason := "-"
				if e.ReasonCaptured {
					reason = e.Reason
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", e.TS, e.Type, reason)
			}
			return nil
		},
	})

	var ts int64
	var reason, notes string
	reasonCmd := &cobra.Command{
		Use:   "reason",
		Short: "Attach a relapse reason to the install event at --ts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ts <= 0 {
				return fmt.Errorf("--ts is required")
			}
			app, err := loadApp(state)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.InstagramCLI.Reason(context.Background(), ts, reason, notes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "matched=%d\n", out.Matched)
			return nil
		},
	}
	reasonCmd.Flags().Int64Var(&ts, "ts", 0, "event timestamp in epoch ms")
	reasonCmd.Flags().StringVar(&reason, "reason", "", "reason label (default other)")
	reasonCmd.Flags().StringVar(&notes, "notes", "", "free-form notes")

	instagram.AddCommand(reasonCmd)
	return instagram
}

func newSettingsCmd(state *cliState) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Alert and detection toggles"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(state)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SettingsCLI.Show(context.Background())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	})

	settings.AddCommand(&cobra.Command{
		Use:   "set key=bool...",
		Short: "Update toggles, e.g. reactiveAlerts=false",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(state)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SettingsCLI.Set(context.Background(), args)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	})
	return settings
}

func newTrainingCmd(state *cliState) *cobra.Command {
	training := &cobra.Command{Use: "training", Short: "Phone-free training blocks"}

	var minutes int
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a training block",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(state)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.TrainingCLI.Start(context.Background(), minutes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "training until %s\n",
				time.UnixMilli(out.EndMs).In(calendar.Zone()).Format("15:04"))
			return nil
		},
	}
	startCmd.Flags().IntVar(&minutes, "minutes", 30, "block length in minutes")

	var at int64
	breakCmd := &cobra.Command{
		Use:   "break",
		Short: "Mark the running block as broken",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(state)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.TrainingCLI.Break(context.Background(), at)
			if err != nil {
				return err
			}
			if !out.Active && !out.Broken {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no training running")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "active=%t broken=%t\n", out.Active, out.Broken)
			return nil
		},
	}
	breakCmd.Flags().Int64Var(&at, "at", 0, "epoch milliseconds (default now)")

	training.AddCommand(startCmd, breakCmd)

	training.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Weekly training stats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(state)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.TrainingCLI.Stats(context.Background())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	})

	training.AddCommand(&cobra.Command{
		Use:   "history",
		Short: "List recorded training blocks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(state)
			if err != nil {
				return err
			}
			defer app.Close()
			sessions, err := app.TrainingCLI.History(context.Background())
			if err != nil {
				return err
			}
			for _, s := range sessions {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\tsuccess=%t\n", s.Start, millis(s.DurationMs), s.Success)
			}
			return nil
		},
	})
	return training
}

func newAlertsCmd(state *cliState) *cobra.Command {
	alerts := &cobra.Command{Use: "alerts", Short: "Delivered alerts"}

	var limit int
	tailCmd := &cobra.Command{
		Use:   "tail",
		Short: "Print the most recent alerts from the outbox",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(state)
			if err != nil {
				return err
			}
			defer app.Close()
			items, err := app.Outbox.Tail(context.Background(), limit)
			if err != nil {
				return err
			}
			for _, a := range items {
				when := time.UnixMilli(a.AtMs).In(calendar.Zone()).Format(time.DateTime)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %-18s %s: %s\n", when, a.Key, a.Title, a.Body)
			}
			return nil
		},
	}
	tailCmd.Flags().IntVar(&limit, "limit", 20, "number of alerts")
	alerts.AddCommand(tailCmd)
	return alerts
}

func newServeCmd(state *cliState) *cobra.Command {
	var addr, inbox string
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API (and optionally the inbox watcher)",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(state)
			if err != nil {
				return err
			}
			defer app.Close()
			if addr == "" {
				addr = state.cfg.HTTPAddr
			}
			if state.cfg.SharedSecret == "" {
				state.logger.Warn("http api running without a shared secret")
			}
			server := httpapi.NewServer(httpapi.Deps{
				Device:    app.Usecases.Device,
				Instagram: app.Usecases.Instagram,
				Settings:  app.Usecases.Settings,
				Training:  app.Usecases.Training,
				Summary:   app.Usecases.Summary,
				Secret:    state.cfg.SharedSecret,
				Logger:    state.logger.Named("http"),
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return server.Run(gctx, addr) })
			if watch {
				g.Go(func() error { return app.InboxWatcher(inboxDir(state, inbox)).Run(gctx) })
			}
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "also watch the signal inbox")
	cmd.Flags().StringVar(&inbox, "inbox", "", "inbox directory (default <data>/inbox)")
	return cmd
}

func newTUICmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			// The dashboard owns the terminal; keep log lines off it.
			app, err := bootstrap.New(state.cfg, logging.Nop())
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}
