package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"mugrush/internal/bootstrap"
	"mugrush/internal/modules/drinking/dto"
	"mugrush/internal/platform/config"
)

func main() {
	// a missing .env is fine; the environment and flags still apply
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string
	var debug bool

	root := &cobra.Command{
		Use:           "mugrush",
		Short:         "Chug to the rhythm, don't fall over",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", defaultDataDir(), "data directory (settings, run journal, history db); env "+config.HomeEnv)
	root.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging to <data>/.mugrush/mugrush.log")

	load := func() (*bootstrap.App, error) {
		cfg, err := config.New(dataDir, debug)
		if err != nil {
			return nil, err
		}
		return bootstrap.New(cfg)
	}

	root.AddCommand(newPlayCmd(load))
	root.AddCommand(newSimulateCmd(load))
	root.AddCommand(newHistoryCmd(load))
	root.AddCommand(newSettingsCmd(load))
	return root
}

func defaultDataDir() string {
	if dir := os.Getenv(config.HomeEnv); dir != "" {
		return dir
	}
	return "."
}

type appLoader func() (*bootstrap.App, error)

func newPlayCmd(load appLoader) *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a run in the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app, seed)
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for the first run (0 picks one)")
	return cmd
}

func newSimulateCmd(load appLoader) *cobra.Command {
	var seed int64
	var ticksPerSecond int
	var reaction, missRate, maxSeconds float64
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a headless run with a bot and record it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			out, err := app.DrinkingCLI.Simulate(ctx, seed, ticksPerSecond, reaction, missRate, maxSeconds)
			if err != nil {
				return err
			}
			printRun(cmd, out)
			return nil
		},
	}
	defaults := dto.DefaultSimulateInput()
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().IntVar(&ticksPerSecond, "ticks-per-second", defaults.TicksPerSecond, "simulated frame rate")
	cmd.Flags().Float64Var(&reaction, "reaction", defaults.ReactionSeconds, "bot reaction time in seconds")
	cmd.Flags().Float64Var(&missRate, "miss-rate", defaults.MissRate, "chance the bot leans the wrong way on a wobble (0..1)")
	cmd.Flags().Float64Var(&maxSeconds, "max-seconds", defaults.MaxSeconds, "give up after this much game time")
	return cmd
}

func newHistoryCmd(load appLoader) *cobra.Command {
	var limit int
	history := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			runs, err := app.DrinkingCLI.History(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no runs")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tSTARTED\tOUTCOME\tMUGS\tCHUGS\tSTAGGERS\tTIME")
			for _, r := range runs {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d/%d\t%d\t%.1fs\n",
					r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Outcome,
					r.Mugs, r.Chugs, r.Attempts, r.Staggers, r.GameSeconds)
			}
			return w.Flush()
		},
	}
	history.Flags().IntVar(&limit, "limit", 20, "number of runs to list")

	var raw bool
	show := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run and its journal note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			detail, err := app.DrinkingCLI.Run(context.Background(), strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			if detail.Note == "" {
				printRun(cmd, detail.Run)
				return nil
			}
			note := detail.Note
			if !raw {
				if rendered, err := glamour.Render(note, "dark"); err == nil {
					note = rendered
				}
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), note)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note=%s\n", detail.Run.JournalPath)
			return nil
		},
	}
	show.Flags().BoolVar(&raw, "raw", false, "print the note as plain markdown")

	history.AddCommand(show)
	return history
}

func newSettingsCmd(load appLoader) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Game tuning file"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.DrinkingCLI.Settings(context.Background())
			if err != nil {
				return err
			}
			printSettings(cmd, out)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default settings file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.DrinkingCLI.InitSettings(context.Background(), force)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "settings written: %s\n", out.Path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	settings.AddCommand(initCmd)
	return settings
}

func printRun(cmd *cobra.Command, r dto.RunOutput) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "run %s seed=%d outcome=%s\n", r.ID, r.Seed, r.Outcome)
	_, _ = fmt.Fprintf(out, "mugs=%d chugs=%d attempts=%d misses=%d staggers=%d\n", r.Mugs, r.Chugs, r.Attempts, r.Misses, r.Staggers)
	_, _ = fmt.Fprintf(out, "wobbles passed=%d failed=%d best_streak=%d fastest=%.3fs time=%.1fs\n", r.WobblesPassed, r.WobblesFailed, r.BestStreak, r.MinTimeLimit, r.GameSeconds)
	if r.Error != "" {
		_, _ = fmt.Fprintf(out, "error: %s\n", r.Error)
	}
	if r.JournalPath != "" {
		_, _ = fmt.Fprintf(out, "note=%s\n", r.JournalPath)
	}
}

func printSettings(cmd *cobra.Command, s dto.SettingsOutput) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "file\t%s\n", s.Path)
	_, _ = fmt.Fprintf(w, "base_time_limit\t%g\n", s.BaseTimeLimit)
	_, _ = fmt.Fprintf(w, "cutoff_multiplier\t%g\n", s.CutoffMultiplier)
	_, _ = fmt.Fprintf(w, "drink_timing_limit\t%g\n", s.DrinkTimingLimit)
	_, _ = fmt.Fprintf(w, "chugs_per_mug\t%d\n", s.ChugsPerMug)
	_, _ = fmt.Fprintf(w, "mug_target\t%d\n", s.MugTarget)
	_, _ = fmt.Fprintf(w, "startup_delay\t%g\n", s.StartupDelay)
	_, _ = fmt.Fprintf(w, "new_mug_delay\t%g\n", s.NewMugDelay)
	_, _ = fmt.Fprintf(w, "failed_chug_delay\t%g\n", s.FailedChugDelay)
	_, _ = fmt.Fprintf(w, "stagger_delay\t%g\n", s.StaggerDelay)
	_, _ = fmt.Fprintf(w, "wobble_duration\t%g\n", s.WobbleDuration)
	_, _ = fmt.Fprintf(w, "wobble_delay\t%g..%g\n", s.WobbleDelayMin, s.WobbleDelayMax)
	_, _ = fmt.Fprintf(w, "chugs_before_wobble\t%d\n", s.ChugsBeforeWobble)
	_, _ = fmt.Fprintf(w, "chain_limit\t%d\n", s.ChainLimit)
	_ = w.Flush()
}
