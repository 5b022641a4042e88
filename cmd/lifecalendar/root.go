package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-lifecalendar/internal/config"
	"github.com/tartampluch/go-lifecalendar/internal/engine"
	"github.com/tartampluch/go-lifecalendar/internal/store"
)

// annotationService marks long-running commands, which log at Info level.
const annotationService = "service"

// app carries the state shared by all commands.
type app struct {
	settings config.Settings
	debug    bool
	clock    engine.Clock

	// logging is false in tests so commands do not touch the log file.
	logging   bool
	logCloser io.Closer
	repo      *store.DB
}

func newApp(settings config.Settings) *app {
	return &app{settings: settings, clock: engine.RealClock{}}
}

// openRepo opens the calculations database on first use.
func (a *app) openRepo() (*store.DB, error) {
	if a.repo != nil {
		return a.repo, nil
	}
	db, err := store.Open(a.settings.DBPath(), store.WithClock(a.clock))
	if err != nil {
		return nil, err
	}
	a.repo = db
	return db, nil
}

func (a *app) close() {
	if a.repo != nil {
		_ = a.repo.Close()
		a.repo = nil
	}
	if a.logCloser != nil {
		slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
		_ = a.logCloser.Close() // Best effort close
		a.logCloser = nil
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   config.AppCommand,
		Short: "Estimate your lifespan and print it as a calendar of days",
		Long: `Life Calendar estimates life expectancy from a handful of lifestyle answers
and lays the remaining life out as a printable calendar: one page per year,
one numbered circle per day.

QUICK START:

  $ lifecalendar estimate --exercise 200 --smoking none --weight 70 --height 175 \
      --diet healthy --alcohol none --health-issues no
  $ lifecalendar calendar --birth 1990-05-20 --years 77.05 -o life.pdf
  $ lifecalendar calendar --vcard me.vcf --years 80 --format ics

SERVICES:

  $ lifecalendar serve    # HTTP API and document downloads
  $ lifecalendar mcp      # Model Context Protocol server on stdio

ENVIRONMENT:

  LIFECAL_ADDR, LIFECAL_DATA_DIR, LIFECAL_BASE_AGE, LIFECAL_READ_TIMEOUT,
  LIFECAL_WRITE_TIMEOUT and LIFECAL_SHUTDOWN_TIMEOUT set the defaults that
  the flags override.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !a.logging {
				return nil
			}
			level := slog.LevelWarn
			if _, ok := cmd.Annotations[annotationService]; ok {
				level = slog.LevelInfo
			}
			if a.debug {
				level = slog.LevelDebug
			}
			a.logCloser = setupLogging(level)
			logStartupInfo()
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&a.debug, config.FlagDebug, false, config.FlagDescDebug)
	root.PersistentFlags().StringVar(&a.settings.DataDir, config.FlagDataDir, a.settings.DataDir, config.FlagDescDataDir)

	root.AddCommand(
		newEstimateCmd(a),
		newCalendarCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		newShowCmd(a),
		newListCmd(a),
		newDeleteCmd(a),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}
