package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/signalsfoundry/station-journal/core"
	"github.com/signalsfoundry/station-journal/internal/config"
	"github.com/signalsfoundry/station-journal/internal/logging"
	"github.com/signalsfoundry/station-journal/internal/prompt"
	"github.com/signalsfoundry/station-journal/internal/ui"
	"github.com/signalsfoundry/station-journal/timectrl"
)

// crewLogs are the canned entries the autopilot writes into the journal.
var crewLogs = []string{
	"All quiet on the station.",
	"Ran the morning systems check.",
	"Coffee machine still offline. Morale holding.",
	"Watched the sunrise over the Pacific again.",
	"Ground control sends their regards.",
	"Exercised for two hours. Legs feel like jelly.",
	"Logged another round of sample data.",
}

var autopilotCmd = &cobra.Command{
	Use:   "autopilot",
	Short: "Run the station unattended, one mission day per tick",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		out := ui.HighlightWriter{W: os.Stdout, Styles: ui.DefaultStyles()}
		return runAutopilot(ctx, viper.GetViper(), out)
	},
}

func init() {
	flags := autopilotCmd.Flags()
	flags.Int("days", 30, "stop after this many mission days (0 runs until shutdown)")
	flags.String("tick", "0s", "wall-clock time per mission day in realtime mode")
	flags.String("mode", timectrl.Accelerated.String(), "clock mode: realtime or accelerated")

	bindFlag(flags.Lookup("days"), "autopilot.days")
	bindFlag(flags.Lookup("tick"), "autopilot.tick")
	bindFlag(flags.Lookup("mode"), "autopilot.mode")
}

// autoPrompter answers menus at random and writes canned crew logs.
func autoPrompter(seed uint64) *prompt.Auto {
	if seed != 0 {
		seed++
	}
	r := core.NewRand(seed)
	return &prompt.Auto{
		Rand: r,
		Log: func(title string) string {
			return fmt.Sprintf("%s: %s", title, crewLogs[r.IntN(len(crewLogs))])
		},
	}
}

// runAutopilot flies the station without a player and prints the journal to
// out when it stops. Edits to the config file change the log level live.
func runAutopilot(ctx context.Context, v *viper.Viper, out io.Writer) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, log, err := loadRuntime(v)
	if err != nil {
		return err
	}
	tick, err := cfg.Autopilot.TickDuration()
	if err != nil {
		return err
	}
	ctx = logging.ContextWithLogger(ctx, log)

	config.OnChange(v, func(e fsnotify.Event, next config.Config, err error) {
		if err != nil {
			log.Warn(ctx, "config reload failed", logging.String("file", e.Name), logging.Err(err))
			return
		}
		if logging.SetLevel(log, next.Log.Level) {
			log.Info(ctx, "log level changed", logging.String("level", next.Log.Level))
		}
	})

	a, err := newApp(ctx, cfg, log, out, autoPrompter(cfg.Station.Seed))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()

	mode := timectrl.ParseMode(cfg.Autopilot.Mode)
	dc := timectrl.NewDayController(a.station.SimTime(), tick, mode)
	started := time.Now()
	err = a.sim.Autopilot(ctx, dc, cfg.Autopilot.Days)
	log.Debug(ctx, "autopilot finished", logging.String("elapsed", time.Since(started).String()))
	return err
}
