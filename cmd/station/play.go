package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/signalsfoundry/station-journal/internal/config"
	"github.com/signalsfoundry/station-journal/internal/logging"
	"github.com/signalsfoundry/station-journal/internal/prompt"
	"github.com/signalsfoundry/station-journal/internal/ui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the interactive game loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ui.HighlightWriter{W: os.Stdout, Styles: ui.DefaultStyles()}
		return runPlay(cmd.Context(), viper.GetViper(), out, prompt.NewTerminal())
	},
}

// loadRuntime loads the configuration from v and builds its logger.
func loadRuntime(v *viper.Viper) (config.Config, logging.Logger, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logging.New(cfg.Log.Logging()), nil
}

// runPlay plays days with p until the station stops transmitting or the
// player powers down, then prints the journal to out.
func runPlay(ctx context.Context, v *viper.Viper, out io.Writer, p prompt.Prompter) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, log, err := loadRuntime(v)
	if err != nil {
		return err
	}
	ctx = logging.ContextWithLogger(ctx, log)

	a, err := newApp(ctx, cfg, log, out, p)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return a.sim.Run(ctx)
}
