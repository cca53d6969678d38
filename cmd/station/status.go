package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/signalsfoundry/station-journal/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Commission a station and print its full status tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ui.HighlightWriter{W: os.Stdout, Styles: ui.DefaultStyles()}
		return runStatus(cmd.Context(), viper.GetViper(), out)
	},
}

// runStatus builds the configured station and writes its identity line and
// full status tree to out.
func runStatus(ctx context.Context, v *viper.Viper, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, log, err := loadRuntime(v)
	if err != nil {
		return err
	}
	st := newStation(cfg, log, io.Discard)
	log.Debug(ctx, "status requested")
	if _, err := fmt.Fprintln(out, st.NameDisplay()); err != nil {
		return err
	}
	_, err = io.WriteString(out, st.Status(0))
	return err
}
