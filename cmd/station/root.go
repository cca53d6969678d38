package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/signalsfoundry/station-journal/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "station",
	Short: "Keep a space station alive, one mission day at a time",
	Long: "Station commissions a randomly assembled space station, injects one failure per " +
		"mission day and keeps a crew journal until the last module goes dark.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return playCmd.RunE(cmd, args)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default .station.yaml)")
	flags.String("name", "", "station name (default: drawn from the name pool)")
	flags.Uint64("seed", 0, "random seed (0 draws one)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text or json")
	flags.String("log-backend", "slog", "log backend: slog or zap")
	flags.String("metrics-output", "", "write Prometheus metrics here at exit (- for stdout)")
	flags.Bool("tracing", false, "enable OpenTelemetry tracing")

	bindFlag(flags.Lookup("name"), "station.name")
	bindFlag(flags.Lookup("seed"), "station.seed")
	bindFlag(flags.Lookup("log-level"), "log.level")
	bindFlag(flags.Lookup("log-format"), "log.format")
	bindFlag(flags.Lookup("log-backend"), "log.backend")
	bindFlag(flags.Lookup("metrics-output"), "metrics.output")
	bindFlag(flags.Lookup("tracing"), "tracing.enabled")

	rootCmd.AddCommand(playCmd, autopilotCmd, statusCmd, configCmd)
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".station")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	config.BindEnv(viper.GetViper())

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
