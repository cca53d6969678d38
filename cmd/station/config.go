package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/signalsfoundry/station-journal/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfig(viper.GetViper(), cmd.OutOrStdout())
	},
}

func runConfig(v *viper.Viper, out io.Writer) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	data, err := cfg.ToTOML()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
