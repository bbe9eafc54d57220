package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/litescript/ls-zodiac/internal/config"
	"github.com/litescript/ls-zodiac/internal/ephem"
	"github.com/litescript/ls-zodiac/internal/logging"
	"github.com/litescript/ls-zodiac/internal/version"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v      *viper.Viper
	cfg    config.Config
	logger *zap.Logger

	// newProvider builds the position source; tests replace it.
	newProvider func() ephem.Provider

	// now is the clock used when --at is omitted.
	now func() time.Time
}

func newApp() *app {
	a := &app{
		v:      viper.New(),
		logger: logging.Discard(),
		now:    time.Now,
	}
	a.newProvider = func() ephem.Provider {
		return ephem.New(a.cfg.EphemMode(), a.logger, a.cfg.HorizonsOptions()...)
	}
	return a
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(newApp())
}

func newRootCmdWith(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "ls-zodiac",
		Short:         "Transit positions, aspects and numerology in the terminal",
		Long:          "ls-zodiac casts planetary positions from JPL Horizons or an offline solar model, finds aspects and ingresses against natal charts, and computes numerology readings.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default .ls-zodiac.yaml)")
	flags.String("env-file", "", "dotenv file to load (default .env)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("ephem", "auto", "Position source (horizons, solar, auto)")
	flags.Float64("lat", 0, "Observer latitude in degrees")
	flags.Float64("lon", 0, "Observer longitude in degrees (east positive)")

	root.AddCommand(
		newPositionsCmd(a),
		newAspectsCmd(a),
		newSynastryCmd(a),
		newIngressesCmd(a),
		newNumerologyCmd(a),
		newCompatCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration, binds persistent flags and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	cfgFile, _ := flags.GetString("config")
	envFile, _ := flags.GetString("env-file")

	if err := config.Init(a.v, config.Options{ConfigFile: cfgFile, EnvFile: envFile}); err != nil {
		return err
	}

	bindings := map[string]string{
		"log.level":    "log-level",
		"ephem.mode":   "ephem",
		"observer.lat": "lat",
		"observer.lon": "lon",
	}
	for key, name := range bindings {
		if f := flags.Lookup(name); f != nil && f.Changed {
			if err := a.v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	a.logger = logger

	a.logger.Debug("configuration loaded",
		zap.String("config", a.v.ConfigFileUsed()),
		zap.String("ephem", cfg.EphemMode().String()),
		zap.Float64("lat", cfg.Observer.Lat),
		zap.Float64("lon", cfg.Observer.Lon))
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "ls-zodiac v%s\n", version.Version)
			return nil
		},
	}
}
