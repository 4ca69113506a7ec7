//go:build !rp2040

// airmon runs the air quality monitor on a host machine with simulated
// sensors and the OS network stack. Telemetry goes to the real
// Logflare source, so a laptop run exercises the full pipeline.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"airmon-go/drivers/pms5003"
	"airmon-go/drivers/spa06"
	"airmon-go/internal/platform"
	"airmon-go/logflare"
	"airmon-go/services/display"
	"airmon-go/services/monitor"
	"airmon-go/services/monitor/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration invalid")
	}

	console := display.NewConsole(os.Stdout, cfg.Units)

	pmDev := pms5003.New(platform.NewSimPMS())
	pmDev.Configure()

	var envDev *spa06.Device
	if cfg.EnvSensor {
		dev := spa06.New(platform.NewSimSPA06())
		if err := dev.Configure(); err != nil {
			log.Warn().Err(err).Msg("environment sensor unavailable, continuing without")
		} else {
			envDev = &dev
		}
	}

	sink := logflare.New(platform.NewTLSDialer(), logflare.Config{
		APIKey:   cfg.APIKey,
		SourceID: cfg.SourceID,
	}, log.Logger)

	svc := monitor.New(cfg, monitor.Deps{
		Radio:       platform.NewSimRadio(),
		Display:     console,
		Log:         sink,
		Particulate: monitor.NewParticulateSource(&pmDev, log.Logger),
		Environment: monitor.NewEnvironmentSource(envDev, log.Logger),
		Logger:      log.Logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := svc.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("monitor stopped")
	}
}
