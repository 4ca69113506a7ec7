//go:build rp2040

// airmon-rp2040 is the device build for a Raspberry Pi Pico W:
// PMSA003I (and optionally an SPA06-003) on I2C0, Wi-Fi through the
// onboard cyw43439, status lines on the USB serial console.
package main

import (
	"context"
	"machine"
	"time"

	"airmon-go/drivers/pms5003"
	"airmon-go/drivers/spa06"
	"airmon-go/errcode"
	"airmon-go/internal/platform"
	"airmon-go/logflare"
	"airmon-go/services/display"
	"airmon-go/services/monitor"
	"airmon-go/services/monitor/config"
	"airmon-go/x/strx"

	"github.com/rs/zerolog"
	"tinygo.org/x/drivers/netlink/probe"
)

// Device settings are injected at link time:
//
//	tinygo flash -target pico-w -ldflags \
//	  "-X main.wifiSSID=... -X main.wifiPassword=... \
//	   -X main.apiKey=... -X main.sourceID=..."
var (
	wifiSSID     string
	wifiPassword string
	apiKey       string
	sourceID     string
	location     string
	environment  string // "indoor" (default) or "outdoor"
	units        string // "imperial" (default) or "metric"
	envSensor    string // "true" to enable the SPA06
)

// serialSensor selects the UART1 wiring for the particulate sensor
// instead of I2C.
const serialSensor = false

const (
	samplePeriod = 10 * time.Second
	warmup       = 30 * time.Second
)

func main() {
	// Give USB serial a moment to enumerate before the first output.
	time.Sleep(2 * time.Second)

	logger := zerolog.New(machine.Serial).With().Timestamp().Logger()

	cfg, err := deviceConfig()
	console := display.NewConsole(machine.Serial, cfg.Units)
	if err != nil {
		console.ShowFatalError(err.Error())
		halt()
	}

	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
	}); err != nil {
		console.ShowFatalError("I2C init failed")
		halt()
	}

	var pm monitor.ParticulateSource
	if serialSensor {
		port := platform.OpenSensorUART(machine.UART1_TX_PIN, machine.UART1_RX_PIN)
		pm = monitor.NewSerialParticulateSource(port, 3*time.Second, logger)
	} else {
		dev := pms5003.New(i2c)
		dev.Configure()
		pm = monitor.NewParticulateSource(&dev, logger)
	}

	var envDev *spa06.Device
	if cfg.EnvSensor {
		dev := spa06.New(i2c)
		if err := dev.Configure(); err != nil {
			logger.Warn().Err(err).Msg("environment sensor unavailable, continuing without")
		} else {
			envDev = &dev
		}
	}

	link, _ := probe.Probe()

	sink := logflare.New(platform.NewTLSDialer(), logflare.Config{
		APIKey:   cfg.APIKey,
		SourceID: cfg.SourceID,
	}, logger)

	svc := monitor.New(cfg, monitor.Deps{
		Radio:       platform.NewNetlinkRadio(link),
		Display:     console,
		Log:         sink,
		Particulate: pm,
		Environment: monitor.NewEnvironmentSource(envDev, logger),
		Logger:      logger,
	})

	// Run returns only on the fatal startup path; the failure is
	// already on the console.
	_ = svc.Run(context.Background())
	halt()
}

// deviceConfig validates the link-time settings into the same Config
// the host build loads from the environment.
func deviceConfig() (config.Config, error) {
	if wifiSSID == "" || wifiPassword == "" {
		return config.Config{}, &errcode.E{C: errcode.MissingConfig, Op: "main", Msg: "WiFi not configured"}
	}
	if apiKey == "" {
		return config.Config{}, &errcode.E{C: errcode.MissingConfig, Op: "main", Msg: "Logflare not configured"}
	}
	source, err := config.ParseSourceID(sourceID)
	if err != nil {
		return config.Config{}, err
	}

	cfg := config.Config{
		WifiSSID:     wifiSSID,
		WifiPassword: wifiPassword,
		APIKey:       apiKey,
		SourceID:     source,
		Location:     strx.Coalesce(location, "default"),
		Period:       samplePeriod,
		Warmup:       warmup,
		EnvSensor:    envSensor == "true",
	}
	if environment == "outdoor" {
		cfg.Channels = config.Environmental
	}
	if units == "metric" {
		cfg.Units = config.Metric
	}
	return cfg, nil
}

// halt parks the program with the last console output visible.
func halt() {
	for {
		time.Sleep(time.Hour)
	}
}
