// Package config loads the monitor's immutable process configuration
// from the environment (optionally seeded from a .env file) and
// validates it once at startup. Core logic never reads the
// environment; it receives a Config value.
package config

import (
	"os"
	"strconv"
	"time"

	"airmon-go/errcode"
	"airmon-go/x/strx"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// ChannelSet selects which of the sensor's two parallel channel sets
// feeds the display and telemetry. Chosen once at configuration time.
type ChannelSet uint8

const (
	// Standard is the factory-calibration channel set, appropriate
	// indoors.
	Standard ChannelSet = iota
	// Environmental is the atmospheric-compensation channel set,
	// appropriate outdoors.
	Environmental
)

func (c ChannelSet) String() string {
	if c == Environmental {
		return "outdoor"
	}
	return "indoor"
}

// Units selects the display unit system.
type Units uint8

const (
	Imperial Units = iota
	Metric
)

func (u Units) String() string {
	if u == Metric {
		return "metric"
	}
	return "imperial"
}

// Config is the immutable process-wide configuration.
type Config struct {
	WifiSSID     string
	WifiPassword string

	APIKey   string
	SourceID string // canonical hyphenated UUID form

	Location string
	Channels ChannelSet
	Units    Units

	Period    time.Duration // sampling period, >= 1s
	Warmup    time.Duration // sensor warm-up countdown, may be zero
	EnvSensor bool          // optional SPA06 temperature/pressure sensor
}

// Load reads and validates configuration from the environment. A .env
// file in the working directory is honoured when present. Any error is
// a fatal startup condition.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		WifiSSID:     os.Getenv("WIFI_SSID"),
		WifiPassword: os.Getenv("WIFI_PASSWORD"),
		APIKey:       os.Getenv("LOGFLARE_API_KEY"),
		Location:     strx.Coalesce(os.Getenv("DEVICE_LOCATION"), "default"),
	}

	if cfg.WifiSSID == "" || cfg.WifiPassword == "" {
		return Config{}, &errcode.E{C: errcode.MissingConfig, Op: "config.Load", Msg: "WiFi not configured"}
	}
	if cfg.APIKey == "" {
		return Config{}, &errcode.E{C: errcode.MissingConfig, Op: "config.Load", Msg: "Logflare not configured"}
	}

	source, err := ParseSourceID(os.Getenv("LOGFLARE_SOURCE_ID"))
	if err != nil {
		return Config{}, err
	}
	cfg.SourceID = source

	cfg.Channels, err = parseChannelSet(strx.Coalesce(os.Getenv("DEVICE_ENVIRONMENT"), "indoor"))
	if err != nil {
		return Config{}, err
	}
	cfg.Units, err = parseUnits(strx.Coalesce(os.Getenv("DISPLAY_UNITS"), "imperial"))
	if err != nil {
		return Config{}, err
	}

	interval, err := parseSeconds("READING_INTERVAL", 10, 1)
	if err != nil {
		return Config{}, err
	}
	cfg.Period = interval

	warmup, err := parseSeconds("WARMUP_SECONDS", 30, 0)
	if err != nil {
		return Config{}, err
	}
	cfg.Warmup = warmup

	cfg.EnvSensor = parseBool(os.Getenv("ENABLE_SPA06"))

	return cfg, nil
}

// ParseSourceID validates a Logflare source id: a UUID given either in
// canonical hyphenated form or as 32 plain hex characters. The
// canonical hyphenated form is returned.
func ParseSourceID(s string) (string, error) {
	if s == "" {
		return "", &errcode.E{C: errcode.MissingConfig, Op: "config.ParseSourceID", Msg: "Logflare not configured"}
	}
	if len(s) != 32 && len(s) != 36 {
		return "", &errcode.E{C: errcode.InvalidConfig, Op: "config.ParseSourceID", Msg: "source id must be a UUID"}
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return "", &errcode.E{C: errcode.InvalidConfig, Op: "config.ParseSourceID", Msg: "source id must be a UUID", Err: err}
	}
	return u.String(), nil
}

func parseChannelSet(s string) (ChannelSet, error) {
	switch s {
	case "indoor":
		return Standard, nil
	case "outdoor":
		return Environmental, nil
	}
	return 0, &errcode.E{C: errcode.InvalidConfig, Op: "config.Load", Msg: "DEVICE_ENVIRONMENT must be indoor or outdoor"}
}

func parseUnits(s string) (Units, error) {
	switch s {
	case "imperial":
		return Imperial, nil
	case "metric":
		return Metric, nil
	}
	return 0, &errcode.E{C: errcode.InvalidConfig, Op: "config.Load", Msg: "DISPLAY_UNITS must be metric or imperial"}
}

func parseSeconds(key string, def, min int) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(def) * time.Second, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		return 0, &errcode.E{C: errcode.InvalidConfig, Op: "config.Load", Msg: key + " must be an integer >= " + strconv.Itoa(min), Err: err}
	}
	return time.Duration(v) * time.Second, nil
}

func parseBool(s string) bool {
	switch s {
	case "true", "TRUE", "True", "1", "yes":
		return true
	}
	return false
}
