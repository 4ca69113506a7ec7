package monitor

import (
	"airmon-go/drivers/pms5003"
	"airmon-go/services/monitor/config"
	"airmon-go/x/units"
)

// configSnapshot is attached to every remote event so the log sink can
// segment readings by running configuration. Credentials stay out.
func configSnapshot(cfg config.Config) map[string]any {
	return map[string]any{
		"wifi_ssid":          cfg.WifiSSID,
		"device_location":    cfg.Location,
		"device_environment": cfg.Channels.String(),
		"reading_interval":   int(cfg.Period.Seconds()),
		"display_units":      cfg.Units.String(),
		"spa06_enabled":      cfg.EnvSensor,
	}
}

// readingMetadata assembles the telemetry document for one successful
// cycle: location, classification, both the selected concentrations
// and the raw particle counts, the configuration snapshot, the
// sequence id, and, when present, the environment readings with their
// derived conversions.
func readingMetadata(cfg config.Config, ch pms5003.Channels, counts pms5003.Counts, level Level, env EnvironmentSample, seq uint64) map[string]any {
	m := map[string]any{
		"location": cfg.Location,
		"status":   level.String(),

		"pm10":  ch.PM10,  // PM1.0
		"pm25":  ch.PM25,  // PM2.5
		"pm100": ch.PM100, // PM10.0

		"particles_03um":  counts.Um03,
		"particles_05um":  counts.Um05,
		"particles_10um":  counts.Um10,
		"particles_25um":  counts.Um25,
		"particles_50um":  counts.Um50,
		"particles_100um": counts.Um100,

		"config":      configSnapshot(cfg),
		"http_seq_id": seq,
	}

	if env.Status == EnvOK {
		m["temperature_c"] = units.Round1(env.TemperatureC)
		m["temperature_f"] = units.Round1(units.CToF(env.TemperatureC))
		m["pressure_hpa"] = units.Round1(env.PressureHPa)
		m["pressure_inhg"] = units.Round2(units.HPaToInHg(env.PressureHPa))
		m["altitude_m"] = units.Round1(units.PressureAltitude(env.PressureHPa))
	}
	return m
}

// errorMetadata describes one failed read cycle. It carries the same
// sequence id stream as readings so dedup still works.
func errorMetadata(cfg config.Config, readErr error, seq uint64) map[string]any {
	return map[string]any{
		"location":    cfg.Location,
		"error":       readErr.Error(),
		"config":      configSnapshot(cfg),
		"http_seq_id": seq,
	}
}
