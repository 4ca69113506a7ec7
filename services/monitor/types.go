package monitor

import (
	"airmon-go/drivers/pms5003"
)

// -----------------------------------------------------------------------------
// Ports
// -----------------------------------------------------------------------------

// Radio owns the Wi-Fi association state of the underlying network
// interface. The radio offers no push notification for link loss, so
// callers poll Connected each cycle.
type Radio interface {
	Connected() bool
	Connect(ssid, password string) error
	// Identity describes the association for the display, typically
	// the SSID.
	Identity() string
}

// LogSink pushes one structured event to the remote log service.
// Implemented by logflare.Client.
type LogSink interface {
	Send(eventMessage string, metadata map[string]any) bool
	SendAt(eventMessage string, metadata map[string]any, timestamp string) bool
}

// DisplaySink is the external display collaborator. Calls are
// side-effect only and must not block the sampling cycle.
type DisplaySink interface {
	SetLinkStatus(connected bool, identity string)
	SetReading(ch pms5003.Channels, counts pms5003.Counts, level Level)
	SetReadError()
	SetEnvironment(env EnvironmentSample)
	ShowFatalError(message string)
	ShowWarmupCountdown(secondsRemaining int)
}

// ParticulateSource yields one validated sensor reading per call.
type ParticulateSource interface {
	Read() (pms5003.Reading, error)
}

// EnvironmentSource yields the optional temperature/pressure reading.
// Always best-effort; never returns an error.
type EnvironmentSource interface {
	Read() EnvironmentSample
}

// -----------------------------------------------------------------------------
// Environment readings
// -----------------------------------------------------------------------------

// EnvStatus distinguishes "no sensor" and "sensor not ready yet" from
// an actual value, so display and telemetry can be told why a reading
// is missing.
type EnvStatus uint8

const (
	EnvNotPresent EnvStatus = iota
	EnvNotReady
	EnvOK
)

// EnvironmentSample is one optional-sensor observation. Temperature
// and pressure are only meaningful when Status is EnvOK.
type EnvironmentSample struct {
	Status       EnvStatus
	TemperatureC float64
	PressureHPa  float64
}
