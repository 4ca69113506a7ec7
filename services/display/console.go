// Package display provides the host-side DisplaySink: a line-oriented
// console rendering of what the device panel would show. The pixel
// display proper is an external collaborator; this package only has to
// honour the same update contract.
package display

import (
	"io"

	"airmon-go/drivers/pms5003"
	"airmon-go/services/monitor"
	"airmon-go/services/monitor/config"
	"airmon-go/x/fmtx"
	"airmon-go/x/units"
)

// Console renders DisplaySink updates as text lines.
type Console struct {
	w     io.Writer
	units config.Units
}

func NewConsole(w io.Writer, u config.Units) *Console {
	return &Console{w: w, units: u}
}

func (c *Console) SetLinkStatus(connected bool, identity string) {
	if connected {
		fmtx.Fprintf(c.w, "WiFi: %s\n", identity)
		return
	}
	fmtx.Fprintf(c.w, "WiFi: Disconnected\n")
}

func (c *Console) SetReading(ch pms5003.Channels, counts pms5003.Counts, level monitor.Level) {
	fmtx.Fprintf(c.w, "PM2.5: %d  %s (#%06X)\n", ch.PM25, level.String(), level.Color())
}

func (c *Console) SetReadError() {
	fmtx.Fprintf(c.w, "PM2.5: read error\n")
}

func (c *Console) SetEnvironment(env monitor.EnvironmentSample) {
	if env.Status != monitor.EnvOK {
		fmtx.Fprintf(c.w, "Temp: ---  Pressure: ---\n")
		return
	}
	if c.units == config.Metric {
		fmtx.Fprintf(c.w, "Temp: %.1f C  Pressure: %.1f hPa\n",
			env.TemperatureC, env.PressureHPa)
		return
	}
	fmtx.Fprintf(c.w, "Temp: %.1f F  Pressure: %.2f inHg\n",
		units.CToF(env.TemperatureC), units.HPaToInHg(env.PressureHPa))
}

func (c *Console) ShowFatalError(message string) {
	fmtx.Fprintf(c.w, "ERROR: %s\n", message)
}

func (c *Console) ShowWarmupCountdown(secondsRemaining int) {
	fmtx.Fprintf(c.w, "Warming up: %ds\n", secondsRemaining)
}
