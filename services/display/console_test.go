package display

import (
	"strings"
	"testing"

	"airmon-go/drivers/pms5003"
	"airmon-go/services/monitor"
	"airmon-go/services/monitor/config"
)

func TestConsoleLinkStatus(t *testing.T) {
	var buf strings.Builder
	c := NewConsole(&buf, config.Imperial)

	c.SetLinkStatus(true, "testnet")
	c.SetLinkStatus(false, "")

	out := buf.String()
	if !strings.Contains(out, "WiFi: testnet") || !strings.Contains(out, "WiFi: Disconnected") {
		t.Errorf("output = %q", out)
	}
}

func TestConsoleReadingShowsBand(t *testing.T) {
	var buf strings.Builder
	c := NewConsole(&buf, config.Imperial)

	c.SetReading(pms5003.Channels{PM25: 40}, pms5003.Counts{}, monitor.Moderate)

	if !strings.Contains(buf.String(), "PM2.5: 40  Moderate") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestConsoleEnvironmentUnits(t *testing.T) {
	var metric, imperial strings.Builder
	sample := monitor.EnvironmentSample{Status: monitor.EnvOK, TemperatureC: 20, PressureHPa: 1000}

	NewConsole(&metric, config.Metric).SetEnvironment(sample)
	NewConsole(&imperial, config.Imperial).SetEnvironment(sample)

	if !strings.Contains(metric.String(), "20.0 C") || !strings.Contains(metric.String(), "1000.0 hPa") {
		t.Errorf("metric output = %q", metric.String())
	}
	if !strings.Contains(imperial.String(), "68.0 F") || !strings.Contains(imperial.String(), "29.53 inHg") {
		t.Errorf("imperial output = %q", imperial.String())
	}
}

func TestConsolePlaceholderWhenNoReading(t *testing.T) {
	var buf strings.Builder
	c := NewConsole(&buf, config.Metric)

	c.SetEnvironment(monitor.EnvironmentSample{Status: monitor.EnvNotReady})

	if !strings.Contains(buf.String(), "---") {
		t.Errorf("output = %q", buf.String())
	}
}
