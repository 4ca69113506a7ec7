package config

import (
	"testing"
	"time"

	"airmon-go/errcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("WIFI_SSID", "testnet")
	t.Setenv("WIFI_PASSWORD", "hunter2")
	t.Setenv("LOGFLARE_API_KEY", "key123")
	t.Setenv("LOGFLARE_SOURCE_ID", "0123456789abcdef0123456789abcdef")
	// Clear optional keys so ambient env never leaks into the test.
	for _, k := range []string{
		"DEVICE_LOCATION", "DEVICE_ENVIRONMENT", "DISPLAY_UNITS",
		"READING_INTERVAL", "WARMUP_SECONDS", "ENABLE_SPA06",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "testnet", cfg.WifiSSID)
	assert.Equal(t, "01234567-89ab-cdef-0123-456789abcdef", cfg.SourceID)
	assert.Equal(t, "default", cfg.Location)
	assert.Equal(t, Standard, cfg.Channels)
	assert.Equal(t, Imperial, cfg.Units)
	assert.Equal(t, 10*time.Second, cfg.Period)
	assert.Equal(t, 30*time.Second, cfg.Warmup)
	assert.False(t, cfg.EnvSensor)
}

func TestLoadOutdoorMetric(t *testing.T) {
	setRequired(t)
	t.Setenv("DEVICE_ENVIRONMENT", "outdoor")
	t.Setenv("DISPLAY_UNITS", "metric")
	t.Setenv("DEVICE_LOCATION", "garden")
	t.Setenv("READING_INTERVAL", "30")
	t.Setenv("ENABLE_SPA06", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Environmental, cfg.Channels)
	assert.Equal(t, Metric, cfg.Units)
	assert.Equal(t, "garden", cfg.Location)
	assert.Equal(t, 30*time.Second, cfg.Period)
	assert.True(t, cfg.EnvSensor)
}

func TestLoadMissingCredentialsIsFatal(t *testing.T) {
	setRequired(t)
	t.Setenv("WIFI_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errcode.MissingConfig, errcode.Of(err))
}

func TestLoadRejectsInvalidInterval(t *testing.T) {
	setRequired(t)
	for _, bad := range []string{"0", "-5", "ten"} {
		t.Setenv("READING_INTERVAL", bad)
		_, err := Load()
		require.Error(t, err, bad)
		assert.Equal(t, errcode.InvalidConfig, errcode.Of(err), bad)
	}
}

func TestLoadRejectsUnknownEnvironment(t *testing.T) {
	setRequired(t)
	t.Setenv("DEVICE_ENVIRONMENT", "space")
	_, err := Load()
	assert.Equal(t, errcode.InvalidConfig, errcode.Of(err))
}

func TestParseSourceID(t *testing.T) {
	canonical := "01234567-89ab-cdef-0123-456789abcdef"

	got, err := ParseSourceID("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, canonical, got)

	got, err = ParseSourceID(canonical)
	require.NoError(t, err)
	assert.Equal(t, canonical, got)

	// Wrong length, non-hex, and non-hex hyphenated forms.
	for _, bad := range []string{
		"",
		"0123456789abcdef",
		"0123456789abcdef0123456789abcdef00",
		"0123456789abcdef0123456789abcdeg",
		"01234567-89ab-cdef-0123-456789abcdeg",
	} {
		_, err := ParseSourceID(bad)
		assert.Error(t, err, bad)
	}
}

func TestChannelSetAndUnitsStrings(t *testing.T) {
	assert.Equal(t, "indoor", Standard.String())
	assert.Equal(t, "outdoor", Environmental.String())
	assert.Equal(t, "metric", Metric.String())
	assert.Equal(t, "imperial", Imperial.String())
}
