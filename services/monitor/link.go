package monitor

import (
	"time"

	"github.com/rs/zerolog"
)

const linkMaxAttempts = 3

// linkManager owns the Wi-Fi association state. It translates every
// connection-layer fault into a boolean outcome plus a log line;
// nothing escapes its boundary.
type linkManager struct {
	radio    Radio
	display  DisplaySink
	ssid     string
	password string

	// backoffUnit is the base backoff; attempt n waits unit<<n before
	// retrying. Tests shrink it.
	backoffUnit time.Duration
	sleep       func(time.Duration)
	log         zerolog.Logger
}

func newLinkManager(radio Radio, display DisplaySink, ssid, password string, log zerolog.Logger) *linkManager {
	return &linkManager{
		radio:       radio,
		display:     display,
		ssid:        ssid,
		password:    password,
		backoffUnit: time.Second,
		sleep:       time.Sleep,
		log:         log.With().Str("component", "link").Logger(),
	}
}

// EnsureConnected returns true once the radio is associated. Already
// connected is the fast path with no side effects. Otherwise it makes
// up to three attempts with exponential backoff before each retry
// (0, 2, 4 units); on success the display learns the identity, on
// total failure it is told "disconnected" exactly once.
//
// Re-entrant per call: the sampling loop invokes it every tick to
// catch silent drops.
func (m *linkManager) EnsureConnected() bool {
	if m.radio.Connected() {
		return true
	}

	for attempt := 0; attempt < linkMaxAttempts; attempt++ {
		if attempt > 0 {
			m.sleep(m.backoffUnit << attempt)
		}
		m.log.Info().Str("ssid", m.ssid).Int("attempt", attempt+1).Msg("connecting")

		if err := m.radio.Connect(m.ssid, m.password); err != nil {
			m.log.Warn().Err(err).Msg("connect failed")
			continue
		}
		if m.radio.Connected() {
			m.log.Info().Str("identity", m.radio.Identity()).Msg("connected")
			m.display.SetLinkStatus(true, m.radio.Identity())
			return true
		}
	}

	m.display.SetLinkStatus(false, "")
	return false
}
