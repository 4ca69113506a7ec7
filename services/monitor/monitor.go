// Package monitor is the device reliability core: the state machine
// that coordinates Wi-Fi link health, sensor polling, display updates
// and best-effort telemetry delivery on a fixed sampling cadence.
//
// Everything runs on one logical thread. The loop body runs to
// completion before the next tick begins; suspension happens only at
// explicit sleeps and deadline-bounded I/O.
package monitor

import (
	"context"
	"runtime"
	"time"

	"airmon-go/drivers/pms5003"
	"airmon-go/drivers/spa06"
	"airmon-go/services/monitor/config"

	"github.com/rs/zerolog"
)

// Deps carries the collaborators the service is wired with at startup.
type Deps struct {
	Radio   Radio
	Display DisplaySink
	Log     LogSink

	// Particulate is required. Environment is optional; leave nil when
	// the sensor is disabled or failed to initialise.
	Particulate ParticulateSource
	Environment EnvironmentSource

	Logger zerolog.Logger
}

// Service ties the link manager, sensor sources, display sink and log
// client together. Construct with New, drive with Run.
type Service struct {
	cfg     config.Config
	display DisplaySink
	logSink LogSink
	pm      ParticulateSource
	env     EnvironmentSource
	link    *linkManager

	seq uint64 // http_seq_id; resets with the process, dedup is best-effort

	now   func() time.Time
	sleep func(time.Duration)
	log   zerolog.Logger
}

// New wires a Service from validated configuration and its
// collaborators.
func New(cfg config.Config, deps Deps) *Service {
	env := deps.Environment
	if env == nil {
		env = newEnvironmentSource(nil, deps.Logger)
	}
	return &Service{
		cfg:     cfg,
		display: deps.Display,
		logSink: deps.Log,
		pm:      deps.Particulate,
		env:     env,
		link:    newLinkManager(deps.Radio, deps.Display, cfg.WifiSSID, cfg.WifiPassword, deps.Logger),
		now:     time.Now,
		sleep:   time.Sleep,
		log:     deps.Logger.With().Str("component", "monitor").Logger(),
	}
}

// Wire bus-level sources from drivers. Used by the entry points.

// NewParticulateSource adapts a PMS5003 device to the loop's retry
// policy.
func NewParticulateSource(dev *pms5003.Device, log zerolog.Logger) ParticulateSource {
	return newParticulateSource(dev, log)
}

// NewSerialParticulateSource is NewParticulateSource for a UART-wired
// sensor. Each frame read is bounded by timeout.
func NewSerialParticulateSource(port pms5003.SerialPort, timeout time.Duration, log zerolog.Logger) ParticulateSource {
	return newParticulateSource(serialReader{port: port, timeout: timeout}, log)
}

// NewEnvironmentSource adapts an optional SPA06 device. A nil device
// reads as "not present".
func NewEnvironmentSource(dev *spa06.Device, log zerolog.Logger) EnvironmentSource {
	return newEnvironmentSource(dev, log)
}

// Run executes the state machine: Connecting, Warming-Up, then the
// Sampling steady state, which it never leaves until ctx ends. The
// error return is non-nil only for the fatal startup path (failed
// initial connect); transient faults inside the steady state are
// absorbed per tick.
func (s *Service) Run(ctx context.Context) error {
	// Connecting. Initial connectivity is a hard precondition, unlike
	// steady-state reconnects.
	if !s.link.EnsureConnected() {
		s.display.ShowFatalError("WiFi connection failed")
		return errConnectFailed
	}

	s.logStartup()

	// Warming-up: fixed countdown so the sensor fan and laser settle.
	// Display-facing only; nothing is sampled or retried here.
	for remaining := int(s.cfg.Warmup.Seconds()); remaining > 0; remaining-- {
		s.display.ShowWarmupCountdown(remaining)
		s.sleep(time.Second)
	}

	// Sampling.
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("stopping")
			return nil
		default:
		}
		s.tick()
	}
}

// logStartup announces the device and its running configuration to
// the log sink. Best-effort like every other send.
func (s *Service) logStartup() {
	meta := map[string]any{"config": configSnapshot(s.cfg)}
	if ok := s.logSink.SendAt(
		"Air quality device starting in '"+s.cfg.Location+"'",
		meta,
		s.timestamp(),
	); !ok {
		s.log.Warn().Msg("startup event not delivered")
	}
}

// timestamp returns a device-side RFC 3339 timestamp, or "" when the
// wall clock has clearly never been set (fresh boot without time
// sync).
func (s *Service) timestamp() string {
	t := s.now().UTC()
	if t.Year() < 2020 {
		return ""
	}
	return t.Format(time.RFC3339)
}

// endTick holds the fixed cadence: sleep whatever remains of the
// period, or nothing when the body overran. Ticks are strictly
// sequential; an overrun never causes overlap or catch-up.
func (s *Service) endTick(start time.Time) {
	elapsed := s.now().Sub(start)
	if remaining := s.cfg.Period - elapsed; remaining > 0 {
		s.sleep(remaining)
	}
	// The tick's transient documents are dead here; reclaim once per
	// cycle as the steady-state allocation ceiling.
	runtime.GC()
}
