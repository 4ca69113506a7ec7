package monitor

import (
	"context"
	"time"

	"airmon-go/drivers/pms5003"
	"airmon-go/drivers/spa06"
	"airmon-go/errcode"

	"github.com/rs/zerolog"
)

const readRetryDelay = 500 * time.Millisecond

// rawParticulate is the transport-level read: the I2C device or the
// serial frame reader, without retry policy.
type rawParticulate interface {
	Read() (pms5003.Reading, error)
}

// particulateSource wraps the bus-level driver with the cycle's retry
// policy: one retry after a fixed pause, then a ReadFailed error
// carrying the last fault. Partial data never leaves the driver.
type particulateSource struct {
	dev   rawParticulate
	sleep func(time.Duration)
	log   zerolog.Logger
}

func newParticulateSource(dev rawParticulate, log zerolog.Logger) *particulateSource {
	return &particulateSource{
		dev:   dev,
		sleep: time.Sleep,
		log:   log.With().Str("component", "pms5003").Logger(),
	}
}

func (s *particulateSource) Read() (pms5003.Reading, error) {
	r, err := s.dev.Read()
	if err == nil {
		return r, nil
	}
	s.log.Debug().Err(err).Msg("read failed, retrying")
	s.sleep(readRetryDelay)

	r, err = s.dev.Read()
	if err == nil {
		return r, nil
	}
	return pms5003.Reading{}, &errcode.E{
		C:   errcode.SensorReadFailed,
		Op:  "monitor.readParticulate",
		Msg: err.Error(),
		Err: err,
	}
}

// serialReader adapts a UART-wired sensor to the rawParticulate
// surface. Each read is bounded so a silent line cannot stall a tick.
type serialReader struct {
	port    pms5003.SerialPort
	timeout time.Duration
}

func (r serialReader) Read() (pms5003.Reading, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return pms5003.ReadFrame(ctx, r.port)
}

// environmentSource reads the optional SPA06. Everything short of a
// value reduces to a status: a nil device means not present, unready
// data-ready flags or any transaction fault mean not ready. Nothing
// here can fail the main cycle.
type environmentSource struct {
	dev *spa06.Device // nil when disabled or init failed
	log zerolog.Logger
}

func newEnvironmentSource(dev *spa06.Device, log zerolog.Logger) *environmentSource {
	return &environmentSource{
		dev: dev,
		log: log.With().Str("component", "spa06").Logger(),
	}
}

func (s *environmentSource) Read() EnvironmentSample {
	if s.dev == nil {
		return EnvironmentSample{Status: EnvNotPresent}
	}

	tmpReady, err := s.dev.TemperatureReady()
	if err != nil {
		s.log.Debug().Err(err).Msg("status read failed")
		return EnvironmentSample{Status: EnvNotReady}
	}
	prsReady, err := s.dev.PressureReady()
	if err != nil {
		s.log.Debug().Err(err).Msg("status read failed")
		return EnvironmentSample{Status: EnvNotReady}
	}
	if !tmpReady || !prsReady {
		return EnvironmentSample{Status: EnvNotReady}
	}

	temp, err := s.dev.ReadTemperature()
	if err != nil {
		s.log.Debug().Err(err).Msg("temperature read failed")
		return EnvironmentSample{Status: EnvNotReady}
	}
	press, err := s.dev.ReadPressure()
	if err != nil {
		s.log.Debug().Err(err).Msg("pressure read failed")
		return EnvironmentSample{Status: EnvNotReady}
	}

	return EnvironmentSample{Status: EnvOK, TemperatureC: temp, PressureHPa: press}
}
