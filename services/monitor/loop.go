package monitor

import (
	"airmon-go/drivers/pms5003"
	"airmon-go/errcode"
	"airmon-go/services/monitor/config"
)

var errConnectFailed = &errcode.E{C: errcode.ConnectFailed, Op: "monitor.Run", Msg: "initial WiFi connection failed"}

// tick is one pass of the Sampling steady state. Any fault ends the
// tick early; nothing here terminates the process.
func (s *Service) tick() {
	start := s.now()
	defer s.endTick(start)

	// 1. No link, no work: a failed reconnect skips the entire tick,
	// so sensor reads and sends are never attempted into a dead link.
	if !s.link.radio.Connected() {
		s.display.SetLinkStatus(false, "")
		if !s.link.EnsureConnected() {
			s.log.Warn().Msg("link down, skipping tick")
			return
		}
	}

	// 2. Particulate reading. The source already retried once; a
	// failure here becomes a visible error state plus one remote
	// error event, never a stale or synthetic reading.
	reading, err := s.pm.Read()
	if err != nil {
		s.log.Error().Err(err).Msg("sensor read failed")
		s.display.SetReadError()
		s.seq++
		if !s.logSink.SendAt(
			"Sensor read failed in '"+s.cfg.Location+"'",
			errorMetadata(s.cfg, err, s.seq),
			s.timestamp(),
		) {
			s.log.Warn().Msg("error event not delivered")
		}
		return
	}

	// 3. Select the configured channel set, classify, display.
	ch := selectChannels(reading, s.cfg.Channels)
	level := Classify(ch.PM25)
	s.display.SetReading(ch, reading.Counts, level)

	// 4-5. Optional environment reading, best-effort.
	env := s.env.Read()
	s.display.SetEnvironment(env)

	// 6-7. One telemetry event per cycle. Failure is logged and
	// forgotten; the retry currency is the next tick's fresh event
	// with a fresh sequence id.
	s.seq++
	meta := readingMetadata(s.cfg, ch, reading.Counts, level, env, s.seq)
	if s.logSink.SendAt("Air quality reading from '"+s.cfg.Location+"'", meta, s.timestamp()) {
		s.log.Info().
			Uint16("pm25", ch.PM25).
			Str("status", level.String()).
			Uint64("seq", s.seq).
			Msg("reading logged")
	} else {
		s.log.Warn().Uint64("seq", s.seq).Msg("telemetry send failed")
	}
}

// selectChannels picks the channel set fixed at configuration time.
func selectChannels(r pms5003.Reading, set config.ChannelSet) pms5003.Channels {
	if set == config.Environmental {
		return r.Environmental
	}
	return r.Standard
}
