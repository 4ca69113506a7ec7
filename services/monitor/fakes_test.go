package monitor

import (
	"time"

	"airmon-go/drivers/pms5003"
)

// fakeRadio scripts association behaviour per attempt.
type fakeRadio struct {
	connected   bool
	failures    int // Connect attempts that fail before one succeeds
	attempts    int
	identity    string
	connectErrs []error
}

func (r *fakeRadio) Connected() bool { return r.connected }

func (r *fakeRadio) Connect(ssid, password string) error {
	r.attempts++
	if r.attempts <= r.failures {
		if len(r.connectErrs) >= r.attempts {
			return r.connectErrs[r.attempts-1]
		}
		return errAssocTimeout
	}
	r.connected = true
	return nil
}

func (r *fakeRadio) Identity() string { return r.identity }

var errAssocTimeout = &timeoutError{}

type timeoutError struct{}

func (*timeoutError) Error() string { return "association timeout" }

// displayCall records one DisplaySink invocation.
type displayCall struct {
	op    string
	arg   any
	level Level
}

// fakeDisplay records every sink call in order.
type fakeDisplay struct {
	calls []displayCall
}

func (d *fakeDisplay) SetLinkStatus(connected bool, identity string) {
	d.calls = append(d.calls, displayCall{op: "link", arg: connected})
}

func (d *fakeDisplay) SetReading(ch pms5003.Channels, counts pms5003.Counts, level Level) {
	d.calls = append(d.calls, displayCall{op: "reading", arg: ch, level: level})
}

func (d *fakeDisplay) SetReadError() {
	d.calls = append(d.calls, displayCall{op: "readError"})
}

func (d *fakeDisplay) SetEnvironment(env EnvironmentSample) {
	d.calls = append(d.calls, displayCall{op: "environment", arg: env})
}

func (d *fakeDisplay) ShowFatalError(message string) {
	d.calls = append(d.calls, displayCall{op: "fatal", arg: message})
}

func (d *fakeDisplay) ShowWarmupCountdown(secondsRemaining int) {
	d.calls = append(d.calls, displayCall{op: "warmup", arg: secondsRemaining})
}

func (d *fakeDisplay) ops() []string {
	var out []string
	for _, c := range d.calls {
		out = append(out, c.op)
	}
	return out
}

func (d *fakeDisplay) count(op string) int {
	n := 0
	for _, c := range d.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

// fakeLogSink records sent events and returns a scripted outcome.
type fakeLogSink struct {
	ok       bool
	messages []string
	metas    []map[string]any
}

func (l *fakeLogSink) Send(msg string, meta map[string]any) bool {
	return l.SendAt(msg, meta, "")
}

func (l *fakeLogSink) SendAt(msg string, meta map[string]any, ts string) bool {
	l.messages = append(l.messages, msg)
	l.metas = append(l.metas, meta)
	return l.ok
}

// fakeParticulate scripts per-call readings or errors.
type fakeParticulate struct {
	readings []pms5003.Reading
	errs     []error
	calls    int
}

func (f *fakeParticulate) Read() (pms5003.Reading, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return pms5003.Reading{}, f.errs[i]
	}
	if i < len(f.readings) {
		return f.readings[i], nil
	}
	if len(f.readings) > 0 {
		return f.readings[len(f.readings)-1], nil
	}
	return pms5003.Reading{}, nil
}

// fakeEnvironment returns a fixed sample.
type fakeEnvironment struct{ sample EnvironmentSample }

func (f *fakeEnvironment) Read() EnvironmentSample { return f.sample }

// sleepRecorder captures sleep requests without sleeping.
type sleepRecorder struct {
	slept []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.slept = append(s.slept, d)
}
