package errcode

// Code is a stable error identifier shared across the monitor's
// component boundaries. It is a string newtype, comparable,
// allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Startup / configuration
	MissingConfig Code = "missing_config"
	InvalidConfig Code = "invalid_config"

	// Link layer
	LinkDown      Code = "link_down"
	ConnectFailed Code = "connect_failed"

	// Sensor bus
	SensorReadFailed Code = "sensor_read_failed"
	SensorNotReady   Code = "sensor_not_ready"

	// Telemetry
	SendFailed Code = "send_failed"

	Timeout Code = "timeout"
	Error   Code = "error" // generic fallback
)

// E keeps context and a cause alongside a Code.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
