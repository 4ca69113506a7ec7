package pms5003

import (
	"context"
	"io"
)

// SerialPort is the minimal serial surface the UART transport needs.
// On rp2 targets it is satisfied by a thin adapter over uartx (the
// entry point owns the pin/baud setup: 9600 8N1).
type SerialPort interface {
	// RecvSomeContext reads whatever bytes are available, blocking
	// until at least one arrives or the context ends.
	RecvSomeContext(ctx context.Context, buf []byte) (int, error)
}

// ReadFrame reads one complete frame from a serial-wired sensor,
// resynchronising on the magic bytes if the stream starts mid-frame.
// It returns the same Reading the I²C path produces.
func ReadFrame(ctx context.Context, p SerialPort) (Reading, error) {
	var frame [frameLen]byte
	n := 0
	for n < frameLen {
		m, err := p.RecvSomeContext(ctx, frame[n:])
		if err != nil {
			return Reading{}, err
		}
		if m == 0 {
			return Reading{}, io.ErrUnexpectedEOF
		}
		n += m

		// Drop leading garbage until the buffer starts at the magic.
		s := sync(frame[:n])
		if s > 0 {
			n = copy(frame[:], frame[s:n])
		}
	}
	return parseFrame(frame[:])
}

// sync returns the offset of the first plausible frame start.
func sync(b []byte) int {
	for i := 0; i < len(b); i++ {
		if b[i] == magic0 && (i+1 >= len(b) || b[i+1] == magic1) {
			return i
		}
	}
	return len(b)
}
