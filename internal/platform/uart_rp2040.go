//go:build rp2040

package platform

import (
	"context"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// SensorUART adapts uartx to the frame reader's serial surface.
type SensorUART struct{ u *uartx.UART }

// OpenSensorUART configures UART1 for the PMS5003's serial framing,
// 9600 8N1 on the given pins.
func OpenSensorUART(tx, rx machine.Pin) *SensorUART {
	hw := uartx.UART1
	_ = hw.Configure(uartx.UARTConfig{
		BaudRate: 9600,
		TX:       tx,
		RX:       rx,
	})
	return &SensorUART{u: hw}
}

func (p *SensorUART) RecvSomeContext(ctx context.Context, buf []byte) (int, error) {
	return p.u.RecvSomeContext(ctx, buf)
}
