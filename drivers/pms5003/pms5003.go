// Package pms5003 provides a driver for the Plantower PMS5003 family of
// particulate-matter sensors, including the I²C-wired PMSA003I variant:
//
//	d := pms5003.New(bus)
//	d.Configure(pms5003.Config{})
//	r, err := d.Read()        // one bus transaction, one full frame
//
// Every frame carries two parallel channel sets ("standard particle"
// and "under atmospheric environment") plus six particle-count bins;
// the driver parses all of them and leaves channel selection to the
// caller.
//
// NOTE: I2C.Tx MUST perform the 32-byte read in a single transaction
// without releasing the bus.
package pms5003

import (
	"errors"

	"tinygo.org/x/drivers"
)

// I2C address of the PMSA003I.
const Address = 0x12

// Frame layout (per datasheet).
const (
	frameLen = 32
	magic0   = 0x42
	magic1   = 0x4D
)

// Errors returned by the driver.
var (
	ErrBadFrame = errors.New("pms5003: bad frame header")
	ErrChecksum = errors.New("pms5003: checksum mismatch")
	ErrShort    = errors.New("pms5003: short frame")
)

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// Address defaults to 0x12 if zero.
	Address uint16
}

// Channels holds the three mass concentrations of one channel set,
// in µg/m³.
type Channels struct {
	PM10  uint16 // PM1.0
	PM25  uint16 // PM2.5
	PM100 uint16 // PM10
}

// Counts holds the particle counts per 0.1 L of air, by minimum
// particle diameter.
type Counts struct {
	Um03  uint16 // > 0.3 µm
	Um05  uint16 // > 0.5 µm
	Um10  uint16 // > 1.0 µm
	Um25  uint16 // > 2.5 µm
	Um50  uint16 // > 5.0 µm
	Um100 uint16 // > 10.0 µm
}

// Reading is one parsed sensor frame. Immutable once returned.
type Reading struct {
	Standard      Channels // factory-calibrated ("CF=1")
	Environmental Channels // atmospheric-environment compensated
	Counts        Counts
}

// Device wraps an I2C connection to a PMS5003-family sensor.
type Device struct {
	bus     drivers.I2C
	Address uint16

	buf [frameLen]byte // reuse buffer to avoid allocations
}

// New creates a new PMS5003 connection. The I2C bus must already be
// configured. This function only creates the Device object; it does
// not touch the device.
func New(bus drivers.I2C) Device {
	return Device{bus: bus, Address: Address}
}

// Configure applies optional config. The sensor itself needs no
// initialisation sequence in I²C mode; it streams frames as soon as
// its fan and laser are powered.
func (d *Device) Configure(cfgs ...Config) {
	if len(cfgs) > 0 && cfgs[0].Address != 0 {
		d.Address = cfgs[0].Address
	}
}

// Read performs one bus transaction and parses the resulting frame.
// On any framing or checksum fault the reading is discarded and an
// error returned; the driver never yields partial data.
func (d *Device) Read() (Reading, error) {
	if err := d.bus.Tx(d.Address, nil, d.buf[:]); err != nil {
		return Reading{}, err
	}
	return parseFrame(d.buf[:])
}

// parseFrame validates and decodes one 32-byte frame. Shared with the
// UART transport.
func parseFrame(b []byte) (Reading, error) {
	if len(b) < frameLen {
		return Reading{}, ErrShort
	}
	if b[0] != magic0 || b[1] != magic1 {
		return Reading{}, ErrBadFrame
	}
	// The declared length covers everything after the length word.
	if be16(b, 2) != frameLen-4 {
		return Reading{}, ErrBadFrame
	}
	var sum uint16
	for _, c := range b[:frameLen-2] {
		sum += uint16(c)
	}
	if sum != be16(b, frameLen-2) {
		return Reading{}, ErrChecksum
	}
	return Reading{
		Standard: Channels{
			PM10:  be16(b, 4),
			PM25:  be16(b, 6),
			PM100: be16(b, 8),
		},
		Environmental: Channels{
			PM10:  be16(b, 10),
			PM25:  be16(b, 12),
			PM100: be16(b, 14),
		},
		Counts: Counts{
			Um03:  be16(b, 16),
			Um05:  be16(b, 18),
			Um10:  be16(b, 20),
			Um25:  be16(b, 22),
			Um50:  be16(b, 24),
			Um100: be16(b, 26),
		},
	}, nil
}

func be16(b []byte, i int) uint16 {
	return uint16(b[i])<<8 | uint16(b[i+1])
}
