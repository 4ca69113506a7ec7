// Package spa06 provides a driver for the Goertek SPA06-003 barometric
// pressure and temperature sensor (SPL06 register family):
//
//	d := spa06.New(bus)
//	if err := d.Configure(); err != nil { ... }   // ID check + calibration
//	if ok, _ := d.PressureReady(); ok {
//	    p, err := d.ReadPressure()               // hPa
//	}
//
// The device free-runs in continuous pressure+temperature mode after
// Configure. "Not ready" is a state reported by the ready accessors,
// not an error; compensation uses the factory coefficient block read
// once at configure time.
package spa06

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// Default I2C address (SDO low: 0x76).
const Address = 0x77

// Registers.
const (
	regPSR     = 0x00 // 3 bytes, 24-bit two's complement
	regTMP     = 0x03 // 3 bytes, 24-bit two's complement
	regPRSCfg  = 0x06
	regTMPCfg  = 0x07
	regMeasCfg = 0x08
	regCfg     = 0x09
	regReset   = 0x0C
	regID      = 0x0D
	regCoef    = 0x10 // 18-byte calibration block
)

// MEAS_CFG bits.
const (
	statusCoefRdy   = 0x80
	statusSensorRdy = 0x40
	statusTmpRdy    = 0x20
	statusPrsRdy    = 0x10

	modeContinuous = 0x07 // continuous pressure + temperature
)

// Product IDs: 0x10 = SPL06, 0x11 = SPA06-003.
const (
	idSPL06 = 0x10
	idSPA06 = 0x11
)

// Scale factor for single-sample (no oversampling) measurements.
const scaleFactor = 524288.0

// Errors returned by the driver.
var (
	ErrNotFound = errors.New("spa06: device not found")
	ErrTimeout  = errors.New("spa06: sensor not ready in time")
)

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// Address defaults to 0x77 if zero.
	Address uint16
	// ReadyTimeout bounds the wait for coefficient/sensor readiness in
	// Configure. Default 250 ms.
	ReadyTimeout time.Duration
}

// Device wraps an I2C connection to an SPA06-003 device.
type Device struct {
	bus     drivers.I2C
	Address uint16

	cfg Config
	buf [18]byte

	// Calibration coefficients, sign-extended.
	c0, c1                  int32 // 12-bit
	c00, c10                int32 // 20-bit
	c01, c11, c20, c21, c30 int32 // 16-bit
}

// New creates a new SPA06 connection. The I2C bus must already be
// configured. This function only creates the Device object; it does
// not touch the device.
func New(bus drivers.I2C) Device {
	return Device{bus: bus, Address: Address}
}

// Connected reports whether a device with a known product ID answers
// on the bus.
func (d *Device) Connected() bool {
	id, err := d.readReg(regID)
	return err == nil && (id == idSPL06 || id == idSPA06)
}

// Configure verifies the product ID, waits for the calibration
// coefficients, reads them, and starts continuous measurement.
func (d *Device) Configure(cfgs ...Config) error {
	if len(cfgs) > 0 {
		c := cfgs[0]
		if c.Address != 0 {
			d.Address = c.Address
		}
		if c.ReadyTimeout <= 0 {
			c.ReadyTimeout = 250 * time.Millisecond
		}
		d.cfg = c
	} else {
		d.cfg = Config{Address: d.Address, ReadyTimeout: 250 * time.Millisecond}
	}

	if !d.Connected() {
		return ErrNotFound
	}

	deadline := time.Now().Add(d.cfg.ReadyTimeout)
	for {
		st, err := d.readReg(regMeasCfg)
		if err != nil {
			return err
		}
		if st&statusCoefRdy != 0 && st&statusSensorRdy != 0 {
			break
		}
		if time.Now().After(deadline) {
			return ErrTimeout
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := d.readCoefficients(); err != nil {
		return err
	}

	// Single sample per measurement, external temperature sensor.
	if err := d.writeReg(regPRSCfg, 0x00); err != nil {
		return err
	}
	if err := d.writeReg(regTMPCfg, 0x80); err != nil {
		return err
	}
	return d.writeReg(regMeasCfg, modeContinuous)
}

// TemperatureReady reports whether a fresh temperature sample is
// available.
func (d *Device) TemperatureReady() (bool, error) {
	st, err := d.readReg(regMeasCfg)
	return st&statusTmpRdy != 0, err
}

// PressureReady reports whether a fresh pressure sample is available.
func (d *Device) PressureReady() (bool, error) {
	st, err := d.readReg(regMeasCfg)
	return st&statusPrsRdy != 0, err
}

// ReadTemperature returns the compensated temperature in °C.
func (d *Device) ReadTemperature() (float64, error) {
	traw, err := d.readRaw(regTMP)
	if err != nil {
		return 0, err
	}
	tsc := float64(traw) / scaleFactor
	return float64(d.c0)*0.5 + float64(d.c1)*tsc, nil
}

// ReadPressure returns the compensated pressure in hPa.
func (d *Device) ReadPressure() (float64, error) {
	praw, err := d.readRaw(regPSR)
	if err != nil {
		return 0, err
	}
	traw, err := d.readRaw(regTMP)
	if err != nil {
		return 0, err
	}
	psc := float64(praw) / scaleFactor
	tsc := float64(traw) / scaleFactor

	pa := float64(d.c00) +
		psc*(float64(d.c10)+psc*(float64(d.c20)+psc*float64(d.c30))) +
		tsc*float64(d.c01) +
		tsc*psc*(float64(d.c11)+psc*float64(d.c21))
	return pa / 100, nil
}

// readCoefficients reads and unpacks the 18-byte calibration block.
func (d *Device) readCoefficients() error {
	b := d.buf[:18]
	if err := d.bus.Tx(d.Address, []byte{regCoef}, b); err != nil {
		return err
	}
	d.c0 = signExtend(int32(b[0])<<4|int32(b[1])>>4, 12)
	d.c1 = signExtend(int32(b[1]&0x0F)<<8|int32(b[2]), 12)
	d.c00 = signExtend(int32(b[3])<<12|int32(b[4])<<4|int32(b[5])>>4, 20)
	d.c10 = signExtend(int32(b[5]&0x0F)<<16|int32(b[6])<<8|int32(b[7]), 20)
	d.c01 = signExtend(int32(b[8])<<8|int32(b[9]), 16)
	d.c11 = signExtend(int32(b[10])<<8|int32(b[11]), 16)
	d.c20 = signExtend(int32(b[12])<<8|int32(b[13]), 16)
	d.c21 = signExtend(int32(b[14])<<8|int32(b[15]), 16)
	d.c30 = signExtend(int32(b[16])<<8|int32(b[17]), 16)
	return nil
}

// readRaw reads one 24-bit two's-complement sample register set.
func (d *Device) readRaw(reg byte) (int32, error) {
	b := d.buf[:3]
	if err := d.bus.Tx(d.Address, []byte{reg}, b); err != nil {
		return 0, err
	}
	return signExtend(int32(b[0])<<16|int32(b[1])<<8|int32(b[2]), 24), nil
}

func (d *Device) readReg(reg byte) (byte, error) {
	b := d.buf[:1]
	if err := d.bus.Tx(d.Address, []byte{reg}, b); err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Device) writeReg(reg, val byte) error {
	return d.bus.Tx(d.Address, []byte{reg, val}, nil)
}

func signExtend(v int32, bits uint) int32 {
	if v&(1<<(bits-1)) != 0 {
		v -= 1 << bits
	}
	return v
}
