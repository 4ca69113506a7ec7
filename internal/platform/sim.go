// Package platform supplies the target-specific wiring the entry
// points compose: radios, TLS dialers and, on the host, simulated
// sensor buses. Everything behind these types is interchangeable; the
// monitor core only ever sees its own port interfaces.
package platform

import (
	"sync"

	"airmon-go/x/mathx"
)

// walk is a bounded pseudo-random walk, deterministic per seed. Used
// by the simulated sensors so host runs produce plausible, moving
// values.
type walk struct {
	state   uint32
	value   int32
	lo, hi  int32
	maxStep int32
}

func newWalk(seed uint32, start, lo, hi, maxStep int32) *walk {
	return &walk{state: seed, value: start, lo: lo, hi: hi, maxStep: maxStep}
}

func (w *walk) next() int32 {
	// xorshift32
	x := w.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	w.state = x

	span := 2*w.maxStep + 1
	delta := int32(x%uint32(span)) - w.maxStep
	w.value = mathx.Clamp(w.value+delta, w.lo, w.hi)
	return w.value
}

// SimRadio models an already-provisioned host network: the first
// Connect succeeds and the link stays up until Drop is called.
type SimRadio struct {
	mu        sync.Mutex
	ssid      string
	connected bool
}

func NewSimRadio() *SimRadio { return &SimRadio{} }

func (r *SimRadio) Connected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connected
}

func (r *SimRadio) Connect(ssid, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ssid = ssid
	r.connected = true
	return nil
}

func (r *SimRadio) Identity() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ssid
}

// Drop simulates a silent link loss.
func (r *SimRadio) Drop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connected = false
}

// SimPMS emulates a PMSA003I on the I2C bus. Every transaction that
// reads a full frame gets fresh, checksummed data whose PM2.5 value
// takes a bounded walk; the other fields are derived from it.
type SimPMS struct {
	mu   sync.Mutex
	pm25 *walk
}

func NewSimPMS() *SimPMS {
	return &SimPMS{pm25: newWalk(0x6d2b79f5, 8, 0, 180, 2)}
}

func (s *SimPMS) Tx(addr uint16, w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(r) < 32 {
		return nil
	}

	pm25 := uint16(s.pm25.next())
	pm1 := pm25 / 2
	pm10 := pm25 + pm25/4

	var f [32]byte
	f[0], f[1] = 0x42, 0x4D
	putWord(f[:], 1, 28) // frame length
	// Standard and environmental channel trios track each other on the
	// simulator; real hardware diverges outdoors.
	for _, base := range []int{2, 5} {
		putWord(f[:], base, pm1)
		putWord(f[:], base+1, pm25)
		putWord(f[:], base+2, pm10)
	}
	// Particle counts per 0.1 L, loosely scaled from PM2.5.
	putWord(f[:], 8, 120*pm25+300)
	putWord(f[:], 9, 40*pm25+80)
	putWord(f[:], 10, 8*pm25+10)
	putWord(f[:], 11, 2*pm25)
	putWord(f[:], 12, pm25/2)
	putWord(f[:], 13, pm25/4)

	var sum uint16
	for _, c := range f[:30] {
		sum += uint16(c)
	}
	putWord(f[:], 15, sum)

	copy(r, f[:])
	return nil
}

// putWord writes big-endian word i of a frame (word 0 is the magic).
func putWord(f []byte, i int, v uint16) {
	f[2*i] = byte(v >> 8)
	f[2*i+1] = byte(v)
}

// Fixed calibration set for the simulated SPA06. With raw samples near
// zero, compensation lands around 21.5 C and 1013.25 hPa.
const (
	simC0  = 43     // temperature base, c0/2 degrees
	simC1  = -260   // temperature slope
	simC00 = 101325 // pressure base, Pa
	simC10 = -50000 // pressure slope
)

// SimSPA06 emulates the SPA06-003 register file: a known product ID,
// always-ready status, a fixed calibration block and slowly drifting
// raw samples.
type SimSPA06 struct {
	mu   sync.Mutex
	traw *walk
	praw *walk
}

func NewSimSPA06() *SimSPA06 {
	return &SimSPA06{
		traw: newWalk(0x9e3779b9, 0, -4000, 4000, 200),
		praw: newWalk(0x85ebca6b, 0, -3000, 3000, 150),
	}
}

func (s *SimSPA06) Tx(addr uint16, w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Configuration writes are accepted and ignored.
	if len(w) != 1 || len(r) == 0 {
		return nil
	}

	switch w[0] {
	case 0x0D: // product ID
		r[0] = 0x11
	case 0x08: // MEAS_CFG: everything ready, continuous mode
		r[0] = 0xF7
	case 0x10: // calibration block
		coef := packCoefficients(simC0, simC1, simC00, simC10)
		copy(r, coef[:])
	case 0x03: // raw temperature
		putSample(r, s.traw.next())
	case 0x00: // raw pressure
		putSample(r, s.praw.next())
	default:
		for i := range r {
			r[i] = 0
		}
	}
	return nil
}

// packCoefficients encodes c0/c1 (12-bit) and c00/c10 (20-bit) into
// the 18-byte calibration block layout. Higher-order terms stay zero;
// the simulator is linear.
func packCoefficients(c0, c1, c00, c10 int32) [18]byte {
	u0 := uint32(c0) & 0xFFF
	u1 := uint32(c1) & 0xFFF
	u00 := uint32(c00) & 0xFFFFF
	u10 := uint32(c10) & 0xFFFFF

	var b [18]byte
	b[0] = byte(u0 >> 4)
	b[1] = byte(u0<<4) | byte(u1>>8)
	b[2] = byte(u1)
	b[3] = byte(u00 >> 12)
	b[4] = byte(u00 >> 4)
	b[5] = byte(u00<<4) | byte(u10>>16)
	b[6] = byte(u10 >> 8)
	b[7] = byte(u10)
	return b
}

// putSample writes a 24-bit two's-complement sample.
func putSample(r []byte, v int32) {
	u := uint32(v) & 0xFFFFFF
	r[0] = byte(u >> 16)
	if len(r) > 1 {
		r[1] = byte(u >> 8)
	}
	if len(r) > 2 {
		r[2] = byte(u)
	}
}
