package spa06

import (
	"math"
	"testing"
)

// regI2C emulates the SPA06 register file: a one-byte write selects
// the start register, reads stream sequentially from there.
type regI2C struct {
	regs   [0x30]byte
	writes map[byte]byte
}

func (f *regI2C) Tx(addr uint16, w, r []byte) error {
	if len(w) == 1 && len(r) > 0 {
		start := int(w[0])
		for i := range r {
			r[i] = f.regs[start+i]
		}
		return nil
	}
	if len(w) == 2 {
		if f.writes == nil {
			f.writes = map[byte]byte{}
		}
		f.writes[w[0]] = w[1]
		f.regs[w[0]] = w[1]
	}
	return nil
}

// newTestDevice builds a register file with a known coefficient set:
// c0=100, c1=-100, c00=100000, c10=-50000, rest zero;
// traw=262144 (scaled 0.5), praw=524288 (scaled 1.0).
// Expected: T = 100*0.5 - 100*0.5 = 0 °C, P = (100000-50000)/100 = 500 hPa.
func newTestDevice(t *testing.T) (*Device, *regI2C) {
	t.Helper()
	f := &regI2C{}
	f.regs[regID] = idSPA06
	f.regs[regMeasCfg] = statusCoefRdy | statusSensorRdy | statusTmpRdy | statusPrsRdy

	coef := []byte{
		0x06, 0x4F, 0x9C, // c0=0x064, c1=0xF9C (-100)
		0x18, 0x6A, 0x0F, // c00=0x186A0 (100000), c10 high nibble 0xF
		0x3C, 0x30, // c10=0xF3C30 (-50000)
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // c01..c30 = 0
	}
	copy(f.regs[regCoef:], coef)

	f.regs[regTMP] = 0x04 // 0x040000 = 262144
	f.regs[regPSR] = 0x08 // 0x080000 = 524288

	d := New(f)
	if err := d.Configure(); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	return &d, f
}

func TestConfigureStartsContinuousMode(t *testing.T) {
	_, f := newTestDevice(t)
	if got := f.writes[regMeasCfg]; got != modeContinuous {
		t.Errorf("MEAS_CFG = %#x, want %#x", got, modeContinuous)
	}
}

func TestConfigureRejectsUnknownID(t *testing.T) {
	f := &regI2C{}
	f.regs[regID] = 0x55
	d := New(f)
	if err := d.Configure(); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCompensatedReadings(t *testing.T) {
	d, _ := newTestDevice(t)

	temp, err := d.ReadTemperature()
	if err != nil {
		t.Fatalf("ReadTemperature: %v", err)
	}
	if math.Abs(temp-0.0) > 1e-9 {
		t.Errorf("temperature = %v, want 0", temp)
	}

	press, err := d.ReadPressure()
	if err != nil {
		t.Fatalf("ReadPressure: %v", err)
	}
	if math.Abs(press-500.0) > 1e-9 {
		t.Errorf("pressure = %v hPa, want 500", press)
	}
}

func TestReadyFlags(t *testing.T) {
	d, f := newTestDevice(t)

	// Configure wrote the mode bits; raise the status bits a running
	// sensor would report.
	f.regs[regMeasCfg] = modeContinuous | statusTmpRdy | statusPrsRdy
	ok, err := d.TemperatureReady()
	if err != nil || !ok {
		t.Fatalf("TemperatureReady = %v, %v", ok, err)
	}

	f.regs[regMeasCfg] = modeContinuous // measurement running, nothing ready
	if ok, _ := d.TemperatureReady(); ok {
		t.Error("TemperatureReady true with TMP_RDY clear")
	}
	if ok, _ := d.PressureReady(); ok {
		t.Error("PressureReady true with PRS_RDY clear")
	}
}

func TestSignExtend(t *testing.T) {
	cases := []struct {
		v    int32
		bits uint
		want int32
	}{
		{0x064, 12, 100},
		{0xF9C, 12, -100},
		{0x186A0, 20, 100000},
		{0xF3C30, 20, -50000},
		{0x8000, 16, -32768},
		{0x7FFF, 16, 32767},
	}
	for _, c := range cases {
		if got := signExtend(c.v, c.bits); got != c.want {
			t.Errorf("signExtend(%#x, %d) = %d, want %d", c.v, c.bits, got, c.want)
		}
	}
}
