package monitor

import "testing"

func TestClassifyBands(t *testing.T) {
	cases := []struct {
		pm25 uint16
		want Level
	}{
		{0, Excellent},
		{12, Excellent}, // boundary belongs to the lower band
		{13, Good},
		{35, Good},
		{36, Moderate},
		{55, Moderate},
		{56, Unhealthy},
		{150, Unhealthy},
		{151, Hazardous},
		{999, Hazardous},
	}
	for _, tc := range cases {
		if got := Classify(tc.pm25); got != tc.want {
			t.Errorf("Classify(%d) = %v, want %v", tc.pm25, got, tc.want)
		}
	}
}

func TestClassifyIsMonotonic(t *testing.T) {
	prev := Classify(0)
	for v := uint16(1); v <= 400; v++ {
		cur := Classify(v)
		if cur < prev {
			t.Fatalf("classification decreased at %d: %v -> %v", v, prev, cur)
		}
		prev = cur
	}
}

func TestLevelStringAndColor(t *testing.T) {
	cases := []struct {
		level Level
		text  string
		color uint32
	}{
		{Excellent, "Excellent", 0x00FF00},
		{Good, "Good", 0xFFFF00},
		{Moderate, "Moderate", 0xFF8800},
		{Unhealthy, "Unhealthy", 0xFF0000},
		{Hazardous, "Hazardous", 0xFF00FF},
	}
	for _, tc := range cases {
		if tc.level.String() != tc.text {
			t.Errorf("String() = %q, want %q", tc.level.String(), tc.text)
		}
		if tc.level.Color() != tc.color {
			t.Errorf("%s color = %#06x, want %#06x", tc.text, tc.level.Color(), tc.color)
		}
	}
}
