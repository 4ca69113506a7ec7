package monitor

// Level is the air-quality classification of a PM2.5 concentration.
type Level uint8

const (
	Excellent Level = iota
	Good
	Moderate
	Unhealthy
	Hazardous
)

// Display colors, 0xRRGGBB.
const (
	colorExcellent = 0x00FF00
	colorGood      = 0xFFFF00
	colorModerate  = 0xFF8800
	colorUnhealthy = 0xFF0000
	colorHazardous = 0xFF00FF
)

// Classify maps a PM2.5 concentration (µg/m³) to its band. The bands
// are closed below: a boundary value belongs to the lower band.
func Classify(pm25 uint16) Level {
	switch {
	case pm25 <= 12:
		return Excellent
	case pm25 <= 35:
		return Good
	case pm25 <= 55:
		return Moderate
	case pm25 <= 150:
		return Unhealthy
	default:
		return Hazardous
	}
}

func (l Level) String() string {
	switch l {
	case Excellent:
		return "Excellent"
	case Good:
		return "Good"
	case Moderate:
		return "Moderate"
	case Unhealthy:
		return "Unhealthy"
	default:
		return "Hazardous"
	}
}

// Color returns the display color associated with the band.
func (l Level) Color() uint32 {
	switch l {
	case Excellent:
		return colorExcellent
	case Good:
		return colorGood
	case Moderate:
		return colorModerate
	case Unhealthy:
		return colorUnhealthy
	default:
		return colorHazardous
	}
}
