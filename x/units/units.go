// Package units holds the pure unit conversions used by the display
// and telemetry paths.
package units

import "math"

// Standard sea-level pressure, hPa.
const SeaLevelHPa = 1013.25

// CToF converts Celsius to Fahrenheit.
func CToF(c float64) float64 { return c*9/5 + 32 }

// FToC converts Fahrenheit to Celsius.
func FToC(f float64) float64 { return (f - 32) * 5 / 9 }

// HPaToInHg converts hectopascals to inches of mercury.
func HPaToInHg(hpa float64) float64 { return hpa * 0.02953 }

// PressureAltitude estimates altitude in metres from station pressure
// using the barometric formula against standard sea-level pressure.
func PressureAltitude(hpa float64) float64 {
	return 44330 * (1 - math.Pow(hpa/SeaLevelHPa, 1/5.255))
}

// Round1 rounds to one decimal place (telemetry convention for
// temperatures and pressures).
func Round1(v float64) float64 { return math.Round(v*10) / 10 }

// Round2 rounds to two decimal places (inHg telemetry convention).
func Round2(v float64) float64 { return math.Round(v*100) / 100 }
