package geo

import "math"

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// SplitMinutes splits the magnitude of v into whole degrees and minutes
// rounded to the given number of decimals. Rounding that reaches 60 minutes
// carries into the degrees.
func SplitMinutes(v float64, decimals int) (deg int, minutes float64) {
	scale := math.Pow(10, float64(max(decimals, 0)))

	// work in integer units of the last minute decimal
	total := math.Round(math.Abs(v) * 60 * scale)
	perDegree := 60 * scale

	d := math.Floor(total / perDegree)
	rem := total - d*perDegree

	return int(d), rem / scale
}

// SplitSeconds splits the magnitude of v into whole degrees, whole minutes
// and seconds rounded to the given number of decimals, with carry.
func SplitSeconds(v float64, decimals int) (deg, minutes int, seconds float64) {
	scale := math.Pow(10, float64(max(decimals, 0)))

	total := math.Round(math.Abs(v) * 3600 * scale)
	perMinute := 60 * scale
	perDegree := 3600 * scale

	d := math.Floor(total / perDegree)
	rem := total - d*perDegree
	m := math.Floor(rem / perMinute)
	rem -= m * perMinute

	return int(d), int(m), rem / scale
}

// MetersToDegrees converts a north/east error in meters to degrees at the
// given latitude, using 1 degree ≈ 111 km.
func MetersToDegrees(lat, dn, de float64) (dLat, dLon float64) {
	const metersPerDegree = 111000.0

	dLat = dn / metersPerDegree
	cos := math.Cos(Radians(lat))
	if cos < 1e-12 {
		return dLat, 180
	}
	dLon = de / (metersPerDegree * cos)

	return dLat, dLon
}
