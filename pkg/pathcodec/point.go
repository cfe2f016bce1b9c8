package pathcodec

import "math"

const (
	// precision is the number of quantization steps per degree (5 decimal digits, ~1.1 m at the equator).
	precision = 100000.0
)

type Point struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

func NewPoint(lat, long float64) Point {
	return Point{
		Lat:  lat,
		Long: long,
	}
}

func (p Point) GetLat() float64 {
	return p.Lat
}

func (p Point) GetLong() float64 {
	return p.Long
}

// quantize. round a coordinate in degree to the nearest 1e-5 step.
func quantize(v float64) int64 {
	return int64(math.Round(v * precision))
}

// dequantize returns the float closest to the 5 digit decimal q / 1e5.
func dequantize(q int64) float64 {
	return float64(q) / precision
}

// Quantize returns p rounded to the precision that survives an encode/decode round trip.
func Quantize(p Point) Point {
	return NewPoint(dequantize(quantize(p.Lat)), dequantize(quantize(p.Long)))
}
