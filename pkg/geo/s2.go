package geo

import (
	"errors"

	"github.com/golang/geo/s2"
)

var ErrLengthMismatch = errors.New("paths have a different number of points")

func toS2Polyline(coords []Coordinate) s2.Polyline {
	line := make(s2.Polyline, len(coords))
	for i, c := range coords {
		line[i] = s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon))
	}
	return line
}

// PathLength returns the length of the path on the sphere in meter.
func PathLength(coords []Coordinate) float64 {
	if len(coords) < 2 {
		return 0
	}
	line := toS2Polyline(coords)
	return line.Length().Radians() * earthRadiusKM * 1000
}

// MaxDeviation returns the largest distance in meter between a[i] and b[i].
func MaxDeviation(a, b []Coordinate) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrLengthMismatch
	}

	maxDist := 0.0
	for i := range a {
		pa := s2.LatLngFromDegrees(a[i].Lat, a[i].Lon)
		pb := s2.LatLngFromDegrees(b[i].Lat, b[i].Lon)
		dist := pa.Distance(pb).Radians() * earthRadiusKM * 1000
		if dist > maxDist {
			maxDist = dist
		}
	}
	return maxDist, nil
}
