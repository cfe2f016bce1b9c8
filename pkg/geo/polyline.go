package geo

import (
	"fmt"

	"github.com/twpayne/go-polyline"
)

// PoylineFromCoords encodes coords with the google encoded polyline algorithm (precision 1e5).
func PoylineFromCoords(coords []Coordinate) string {
	pc := make([][]float64, len(coords))
	for i, c := range coords {
		pc[i] = []float64{c.Lat, c.Lon}
	}
	return string(polyline.EncodeCoords(pc))
}

func CoordsFromPolyline(encoded string) ([]Coordinate, error) {
	pc, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%d trailing bytes after polyline", len(rest))
	}

	coords := make([]Coordinate, len(pc))
	for i, c := range pc {
		coords[i] = NewCoordinate(c[0], c[1])
	}
	return coords, nil
}
