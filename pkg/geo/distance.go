package geo

import (
	"math"

	"github.com/lintang-b-s/pathcodec/pkg/pathcodec"
	"github.com/lintang-b-s/pathcodec/pkg/util"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

func FromPoints(points []pathcodec.Point) []Coordinate {
	coords := make([]Coordinate, len(points))
	for i, p := range points {
		coords[i] = NewCoordinate(p.Lat, p.Long)
	}
	return coords
}

func ToPoints(coords []Coordinate) []pathcodec.Point {
	points := make([]pathcodec.Point, len(coords))
	for i, c := range coords {
		points[i] = pathcodec.NewPoint(c.Lat, c.Lon)
	}
	return points
}

const (
	earthRadiusKM = 6371.0
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

// CalculateHaversineDistance. calculate haversine distance in km
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = util.DegreeToRadians(latOne)
	longOne = util.DegreeToRadians(longOne)
	latTwo = util.DegreeToRadians(latTwo)
	longTwo = util.DegreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}
