package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lintang-b-s/pathcodec/pkg/geo"
	"github.com/lintang-b-s/pathcodec/pkg/pathcodec"
)

type Mode string

const (
	ModeEncode       Mode = "encode"
	ModeDecode       Mode = "decode"
	ModeFromPolyline Mode = "from-polyline"
	ModeToPolyline   Mode = "to-polyline"
)

var ErrUnknownMode = errors.New("unknown batch mode")

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeEncode, ModeDecode, ModeFromPolyline, ModeToPolyline:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// ParsePoints parses a json array of [lat, lon] pairs.
func ParsePoints(s string) ([]pathcodec.Point, error) {
	var pairs [][2]float64
	if err := json.Unmarshal([]byte(s), &pairs); err != nil {
		return nil, fmt.Errorf("expected a json array of [lat, lon] pairs: %w", err)
	}

	points := make([]pathcodec.Point, len(pairs))
	for i, p := range pairs {
		points[i] = pathcodec.NewPoint(p[0], p[1])
	}
	return points, nil
}

// FormatPoints is the inverse of ParsePoints.
func FormatPoints(points []pathcodec.Point) (string, error) {
	pairs := make([][2]float64, len(points))
	for i, p := range points {
		pairs[i] = [2]float64{p.Lat, p.Long}
	}
	bb, err := json.Marshal(pairs)
	if err != nil {
		return "", err
	}
	return string(bb), nil
}

// Transcode converts one input line according to mode.
func Transcode(mode Mode, line string) (string, error) {
	switch mode {
	case ModeEncode:
		points, err := ParsePoints(line)
		if err != nil {
			return "", err
		}
		return pathcodec.EncodeToString(points), nil

	case ModeDecode:
		points, err := pathcodec.DecodeString(line)
		if err != nil {
			return "", err
		}
		return FormatPoints(points)

	case ModeFromPolyline:
		coords, err := geo.CoordsFromPolyline(line)
		if err != nil {
			return "", err
		}
		return pathcodec.EncodeToString(geo.ToPoints(coords)), nil

	case ModeToPolyline:
		points, err := pathcodec.DecodeString(line)
		if err != nil {
			return "", err
		}
		return geo.PoylineFromCoords(geo.FromPoints(points)), nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}
