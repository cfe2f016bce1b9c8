package osmsource

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lintang-b-s/pathcodec/pkg/pathcodec"
	"github.com/lintang-b-s/pathcodec/pkg/util"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"
)

type Format int

const (
	FormatPBF Format = iota
	FormatXML
)

var ErrUnknownFormat = errors.New("unknown osm file format")

// FormatFromPath picks the format from the file extension (.osm.pbf / .pbf or .osm).
func FormatFromPath(path string) (Format, error) {
	switch {
	case strings.HasSuffix(path, ".pbf"):
		return FormatPBF, nil
	case strings.HasSuffix(path, ".osm"), strings.HasSuffix(path, ".xml"):
		return FormatXML, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

type Way struct {
	ID      int64
	Name    string
	Highway string
	Points  []pathcodec.Point
	Encoded string
}

type osmScanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

type Extractor struct {
	log         *zap.Logger
	minWayNodes int
	highwayOnly bool
}

func NewExtractor(log *zap.Logger, minWayNodes int, highwayOnly bool) *Extractor {
	return &Extractor{
		log:         log,
		minWayNodes: minWayNodes,
		highwayOnly: highwayOnly,
	}
}

func newScanner(ctx context.Context, r io.Reader, format Format) (osmScanner, error) {
	switch format {
	case FormatPBF:
		scanner := osmpbf.New(ctx, r, 1)
		scanner.SkipRelations = true
		return scanner, nil
	case FormatXML:
		return osmxml.New(ctx, r), nil
	}
	return nil, ErrUnknownFormat
}

func (e *Extractor) acceptWay(way *osm.Way) bool {
	if len(way.Nodes) < e.minWayNodes {
		return false
	}
	if e.highwayOnly && way.Tags.Find("highway") == "" {
		return false
	}
	return true
}

// Extract reads rs twice: the first pass collects accepted ways, the second one resolves their node coordinates.
func (e *Extractor) Extract(ctx context.Context, rs io.ReadSeeker, format Format) ([]Way, error) {
	scanner, err := newScanner(ctx, rs, format)
	if err != nil {
		return nil, err
	}

	// must not be parallel
	var (
		osmWays   []*osm.Way
		wayNodes  = make(map[osm.NodeID]pathcodec.Point)
		countWays = 0
	)
	for scanner.Scan() {
		if util.StopConcurrentOperation(ctx) {
			scanner.Close()
			return nil, ctx.Err()
		}
		way, ok := scanner.Object().(*osm.Way)
		if !ok || !e.acceptWay(way) {
			continue
		}
		if (countWays+1)%50000 == 0 {
			e.log.Info("reading openstreetmap ways...", zap.Int("ways", countWays+1))
		}
		countWays++

		osmWays = append(osmWays, way)
		for _, n := range way.Nodes {
			wayNodes[n.ID] = pathcodec.Point{}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, err
	}
	scanner.Close()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	scanner, err = newScanner(ctx, rs, format)
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	found := make(map[osm.NodeID]struct{}, len(wayNodes))
	for scanner.Scan() {
		if util.StopConcurrentOperation(ctx) {
			return nil, ctx.Err()
		}
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, ok := wayNodes[node.ID]; ok {
			wayNodes[node.ID] = pathcodec.NewPoint(node.Lat, node.Lon)
			found[node.ID] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ways := make([]Way, 0, len(osmWays))
	for _, w := range osmWays {
		points := make([]pathcodec.Point, 0, len(w.Nodes))
		complete := true
		for _, n := range w.Nodes {
			if _, ok := found[n.ID]; !ok {
				complete = false
				break
			}
			points = append(points, wayNodes[n.ID])
		}
		if !complete {
			e.log.Debug("skipping way with missing nodes", zap.Int64("wayID", int64(w.ID)))
			continue
		}

		ways = append(ways, Way{
			ID:      int64(w.ID),
			Name:    w.Tags.Find("name"),
			Highway: w.Tags.Find("highway"),
			Points:  points,
			Encoded: pathcodec.EncodeToString(points),
		})
	}

	e.log.Info("extracted openstreetmap ways", zap.Int("accepted", countWays), zap.Int("encoded", len(ways)))
	return ways, nil
}

// WriteWays writes one "wayID<TAB>encoded<TAB>name" line per way.
func WriteWays(w io.Writer, ways []Way) error {
	bw := bufio.NewWriter(w)
	for _, way := range ways {
		name := strings.NewReplacer("\t", " ", "\n", " ").Replace(way.Name)
		if _, err := bw.WriteString(strconv.FormatInt(way.ID, 10) + "\t" + way.Encoded + "\t" + name + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
