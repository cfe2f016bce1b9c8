package osmsource

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/lintang-b-s/pathcodec/pkg/pathcodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="-7.7601" lon="110.3701" version="1"/>
  <node id="2" lat="-7.7605" lon="110.3709" version="1"/>
  <node id="3" lat="-7.7612" lon="110.3715" version="1"/>
  <node id="4" lat="-7.7620" lon="110.3720" version="1"/>
  <way id="10" version="1">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="3"/>
    <tag k="highway" v="residential"/>
    <tag k="name" v="Jalan Kaliurang"/>
  </way>
  <way id="11" version="1">
    <nd ref="3"/>
    <nd ref="4"/>
    <tag k="building" v="yes"/>
  </way>
  <way id="12" version="1">
    <nd ref="4"/>
    <tag k="highway" v="service"/>
  </way>
  <way id="13" version="1">
    <nd ref="4"/>
    <nd ref="99"/>
    <tag k="highway" v="service"/>
  </way>
</osm>`

func TestExtractHighways(t *testing.T) {
	ex := NewExtractor(zap.NewNop(), 2, true)
	ways, err := ex.Extract(context.Background(), strings.NewReader(sampleOSM), FormatXML)
	require.NoError(t, err)

	// way 11 is not a highway, 12 is too short and 13 references a missing node.
	require.Len(t, ways, 1)
	way := ways[0]
	assert.Equal(t, int64(10), way.ID)
	assert.Equal(t, "Jalan Kaliurang", way.Name)
	assert.Equal(t, "residential", way.Highway)

	want := []pathcodec.Point{
		pathcodec.NewPoint(-7.7601, 110.3701),
		pathcodec.NewPoint(-7.7605, 110.3709),
		pathcodec.NewPoint(-7.7612, 110.3715),
	}
	assert.Equal(t, want, way.Points)
	assert.Equal(t, pathcodec.EncodeToString(want), way.Encoded)

	decoded, err := pathcodec.DecodeString(way.Encoded)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
}

func TestExtractAllWays(t *testing.T) {
	ex := NewExtractor(zap.NewNop(), 2, false)
	ways, err := ex.Extract(context.Background(), strings.NewReader(sampleOSM), FormatXML)
	require.NoError(t, err)

	ids := []int64{}
	for _, w := range ways {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []int64{10, 11}, ids)
}

func TestWriteWays(t *testing.T) {
	var buf bytes.Buffer
	err := WriteWays(&buf, []Way{
		{ID: 10, Encoded: "vx1", Name: "Jalan\tMalioboro"},
		{ID: 11, Encoded: "F"},
	})
	require.NoError(t, err)
	assert.Equal(t, "10\tvx1\tJalan Malioboro\n11\tF\t\n", buf.String())
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("./data/jogja.osm.pbf")
	require.NoError(t, err)
	assert.Equal(t, FormatPBF, f)

	f, err = FormatFromPath("extract.osm")
	require.NoError(t, err)
	assert.Equal(t, FormatXML, f)

	_, err = FormatFromPath("extract.geojson")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestExtractCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ex := NewExtractor(zap.NewNop(), 2, true)
	_, err := ex.Extract(ctx, strings.NewReader(sampleOSM), FormatXML)
	assert.ErrorIs(t, err, context.Canceled)
}
