package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lintang-b-s/pathcodec/pkg/pathcodec"
	"github.com/lintang-b-s/pathcodec/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	knownJSON    = `[[35.894309002906084,-110.72522000409663],[35.89393097907304,-110.72577999904752],[35.89374498464167,-110.72606003843248],[35.893366960808635,-110.72661500424147]]`
	knownEncoded = "vx1vilihnM6hR7mEl2Q"
)

func TestParseMode(t *testing.T) {
	for _, s := range []string{"encode", "decode", "from-polyline", "to-polyline", " Encode "} {
		_, err := ParseMode(s)
		assert.NoError(t, err, s)
	}

	_, err := ParseMode("compress")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestTranscode(t *testing.T) {
	testCases := []struct {
		name    string
		mode    Mode
		input   string
		want    string
		wantErr error
	}{
		{
			name:  "encode",
			mode:  ModeEncode,
			input: knownJSON,
			want:  knownEncoded,
		},
		{
			name:  "encode empty path",
			mode:  ModeEncode,
			input: `[]`,
			want:  "",
		},
		{
			name:  "decode",
			mode:  ModeDecode,
			input: "FD",
			want:  `[[0.00001,0],[0.00001,0.00001]]`,
		},
		{
			name:    "decode invalid character",
			mode:    ModeDecode,
			input:   "vx1!",
			wantErr: pathcodec.ErrInvalidCharacter,
		},
		{
			name:    "decode truncated",
			mode:    ModeDecode,
			input:   "vx1",
			wantErr: pathcodec.ErrTruncated,
		},
		{
			name:  "from polyline",
			mode:  ModeFromPolyline,
			input: "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
			want: pathcodec.EncodeToString([]pathcodec.Point{
				pathcodec.NewPoint(38.5, -120.2),
				pathcodec.NewPoint(40.7, -120.95),
				pathcodec.NewPoint(43.252, -126.453),
			}),
		},
		{
			name:  "to polyline",
			mode:  ModeToPolyline,
			input: pathcodec.EncodeToString([]pathcodec.Point{
				pathcodec.NewPoint(38.5, -120.2),
				pathcodec.NewPoint(40.7, -120.95),
				pathcodec.NewPoint(43.252, -126.453),
			}),
			want: "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
		},
		{
			name:    "unknown mode",
			mode:    Mode("zip"),
			input:   "A",
			wantErr: ErrUnknownMode,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transcode(tt.mode, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Transcode(ModeEncode, `[[1,2],`)
	assert.Error(t, err)
}

func TestRunKeepsLineOrder(t *testing.T) {
	var in, want strings.Builder
	for i := 1; i <= 500; i++ {
		points := []pathcodec.Point{pathcodec.NewPoint(float64(i)*0.001, 110.0), pathcodec.NewPoint(float64(i)*0.001, 110.001)}
		line, err := FormatPoints(points)
		require.NoError(t, err)
		fmt.Fprintln(&in, line)
		fmt.Fprintln(&want, pathcodec.EncodeToString(points))
	}

	var out bytes.Buffer
	tr := NewTranscoder(zap.NewNop(), ModeEncode, 8, 4)
	summary, err := tr.Run(context.Background(), strings.NewReader(in.String()), &out)
	require.NoError(t, err)

	assert.Equal(t, 500, summary.Lines)
	assert.Equal(t, 0, summary.Failed)
	assert.NoError(t, summary.FirstErr)
	assert.Equal(t, want.String(), out.String())
}

func TestRunReportsFailedLines(t *testing.T) {
	input := "FD\n\nvx1!\n" + knownEncoded + "\nvx1"

	var out bytes.Buffer
	tr := NewTranscoder(zap.NewNop(), ModeToPolyline, 3, 2)
	summary, err := tr.Run(context.Background(), strings.NewReader(input), &out)
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Lines)
	assert.Equal(t, 2, summary.Failed)
	require.Error(t, summary.FirstErr)
	assert.True(t, errors.Is(summary.FirstErr, pathcodec.ErrInvalidCharacter))
	assert.Contains(t, summary.FirstErr.Error(), "line 3")
	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(summary.FirstErr))

	lines := strings.Split(out.String(), "\n")
	require.Len(t, lines, 6)
	assert.NotEmpty(t, lines[0])
	assert.Empty(t, lines[1])
	assert.Empty(t, lines[2])
	assert.NotEmpty(t, lines[3])
	assert.Empty(t, lines[4])
	assert.Empty(t, lines[5])
}

func TestRunCanceled(t *testing.T) {
	input := strings.Repeat(knownEncoded+"\n", 10000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := NewTranscoder(zap.NewNop(), ModeDecode, 2, 4)
	_, err := tr.Run(ctx, strings.NewReader(input), io.Discard)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBzip2Files(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "paths.txt.bz2")
	outPath := filepath.Join(dir, "encoded.txt.bz2")

	w, err := CreateOutput(inPath)
	require.NoError(t, err)
	_, err = io.WriteString(w, knownJSON+"\n"+knownJSON+"\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := OpenInput(inPath)
	require.NoError(t, err)
	out, err := CreateOutput(outPath)
	require.NoError(t, err)

	summary, err := NewTranscoder(zap.NewNop(), ModeEncode, 2, 2).Run(context.Background(), r, out)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.NoError(t, out.Close())
	assert.Equal(t, 2, summary.Lines)

	encoded, err := OpenInput(outPath)
	require.NoError(t, err)
	defer encoded.Close()
	bb, err := io.ReadAll(encoded)
	require.NoError(t, err)
	assert.Equal(t, knownEncoded+"\n"+knownEncoded+"\n", string(bb))
}

func TestPlainFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")

	w, err := CreateOutput(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, "hello\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := OpenInput(path)
	require.NoError(t, err)
	defer r.Close()
	bb, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(bb))

	_, err = OpenInput(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
