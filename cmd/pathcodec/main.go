package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lintang-b-s/pathcodec/pkg/batch"
	"github.com/lintang-b-s/pathcodec/pkg/config"
	"github.com/lintang-b-s/pathcodec/pkg/geo"
	"github.com/lintang-b-s/pathcodec/pkg/logger"
	"github.com/lintang-b-s/pathcodec/pkg/osmsource"
	"github.com/lintang-b-s/pathcodec/pkg/pathcodec"
	"github.com/lintang-b-s/pathcodec/pkg/util"
	"go.uber.org/zap"
)

const usage = `usage: pathcodec <command> [arguments]

commands:
  encode '[[lat,lon],...]'        encode a json path
  decode <encoded>                decode to a json path
  info <encoded>                  print point count, length and size
  polyline from|to <string>       convert from / to a google encoded polyline
  batch -mode=<mode> -in=<file> -out=<file>
                                  transcode one path per line, mode is encode, decode,
                                  from-polyline or to-polyline, .bz2 files are supported
  osm -in=<map.osm.pbf> -out=<file>
                                  encode the geometry of every openstreetmap way
`

var errUsage = errors.New("invalid usage")

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.NewWithLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, log, cfg); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		log.Error("pathcodec failed", zap.Error(err))
		stop()
		if errors.Is(err, errUsage) || util.ErrorCode(err) == util.ErrBadParamInput {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, log *zap.Logger, cfg config.Config) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "encode":
		if len(rest) != 1 {
			return errUsage
		}
		return transcodeOne(stdout, batch.ModeEncode, rest[0])

	case "decode":
		if len(rest) != 1 {
			return errUsage
		}
		return transcodeOne(stdout, batch.ModeDecode, rest[0])

	case "info":
		if len(rest) != 1 {
			return errUsage
		}
		return info(stdout, rest[0])

	case "polyline":
		if len(rest) != 2 {
			return errUsage
		}
		switch rest[0] {
		case "from":
			return transcodeOne(stdout, batch.ModeFromPolyline, rest[1])
		case "to":
			return transcodeOne(stdout, batch.ModeToPolyline, rest[1])
		}
		return errUsage

	case "batch":
		return runBatch(ctx, rest, stdout, log, cfg)

	case "osm":
		return runOSM(ctx, rest, stdout, log, cfg)

	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	}

	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func transcodeOne(stdout io.Writer, mode batch.Mode, input string) error {
	out, err := batch.Transcode(mode, strings.TrimSpace(input))
	if err != nil {
		return util.WrapErrorf(err, util.ErrBadParamInput, "%s", mode)
	}
	_, err = fmt.Fprintln(stdout, out)
	return err
}

func info(stdout io.Writer, encoded string) error {
	encoded = strings.TrimSpace(encoded)
	points, err := pathcodec.DecodeString(encoded)
	if err != nil {
		return util.WrapErrorf(err, util.ErrBadParamInput, "info")
	}

	coords := geo.FromPoints(points)
	fmt.Fprintf(stdout, "points:          %d\n", len(points))
	fmt.Fprintf(stdout, "length:          %.1f m\n", geo.PathLength(coords))
	if len(coords) >= 2 {
		first, last := coords[0], coords[len(coords)-1]
		fmt.Fprintf(stdout, "bearing:         %.1f deg\n",
			geo.BearingTo(first.Lat, first.Lon, last.Lat, last.Lon))
	}
	fmt.Fprintf(stdout, "encoded size:    %d bytes\n", len(encoded))
	_, err = fmt.Fprintf(stdout, "polyline size:   %d bytes\n", len(geo.PoylineFromCoords(coords)))
	return err
}

func runBatch(ctx context.Context, args []string, stdout io.Writer, log *zap.Logger, cfg config.Config) error {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	var (
		modeFlag = fs.String("mode", string(batch.ModeEncode), "encode, decode, from-polyline or to-polyline")
		inFlag   = fs.String("in", "-", "input file, - for stdin")
		outFlag  = fs.String("out", "-", "output file, - for stdout")
		workers  = fs.Int("workers", cfg.BatchWorkers, "number of transcoding workers")
	)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	mode, err := batch.ParseMode(*modeFlag)
	if err != nil {
		return err
	}

	in, err := batch.OpenInput(*inFlag)
	if err != nil {
		return err
	}
	defer in.Close()

	var out io.WriteCloser
	if *outFlag == "-" {
		out = nopCloser{stdout}
	} else {
		out, err = batch.CreateOutput(*outFlag)
		if err != nil {
			return err
		}
	}

	summary, err := batch.NewTranscoder(log, mode, *workers, cfg.BatchQueueSize).Run(ctx, in, out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return util.WrapErrorf(summary.FirstErr, util.ErrBadParamInput, "%d of %d lines failed", summary.Failed, summary.Lines)
	}
	return nil
}

func runOSM(ctx context.Context, args []string, stdout io.Writer, log *zap.Logger, cfg config.Config) error {
	fs := flag.NewFlagSet("osm", flag.ContinueOnError)
	var (
		inFlag      = fs.String("in", "", "openstreetmap .osm.pbf or .osm file")
		outFlag     = fs.String("out", "-", "output file, - for stdout")
		minNodes    = fs.Int("min_way_nodes", cfg.OsmMinWayNodes, "skip ways with fewer nodes")
		highwayOnly = fs.Bool("highway_only", cfg.OsmHighwayOnly, "only encode ways tagged highway=*")
	)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *inFlag == "" {
		return fmt.Errorf("%w: -in is required", errUsage)
	}

	format, err := osmsource.FormatFromPath(*inFlag)
	if err != nil {
		return err
	}

	f, err := os.Open(*inFlag)
	if err != nil {
		return err
	}
	defer f.Close()

	ways, err := osmsource.NewExtractor(log, *minNodes, *highwayOnly).Extract(ctx, f, format)
	if err != nil {
		return err
	}

	var out io.WriteCloser
	if *outFlag == "-" {
		out = nopCloser{stdout}
	} else {
		out, err = batch.CreateOutput(*outFlag)
		if err != nil {
			return err
		}
	}

	err = osmsource.WriteWays(out, ways)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
