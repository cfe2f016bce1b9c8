package batch

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/lintang-b-s/pathcodec/pkg/concurrent"
	"github.com/lintang-b-s/pathcodec/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type job struct {
	line int
	text string
}

type Result struct {
	Line   int
	Output string
	Err    error
}

type Summary struct {
	Lines  int
	Failed int
	// FirstErr is the error of the lowest failing line, nil if every line succeeded.
	FirstErr error
}

// Transcoder converts a line oriented file in parallel. output line i always belongs to input line i,
// blank and failing input lines give a blank output line.
type Transcoder struct {
	log       *zap.Logger
	mode      Mode
	workers   int
	queueSize int
}

func NewTranscoder(log *zap.Logger, mode Mode, workers, queueSize int) *Transcoder {
	return &Transcoder{
		log:       log,
		mode:      mode,
		workers:   workers,
		queueSize: queueSize,
	}
}

func (t *Transcoder) transcodeJob(j job) Result {
	text := strings.TrimSpace(j.text)
	if text == "" {
		return Result{Line: j.line}
	}

	out, err := Transcode(t.mode, text)
	if err != nil {
		return Result{Line: j.line, Err: util.WrapErrorf(err, util.ErrBadParamInput, "line %d", j.line)}
	}
	return Result{Line: j.line, Output: out}
}

func (t *Transcoder) Run(ctx context.Context, r io.Reader, w io.Writer) (Summary, error) {
	pool := concurrent.NewWorkerPool[job, Result](t.workers, t.queueSize)
	pool.Start(t.transcodeJob)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer func() {
			pool.Close()
			pool.Wait()
		}()

		br := bufio.NewReader(r)
		lineNo := 0
		for {
			text, err := util.ReadLine(br)
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}

			lineNo++
			if err := pool.AddJob(gctx, job{line: lineNo, text: text}); err != nil {
				return err
			}
		}
	})

	var summary Summary
	g.Go(func() error {
		bw := bufio.NewWriter(w)
		pending := make(map[int]Result)
		next := 1

		var writeErr error
		// keep draining after a write error, workers block on a full results channel otherwise.
		for res := range pool.CollectResults() {
			pending[res.Line] = res
			for {
				cur, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++

				summary.Lines++
				if cur.Err != nil {
					summary.Failed++
					if summary.FirstErr == nil {
						summary.FirstErr = cur.Err
					}
					t.log.Warn("failed to transcode line", zap.Int("line", cur.Line), zap.Error(cur.Err))
				}

				if writeErr == nil {
					_, writeErr = bw.WriteString(cur.Output + "\n")
				}
			}
		}

		if writeErr != nil {
			return writeErr
		}
		return bw.Flush()
	})

	if err := g.Wait(); err != nil {
		return summary, err
	}

	t.log.Info("batch transcoding done", zap.String("mode", string(t.mode)),
		zap.Int("lines", summary.Lines), zap.Int("failed", summary.Failed))
	return summary, nil
}
