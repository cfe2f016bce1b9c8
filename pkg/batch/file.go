package batch

import (
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
)

const stdio = "-"

type multiCloser struct {
	io.Reader
	io.Writer
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var firstErr error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// OpenInput opens path for reading, "-" is stdin and a .bz2 suffix is decompressed on the fly.
func OpenInput(path string) (io.ReadCloser, error) {
	if path == stdio || path == "" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".bz2") {
		return f, nil
	}

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &multiCloser{Reader: bz, closers: []io.Closer{bz, f}}, nil
}

// CreateOutput creates path for writing, "-" is stdout and a .bz2 suffix is compressed.
func CreateOutput(path string) (io.WriteCloser, error) {
	if path == stdio || path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".bz2") {
		return f, nil
	}

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		f.Close()
		return nil, err
	}
	return &multiCloser{Writer: bz, closers: []io.Closer{bz, f}}, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
