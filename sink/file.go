package sink

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// fileSink is a buffered writer over a created file.
type fileSink struct {
	*bufio.Writer
	f *os.File
}

// NewFile creates (or truncates) path and returns a buffered sink over it.
func NewFile(path string, bufSize int) (Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output %s: %w", path, err)
	}
	return &fileSink{Writer: bufio.NewWriterSize(f, bufSize), f: f}, nil
}

func (s *fileSink) Close() error {
	if err := s.Writer.Flush(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}

// gzipSink layers bufio over a gzip encoder over a created file. The
// compressor is an opaque transform on the byte stream; enumeration logic
// never sees it.
type gzipSink struct {
	*bufio.Writer
	gz *gzip.Writer
	f  *os.File
}

// NewGzipFile creates path and returns a buffered, gzip-compressed sink.
func NewGzipFile(path string, bufSize int) (Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output %s: %w", path, err)
	}
	gz, err := gzip.NewWriterLevel(f, gzip.BestSpeed)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzipSink{Writer: bufio.NewWriterSize(gz, bufSize), gz: gz, f: f}, nil
}

func (s *gzipSink) Close() error {
	if err := s.Writer.Flush(); err != nil {
		s.gz.Close()
		s.f.Close()
		return err
	}
	if err := s.gz.Close(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}

// stdoutSink buffers standard output. Close flushes but leaves the process
// stdout open.
type stdoutSink struct {
	*bufio.Writer
}

// NewStdout returns a buffered sink over standard output.
func NewStdout(bufSize int) Sink {
	return &stdoutSink{Writer: bufio.NewWriterSize(os.Stdout, bufSize)}
}

func (s *stdoutSink) Close() error {
	return s.Writer.Flush()
}

// discardSink drops every byte. Used when the destination is "discard".
type discardSink struct{}

// NewDiscard returns a sink that accepts and drops all writes.
func NewDiscard() Sink {
	return discardSink{}
}

func (discardSink) Write(p []byte) (int, error) { return io.Discard.Write(p) }
func (discardSink) Flush() error                { return nil }
func (discardSink) Close() error                { return nil }
