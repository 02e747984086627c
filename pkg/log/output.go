package log

import (
	"io"
	"os"
)

// ConsoleOutput writes entries to stderr.
type ConsoleOutput struct {
	w io.Writer
}

// NewConsoleOutput returns an Output bound to os.Stderr.
func NewConsoleOutput() *ConsoleOutput { return &ConsoleOutput{w: os.Stderr} }

func (o *ConsoleOutput) Write(_ *Entry, b []byte) error {
	w := o.w
	if w == nil {
		w = os.Stderr
	}
	_, err := w.Write(b)
	return err
}

func (o *ConsoleOutput) Close() error { return nil }

// WriterOutput writes entries to an arbitrary writer. Handy in tests.
type WriterOutput struct {
	W io.Writer
}

func (o *WriterOutput) Write(_ *Entry, b []byte) error {
	_, err := o.W.Write(b)
	return err
}

func (o *WriterOutput) Close() error { return nil }

// FileOutput appends entries to a file.
type FileOutput struct {
	f *os.File
}

// NewFileOutput opens (creating if needed) path for appending.
func NewFileOutput(path string) (*FileOutput, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileOutput{f: f}, nil
}

func (o *FileOutput) Write(_ *Entry, b []byte) error {
	_, err := o.f.Write(b)
	return err
}

func (o *FileOutput) Close() error { return o.f.Close() }

// NullOutput discards everything.
type NullOutput struct{}

func (NullOutput) Write(*Entry, []byte) error { return nil }
func (NullOutput) Close() error               { return nil }
