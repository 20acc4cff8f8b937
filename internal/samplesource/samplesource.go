// Package samplesource reads numeric samples from files.
//
// Supported formats are CSV, JSON lines, YAML and whitespace-separated
// numbers. The format is picked from the file extension.
package samplesource

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

var (
	// ErrNoSamples is returned when a file parses but holds no samples.
	ErrNoSamples = errors.New("samplesource: no samples")

	// ErrUnknownColumn is returned when the requested CSV column or JSON
	// field does not exist.
	ErrUnknownColumn = errors.New("samplesource: unknown column")
)

// Sample is one value read from a file.
type Sample struct {
	// Line is the 1-based line the value was read from.
	Line  int
	Value float64
}

// Value returns the sample's value. It serves as a graph.MapperFunc.
func Value(s Sample) float64 { return s.Value }

// Format is a sample file format.
type Format int

const (
	FormatText Format = iota
	FormatCSV
	FormatJSONL
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSONL:
		return "jsonl"
	case FormatYAML:
		return "yaml"
	default:
		return "text"
	}
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".jsonl", ".ndjson":
		return FormatJSONL
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// ParseError reports a malformed entry.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("samplesource: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type Options struct {
	// Column selects a CSV column by header name. Empty uses the first
	// column, and a non-numeric first row is taken as a header.
	Column string

	// Field selects the value of JSON objects. Empty means "value".
	Field string
}

// Loader reads sample files from a file system.
type Loader struct {
	fs   afero.Fs
	opts Options
}

func NewLoader(fs afero.Fs, opts Options) *Loader {
	if opts.Field == "" {
		opts.Field = "value"
	}
	return &Loader{fs: fs, opts: opts}
}

// Load reads all samples from the file at path.
func (l *Loader) Load(path string) ([]Sample, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("samplesource: opening %s: %v", path, err)
	}
	defer f.Close()

	samples, err := Parse(f, FormatOf(path), l.opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// Parse reads samples in the given format.
func Parse(r io.Reader, format Format, opts Options) ([]Sample, error) {
	if opts.Field == "" {
		opts.Field = "value"
	}

	var samples []Sample
	var err error
	switch format {
	case FormatCSV:
		samples, err = parseCSV(r, opts.Column)
	case FormatJSONL:
		samples, err = parseJSONL(r, opts.Field)
	case FormatYAML:
		samples, err = parseYAML(r)
	default:
		samples, err = parseText(r)
	}

	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	return samples, nil
}
