package graph

import (
	"iter"
	"math"
)

// ValueMapper converts a sample into the magnitude that is plotted.
//
// Map must be pure: charts call it several times per sample within one
// render.
type ValueMapper[T any] interface {
	Map(sample T) float64
}

// Number is the set of types Numeric can convert.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

type numericMapper[T Number] struct{}

func (numericMapper[T]) Map(v T) float64 { return float64(v) }

// Numeric returns the mapper that plots numeric samples as-is.
func Numeric[T Number]() ValueMapper[T] { return numericMapper[T]{} }

// MapperFunc adapts a function to a ValueMapper.
type MapperFunc[T any] func(T) float64

// Map calls f(sample).
func (f MapperFunc[T]) Map(sample T) float64 { return f(sample) }

// collect maps every sample. Non-finite magnitudes are plotted as zero.
func collect[T any](samples iter.Seq[T], mapper ValueMapper[T]) []float64 {
	if samples == nil || mapper == nil {
		return nil
	}
	var values []float64
	for s := range samples {
		v := mapper.Map(s)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		values = append(values, v)
	}
	return values
}
