package samplesource

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number %q", s)
	}
	return v, nil
}

func parseCSV(r io.Reader, column string) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var samples []Sample
	col := 0
	first := true
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("samplesource: %v", err)
		}
		line, _ := cr.FieldPos(0)

		if first {
			first = false
			if column != "" {
				col = slices.Index(record, column)
				if col < 0 {
					return nil, fmt.Errorf("%w %q", ErrUnknownColumn, column)
				}
				continue
			}
			if _, err := parseNumber(record[0]); err != nil {
				continue
			}
		}

		if col >= len(record) {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("missing column %d", col+1)}
		}
		if strings.TrimSpace(record[col]) == "" {
			continue
		}
		v, err := parseNumber(record[col])
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		samples = append(samples, Sample{Line: line, Value: v})
	}
	return samples, nil
}

func parseJSONL(r io.Reader, field string) ([]Sample, error) {
	var samples []Sample
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}

		var raw any
		if err := json.Unmarshal(text, &raw); err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}

		switch x := raw.(type) {
		case float64:
			samples = append(samples, Sample{Line: line, Value: x})
		case map[string]any:
			value, ok := x[field]
			if !ok {
				return nil, &ParseError{Line: line, Err: fmt.Errorf("%w %q", ErrUnknownColumn, field)}
			}
			v, ok := value.(float64)
			if !ok {
				return nil, &ParseError{Line: line, Err: fmt.Errorf("field %q is not a number", field)}
			}
			samples = append(samples, Sample{Line: line, Value: v})
		default:
			return nil, &ParseError{Line: line, Err: fmt.Errorf("expected a number or an object")}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("samplesource: %v", err)
	}
	return samples, nil
}

// parseYAML accepts a top-level sequence or a mapping with a "values"
// sequence.
func parseYAML(r io.Reader) ([]Sample, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("samplesource: %v", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	seq := doc.Content[0]
	if seq.Kind == yaml.MappingNode {
		var values *yaml.Node
		for i := 0; i+1 < len(seq.Content); i += 2 {
			if seq.Content[i].Value == "values" {
				values = seq.Content[i+1]
				break
			}
		}
		if values == nil {
			return nil, fmt.Errorf("%w %q", ErrUnknownColumn, "values")
		}
		seq = values
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, &ParseError{Line: seq.Line, Err: fmt.Errorf("expected a sequence of numbers")}
	}

	samples := make([]Sample, 0, len(seq.Content))
	for _, item := range seq.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, &ParseError{Line: item.Line, Err: fmt.Errorf("expected a number")}
		}
		v, err := parseNumber(item.Value)
		if err != nil {
			return nil, &ParseError{Line: item.Line, Err: err}
		}
		samples = append(samples, Sample{Line: item.Line, Value: v})
	}
	return samples, nil
}

func parseText(r io.Reader) ([]Sample, error) {
	var samples []Sample
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		for _, field := range strings.Fields(text) {
			v, err := parseNumber(field)
			if err != nil {
				return nil, &ParseError{Line: line, Err: err}
			}
			samples = append(samples, Sample{Line: line, Value: v})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("samplesource: %v", err)
	}
	return samples, nil
}
