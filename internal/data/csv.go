package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"motor-audit/internal/model"
)

// Column names of the meter export. Header cells are whitespace-trimmed
// before matching, so " p1" and "p1 " both work.
const (
	ColP1     = "p1"
	ColP2     = "p2"
	ColP3     = "p3"
	ColEnergy = "energy"
	ColTime   = "time"
)

var requiredColumns = []string{ColP1, ColP2, ColP3, ColEnergy, ColTime}

// LoadSamplesCSV reads every sample from a meter export on disk.
// A missing file is reported as *MissingSourceError, a bad row as
// *model.MalformedRecordError.
func LoadSamplesCSV(path string) ([]model.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &MissingSourceError{Path: path}
		}
		return nil, err
	}
	defer f.Close()

	return ReadSamples(f, path)
}

// ReadSamples parses a meter export. source names the input in errors.
// Rows are returned in file order; no sorting is applied.
func ReadSamples(r io.Reader, source string) ([]model.Sample, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &model.MalformedRecordError{Source: source, Line: 1, Err: errors.New("empty file, header expected")}
	}
	if err != nil {
		return nil, wrapCSVError(source, err)
	}

	idx := map[string]int{}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		idx[h] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, &model.MalformedRecordError{Source: source, Line: 1, Field: col, Err: errors.New("missing column")}
		}
	}

	var out []model.Sample
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapCSVError(source, err)
		}
		line, _ := cr.FieldPos(0)

		s, err := parseRow(rec, idx, source, line)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func parseRow(rec []string, idx map[string]int, source string, line int) (model.Sample, error) {
	var s model.Sample

	nums := []struct {
		col string
		dst *float64
	}{
		{ColP1, &s.P1},
		{ColP2, &s.P2},
		{ColP3, &s.P3},
		{ColEnergy, &s.EnergyWh},
	}
	for _, n := range nums {
		raw := strings.TrimSpace(rec[idx[n.col]])
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return s, &model.MalformedRecordError{Source: source, Line: line, Field: n.col, Value: raw, Err: errors.New("not a number")}
		}
		*n.dst = v
	}

	raw := rec[idx[ColTime]]
	t, err := ParseTimestamp(raw)
	if err != nil {
		return s, &model.MalformedRecordError{Source: source, Line: line, Field: ColTime, Value: strings.TrimSpace(raw), Err: err}
	}
	s.Time = t

	if err := s.Check(); err != nil {
		return s, &model.MalformedRecordError{Source: source, Line: line, Err: err}
	}
	return s, nil
}

func wrapCSVError(source string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &model.MalformedRecordError{Source: source, Line: pe.Line, Err: pe.Err}
	}
	return fmt.Errorf("read %s: %w", source, err)
}
