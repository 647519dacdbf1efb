package model

import (
	"errors"
	"fmt"
)

// ErrInvalidSample marks a sample whose numeric fields cannot be used.
var ErrInvalidSample = errors.New("invalid sample")

// MalformedRecordError reports a record that lacks a usable numeric or
// timestamp field. Line is 1-based and counts the header; it is the sample
// index + 1 when the error comes from the aggregator instead of the loader.
type MalformedRecordError struct {
	Source string
	Line   int
	Field  string
	Value  string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	msg := fmt.Sprintf("malformed record %s:%d", e.Source, e.Line)
	if e.Field != "" {
		msg += fmt.Sprintf(" field %q", e.Field)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" value %q", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }
