package domain

import "fmt"

// ParseError reports a malformed directional coordinate string.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse coordinate %q: %s", e.Input, e.Reason)
}

// InvalidRequestError reports a spread request that fails validation.
// Invalid input is rejected outright, never clamped.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Reason)
}

// GeometryError reports a county boundary that could not be parsed or
// projected. The offending county is skipped and recorded; it never fails
// the surrounding load or impact computation.
type GeometryError struct {
	CountyID string
	Err      error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("county %s: bad geometry: %v", e.CountyID, e.Err)
}

func (e *GeometryError) Unwrap() error { return e.Err }

// DataSourceError reports a missing or unreadable county or population
// source. It is fatal to the load attempt that hit it but must not poison a
// previously cached county set.
type DataSourceError struct {
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %s: %v", e.Source, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }
