package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCity signals that no neighborhood matches the requested city.
	ErrEmptyCity = errors.New("no neighborhoods in city")
	// ErrDataIntegrity signals a malformed or incomplete dataset.
	ErrDataIntegrity = errors.New("dataset integrity violation")
	// ErrInvalidRequest signals a request that failed boundary validation.
	ErrInvalidRequest = errors.New("invalid request")
)

// EmptyCityError wraps ErrEmptyCity with the requested city name.
type EmptyCityError struct {
	City string
}

func (e *EmptyCityError) Error() string {
	return "No neighborhoods in " + e.City
}

func (e *EmptyCityError) Unwrap() error { return ErrEmptyCity }

// NewEmptyCity creates an empty city error.
func NewEmptyCity(city string) error {
	return &EmptyCityError{City: city}
}

// DataIntegrityError wraps ErrDataIntegrity with the location of the bad value.
// Row is 1-based and counts the header line; zero means the whole source.
type DataIntegrityError struct {
	Source string
	Row    int
	Column string
	Reason string
}

func (e *DataIntegrityError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("%s: %s row %d column %q: %s", ErrDataIntegrity, e.Source, e.Row, e.Column, e.Reason)
	case e.Row > 0:
		return fmt.Sprintf("%s: %s row %d: %s", ErrDataIntegrity, e.Source, e.Row, e.Reason)
	case e.Column != "":
		return fmt.Sprintf("%s: %s column %q: %s", ErrDataIntegrity, e.Source, e.Column, e.Reason)
	default:
		return fmt.Sprintf("%s: %s: %s", ErrDataIntegrity, e.Source, e.Reason)
	}
}

func (e *DataIntegrityError) Unwrap() error { return ErrDataIntegrity }

// NewDataIntegrity creates a data integrity error.
func NewDataIntegrity(source string, row int, column, reason string) error {
	return &DataIntegrityError{Source: source, Row: row, Column: column, Reason: reason}
}
