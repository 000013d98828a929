package ridership

import "fmt"

// FormatError is returned when the input table cannot be interpreted, either
// because a required column is absent or because a value is malformed.
type FormatError struct {
	Column string
	Row    int
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("column %q: %s", e.Column, e.Reason)
	}

	return fmt.Sprintf("column %q row %d: %s (value %q)", e.Column, e.Row, e.Reason, e.Value)
}

func missingColumn(column string) *FormatError {
	return &FormatError{Column: column, Row: -1, Reason: "required column is missing"}
}

func duplicateColumn(column string) *FormatError {
	return &FormatError{Column: column, Row: -1, Reason: "column appears more than once"}
}

// ArithmeticError marks a zero denominator in a derived metric. It only happens
// when the calendar data itself is corrupt.
type ArithmeticError struct {
	Route  string
	Period Period
	Metric string
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("%s for route %q period %s has a zero denominator", e.Metric, e.Route, e.Period)
}
