package cmd

import "fmt"

// UnsupportedFormatError indicates a report format outside the supported set.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q (must be text, md, html, or pdf)", e.Format)
}

// ReportDecodeError signals that a saved scan document could not be read or
// did not decode as a scan envelope.
type ReportDecodeError struct {
	Path string
	Err  error
}

func (e *ReportDecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot decode scan document %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("cannot decode scan document %s", e.Path)
}

func (e *ReportDecodeError) Unwrap() error {
	return e.Err
}
