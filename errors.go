package bench

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFile is returned when an input file or the records of a
	// configuration do not exist.
	ErrMissingFile = errors.New("missing file")
	// ErrEmptyDataset is returned when averaging a configuration without records.
	ErrEmptyDataset = errors.New("empty dataset")
	// ErrMalformedLine is returned for record lines that can't be parsed.
	ErrMalformedLine = errors.New("malformed line")

	ErrBadPair    = errors.New("invalid parameter pair")
	ErrBadClients = errors.New("invalid client count")
)

// LineError reports a problem with a specific line of a file.
type LineError struct {
	Name string // file name or record set
	Line int    // 1-based
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Name, e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
