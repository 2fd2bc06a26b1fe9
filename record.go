package bench

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one filtered value of a result line, tagged with the client
// count of the run that produced it.
type Record struct {
	Clients string
	Field   string // last comma-separated field of the result line, spacing preserved
}

// String returns the record line, without trailing newline.
func (r Record) String() string {
	return r.Clients + " " + r.Field
}

// Value parses the numeric value of the record. The field must hold exactly
// one number, surrounded by any amount of whitespace. Unlike the old script,
// which took the third token of a single-space split, "1 0.42" is accepted
// and "1  12 ms" is rejected.
func (r Record) Value() (float64, error) {
	fields := strings.Fields(r.Field)
	if len(fields) != 1 {
		return 0, fmt.Errorf("%w: want one value, got %q", ErrMalformedLine, r.Field)
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad value %q", ErrMalformedLine, fields[0])
	}
	return v, nil
}

// ParseRecord parses a record line as written by Record.String.
func ParseRecord(line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")
	clients, field, ok := strings.Cut(line, " ")
	if !ok || strings.TrimSpace(field) == "" {
		return Record{}, fmt.Errorf("%w: want \"<clients> <value>\", got %q", ErrMalformedLine, line)
	}
	if _, err := strconv.Atoi(clients); err != nil {
		return Record{}, fmt.Errorf("%w: bad client count %q", ErrMalformedLine, clients)
	}
	return Record{Clients: clients, Field: field}, nil
}

// LastField returns the last comma-separated field of a result line,
// without the line terminator.
func LastField(line string) string {
	line = strings.TrimRight(line, "\r\n")
	return line[strings.LastIndexByte(line, ',')+1:]
}
