package bench

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadSeries reads an averaged file.
func ReadSeries(file string) (Series, error) {
	s := Series{Name: strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))}
	fd, err := os.Open(file)
	if err != nil {
		return s, err
	}
	defer fd.Close()

	br := bufio.NewReader(fd)
	for lineno := 1; ; lineno++ {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			p, perr := parsePoint(line)
			if perr != nil {
				return s, &LineError{Name: s.Name, Line: lineno, Err: perr}
			}
			s.Points = append(s.Points, p)
		}
		if err == io.EOF {
			return s, nil
		} else if err != nil {
			return s, err
		}
	}
}

func parsePoint(line string) (Point, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Point{}, fmt.Errorf("%w: want \"<clients> <mean>\", got %q", ErrMalformedLine, strings.TrimSpace(line))
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return Point{}, fmt.Errorf("%w: bad client count %q", ErrMalformedLine, fields[0])
	}
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: bad mean %q", ErrMalformedLine, fields[1])
	}
	return Point{Clients: n, Mean: v}, nil
}

// MustReadSeries reads all given averaged files.
func MustReadSeries(files []string) []Series {
	var series []Series
	for _, file := range files {
		s, err := ReadSeries(file)
		if err != nil {
			log.Fatalf("%s: %v", file, err)
		}
		series = append(series, s)
	}
	return series
}

// Report is the content of a per-configuration record file.
type Report struct {
	Name    string
	Records []Record
}

// MustReadReports reads all given record files.
func MustReadReports(files []string) []Report {
	var reports []Report
	for _, file := range files {
		recs, err := ReadRecords(file)
		if err != nil {
			log.Fatalf("%s: %v", file, err)
		}
		reports = append(reports, Report{
			Records: recs,
			Name:    strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)),
		})
	}
	return reports
}
