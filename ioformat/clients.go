package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// clientTimestampLayout is the UTC-naive layout §6 specifies for an
// optional per-client ordering timestamp.
const clientTimestampLayout = "2006-01-02 15:04:05"

// ClientRecord is one parsed client-list line: an AS identifier and,
// if the line carried one, the timestamp that orders it.
type ClientRecord struct {
	AS        string
	Timestamp time.Time
	HasTime   bool
}

// LoadClients parses a client-list stream (§6): each line is an AS
// identifier, optionally followed by a whitespace-separated
// `YYYY-MM-DD HH:MM:SS` timestamp. When any line carries a timestamp,
// the returned slice is sorted by it; lines without one keep their
// original relative order (stable sort).
func LoadClients(r io.Reader) ([]ClientRecord, error) {
	var (
		records []ClientRecord
		anyTime bool
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		rec := ClientRecord{AS: fields[0]}

		if len(fields) >= 3 {
			ts, err := time.Parse(clientTimestampLayout, fields[1]+" "+fields[2])
			if err != nil {
				return nil, fmt.Errorf("ioformat: line %d: malformed client timestamp: %w", lineNo, err)
			}
			rec.Timestamp = ts
			rec.HasTime = true
			anyTime = true
		}

		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ioformat: reading client list: %w", err)
	}

	if anyTime {
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Timestamp.Before(records[j].Timestamp)
		})
	}

	return records, nil
}

// LoadGuards parses a guard-list stream (§6): one AS identifier per
// line, comments and blank lines ignored.
func LoadGuards(r io.Reader) ([]string, error) {
	var guards []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		guards = append(guards, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ioformat: reading guard list: %w", err)
	}

	return guards, nil
}
