package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Kind classifies a log line for display.
type Kind int

const (
	KindOther Kind = iota
	KindRequest
	KindResponse
	KindFailure
)

// Entry is one parsed log line.
type Entry struct {
	Raw     string
	Time    time.Time
	Message string
	Kind    Kind
}

const timeLayout = "2006/01/02 15:04:05"

// Parse splits a line written by the standard logger (optional prefix,
// date, time, message) and classifies it. Lines that do not match keep the
// whole text as Message.
func Parse(line string) Entry {
	e := Entry{Raw: line, Message: line}
	fields := strings.SplitN(line, " ", 4)
	for skip := 0; skip <= 1; skip++ {
		if len(fields) < skip+3 {
			break
		}
		ts, err := time.ParseInLocation(timeLayout, fields[skip]+" "+fields[skip+1], time.Local)
		if err != nil {
			continue
		}
		e.Time = ts
		e.Message = strings.Join(fields[skip+2:], " ")
		break
	}
	e.Kind = classify(e.Message)
	return e
}

func classify(msg string) Kind {
	switch {
	case strings.Contains(msg, " failed"):
		return KindFailure
	case strings.HasPrefix(msg, "request: "):
		return KindRequest
	case strings.HasPrefix(msg, "response: "):
		if status := responseStatus(msg); status >= 400 {
			return KindFailure
		}
		return KindResponse
	default:
		return KindOther
	}
}

// responseStatus extracts the status code from
// "response: METHOD URL CODE in DURATION".
func responseStatus(msg string) int {
	fields := strings.Fields(msg)
	if len(fields) < 4 {
		return 0
	}
	code, err := strconv.Atoi(fields[3])
	if err != nil {
		return 0
	}
	return code
}

// Filter returns the lines containing term, ignoring case. A blank term
// returns lines unchanged.
func Filter(lines []string, term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return lines
	}
	var out []string
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), term) {
			out = append(out, line)
		}
	}
	return out
}
