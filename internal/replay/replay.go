// Package replay reads recorded input scripts and feeds them through a session.
//
// A script has one event per line:
//
//	<ms> press <KEY>
//	<ms> release <KEY>
//	<ms> click
//
// Blank lines and lines starting with # are ignored. Timestamps must not decrease.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/verte-zerg/cstrafe/internal/classifier"
	"github.com/verte-zerg/cstrafe/internal/input"
	"github.com/verte-zerg/cstrafe/internal/session"
)

// Load reads a script from path.
func Load(path string) ([]input.Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only script.
			_ = cerr
		}
	}()
	return Parse(file)
}

// Parse reads a script from r.
func Parse(r io.Reader) ([]input.Event, error) {
	var events []input.Event
	scanner := bufio.NewScanner(r)
	lineNo := 0
	last := 0.0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ev, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if len(events) > 0 && ev.At < last {
			return nil, fmt.Errorf("line %d: timestamp %g is before %g", lineNo, ev.At, last)
		}
		last = ev.At
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func parseLine(line string) (input.Event, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return input.Event{}, fmt.Errorf("expected \"<ms> <action> [key]\", got %q", line)
	}
	at, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || math.IsNaN(at) || math.IsInf(at, 0) {
		return input.Event{}, fmt.Errorf("invalid timestamp %q", fields[0])
	}
	action := strings.ToLower(fields[1])
	switch action {
	case "press", "release":
		if len(fields) != 3 {
			return input.Event{}, fmt.Errorf("%s needs exactly one key", action)
		}
		kind := input.Press
		if action == "release" {
			kind = input.Release
		}
		return input.Event{Kind: kind, Key: classifier.NormalizeKey(fields[2]), At: at}, nil
	case "click":
		if len(fields) != 2 {
			return input.Event{}, fmt.Errorf("click takes no arguments")
		}
		return input.Event{Kind: input.Click, At: at}, nil
	default:
		return input.Event{}, fmt.Errorf("unknown action %q", fields[1])
	}
}

// Run feeds events through s and returns the final classification of each click.
func Run(s *session.Session, events []input.Event) []classifier.ShotClassification {
	var results []classifier.ShotClassification
	for _, ev := range events {
		if res, ok := s.Handle(ev); ok {
			results = append(results, res)
		}
	}
	return results
}
