// Package seek parses user seek expressions and formats playback positions.
package seek

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	absolutePattern = regexp.MustCompile(`^(?:(\d{1,2}):)?(\d{1,2}):(\d{2})$`)
	relativePattern = regexp.MustCompile(`^([+-])(?:(\d{1,2}):)?(\d{1,2}):(\d{2})$`)
	secondsPattern  = regexp.MustCompile(`^([+-])?(\d+)$`)

	ErrBadFormat   = errors.New("invalid seek format, use mm:ss, hh:mm:ss, or seconds with optional +/-")
	ErrOutOfBounds = errors.New("seek target is beyond the track length")
)

// Target is a parsed seek expression.
type Target struct {
	Offset   time.Duration
	Relative bool // offset is applied to the current position
}

// Parse interprets a seek expression: "mm:ss" and "hh:mm:ss" are absolute
// positions, a +/- prefix makes any form relative, and a bare number is an
// absolute second count. Minute and second components must be below 60.
func Parse(input string) (Target, error) {
	if m := absolutePattern.FindStringSubmatch(input); m != nil {
		d, err := componentsToDuration(m[1], m[2], m[3])
		if err != nil {
			return Target{}, err
		}
		return Target{Offset: d}, nil
	}

	if m := relativePattern.FindStringSubmatch(input); m != nil {
		d, err := componentsToDuration(m[2], m[3], m[4])
		if err != nil {
			return Target{}, err
		}
		if m[1] == "-" {
			d = -d
		}
		return Target{Offset: d, Relative: true}, nil
	}

	if m := secondsPattern.FindStringSubmatch(input); m != nil {
		secs, err := strconv.Atoi(m[2])
		if err != nil {
			return Target{}, ErrBadFormat
		}
		d := time.Duration(secs) * time.Second
		if m[1] == "" {
			return Target{Offset: d}, nil
		}
		if m[1] == "-" {
			d = -d
		}
		return Target{Offset: d, Relative: true}, nil
	}

	return Target{}, ErrBadFormat
}

// Resolve turns a parsed target into an absolute position given the current
// position and the track duration. Relative seeks below zero clamp to the
// start; anything past the end of a known duration is an error.
func (t Target) Resolve(current, duration time.Duration) (time.Duration, error) {
	pos := t.Offset
	if t.Relative {
		pos = current + t.Offset
	}

	if pos < 0 {
		if !t.Relative {
			return 0, ErrBadFormat
		}
		pos = 0
	}

	if duration > 0 && pos > duration {
		return 0, ErrOutOfBounds
	}

	return pos, nil
}

func componentsToDuration(hours, minutes, seconds string) (time.Duration, error) {
	var h int
	if hours != "" {
		h, _ = strconv.Atoi(hours)
	}
	m, _ := strconv.Atoi(minutes)
	s, _ := strconv.Atoi(seconds)

	if m >= 60 || s >= 60 {
		return 0, ErrBadFormat
	}

	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second, nil
}

// Format renders a position as MM:SS, or HH:MM:SS once it reaches an hour.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
