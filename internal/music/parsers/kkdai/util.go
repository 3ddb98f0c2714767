package kkdai

import (
	"errors"
	"regexp"
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com|music\.youtube\.com)/watch\?(?:.*&)?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([a-zA-Z0-9_-]{11})`),
}

// ExtractVideoID pulls the 11-character video ID out of any supported
// YouTube URL form.
func ExtractVideoID(url string) (string, error) {
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(url); len(m) == 2 {
			return m[1], nil
		}
	}
	return "", errors.New("unsupported YouTube URL format")
}
