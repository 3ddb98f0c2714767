// /internal/music/sources/youtube/resolver.go
package youtube

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

var (
	videoPattern    = regexp.MustCompile(`"url":"/watch\?v=([a-zA-Z0-9_-]+)(?:\\u0026list=([a-zA-Z0-9_-]+))?[^"]*`)
	ErrNoVideoMatch = errors.New("no video found for the given title")
)

type YouTubeResolver struct {
	BaseURL string
	Client  *http.Client
}

func NewYouTubeResolver() *YouTubeResolver {
	return &YouTubeResolver{
		BaseURL: "https://www.youtube.com",
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SearchFirstVideoURL scrapes the results page for the first video hit.
func (r *YouTubeResolver) SearchFirstVideoURL(query string) (string, error) {
	searchURL := fmt.Sprintf("%s/results?search_query=%s", r.BaseURL, url.QueryEscape(query))

	resp, err := r.Client.Get(searchURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("YouTube search failed with status code %v", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	matches := videoPattern.FindStringSubmatch(string(body))
	if len(matches) > 1 {
		return fmt.Sprintf("%s/watch?v=%s", r.BaseURL, matches[1]), nil
	}

	return "", ErrNoVideoMatch
}
