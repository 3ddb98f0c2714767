package catbox

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	source "github.com/Darkatse/SimiluBot/internal/music/sources"
	"github.com/Darkatse/SimiluBot/pkg/retrylimit"
)

const SourceCatbox string = "catbox"

// Catbox serves plain files, so a browser-looking client avoids the
// occasional anti-hotlink rejection.
const (
	probeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	probeReferer   = "https://catbox.moe/"
)

type CatboxSource struct {
	client *http.Client
}

func New() *CatboxSource {
	return &CatboxSource{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *CatboxSource) Match(input string) bool {
	return IsCatboxAudioURL(input)
}

func (c *CatboxSource) Resolve(input string, selectedParser string) ([]source.TrackInfo, error) {
	if !IsCatboxAudioURL(input) {
		return nil, errors.New("not a playable catbox audio URL")
	}

	parsers := c.AvailableParsers()
	if selectedParser == "" {
		selectedParser = parsers[0]
	}
	if selectedParser != parsers[0] {
		return nil, errors.New(SourceCatbox + " source does not support " + selectedParser + " parser")
	}

	size, err := c.probeFileSize(input)
	if err != nil {
		return nil, fmt.Errorf("catbox file is not reachable: %w", err)
	}

	return []source.TrackInfo{
		{
			URL:        input,
			Title:      FileNameFromURL(input),
			FileSize:   size,
			SourceName: SourceCatbox,
			// duration unknown until FFmpeg reads the file
			AvailableParsers: parsers,
		},
	}, nil
}

func (c *CatboxSource) SourceName() string {
	return SourceCatbox
}

func (c *CatboxSource) AvailableParsers() []string {
	return []string{"ffmpeg-link"}
}

// probeFileSize issues a HEAD request for the file, retrying transient
// failures with exponential backoff.
func (c *CatboxSource) probeFileSize(url string) (int64, error) {
	var size int64

	cfg := retrylimit.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 2 * time.Second,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
	}

	err := retrylimit.WithRetryConfig(context.Background(), func() error {
		req, err := http.NewRequest(http.MethodHead, url, nil)
		if err != nil {
			return &retrylimit.FatalError{Err: err}
		}
		req.Header.Set("User-Agent", probeUserAgent)
		req.Header.Set("Referer", probeReferer)

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		size = resp.ContentLength
		if size < 0 {
			size = 0
		}
		return nil
	}, nil, cfg)

	return size, err
}
