package sources

import "time"

const (
	SourceAuto    = "auto"
	SourceYouTube = "youtube"
	SourceCatbox  = "catbox"
)

type TrackInfo struct {
	URL              string
	Title            string
	Artist           string
	Duration         time.Duration
	Thumbnail        string
	FileSize         int64 // bytes, when known (direct files)
	SourceName       string
	AvailableParsers []string
}
