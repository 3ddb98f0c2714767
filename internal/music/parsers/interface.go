package parsers

import "io"

// Streamer produces a PCM audio stream for a track, either from a resolved
// link or by piping a downloader into ffmpeg. The returned func releases any
// subprocess the streamer spawned.
type Streamer interface {
	GetLinkStream(track *TrackParse, seekSec float64) (io.ReadCloser, func(), error)
	GetPipeStream(track *TrackParse, seekSec float64) (io.ReadCloser, func(), error)
	SupportsPipe() bool
}
