// /internal/music/stream/stream.go
package stream

import (
	"fmt"
	"io"

	"github.com/Darkatse/SimiluBot/internal/music/parsers"
	"github.com/Darkatse/SimiluBot/internal/music/parsers/ffmpeg"
	"github.com/Darkatse/SimiluBot/internal/music/parsers/kkdai"
	"github.com/Darkatse/SimiluBot/internal/music/parsers/ytdlp"
)

const (
	channels   = 2
	sampleRate = 48000
	frameSize  = 960 // 20ms at 48kHz
)

var StreamersRegistry = map[string]parsers.Streamer{
	"ytdlp-link":  &ytdlp.YTDLPStreamer{},
	"ytdlp-pipe":  &ytdlp.YTDLPStreamer{},
	"kkdai-link":  &kkdai.KKDAIStreamer{},
	"kkdai-pipe":  &kkdai.KKDAIStreamer{},
	"ffmpeg-link": &ffmpeg.FFMPEGStreamer{},
}

func isPipeMode(parser string) bool {
	return parser == "ytdlp-pipe" || parser == "kkdai-pipe"
}

type TrackStream struct {
	io.ReadCloser
	track  *parsers.TrackParse
	parser string
}

func (m *TrackStream) GetTrack() *parsers.TrackParse {
	return m.track
}

func (m *TrackStream) GetParser() string {
	return m.parser
}

func OpenStream(track *parsers.TrackParse, parser string, seekSec float64) (*TrackStream, func(), error) {
	streamer, ok := StreamersRegistry[parser]
	if !ok {
		return nil, nil, fmt.Errorf("streamer not found for parser: %v", parser)
	}

	var (
		r       io.ReadCloser
		cleanup func()
		err     error
	)

	if isPipeMode(parser) && streamer.SupportsPipe() {
		r, cleanup, err = streamer.GetPipeStream(track, seekSec)
	} else {
		r, cleanup, err = streamer.GetLinkStream(track, seekSec)
	}

	if err != nil {
		return nil, nil, err
	}

	return &TrackStream{
		ReadCloser: r,
		track:      track,
		parser:     parser,
	}, cleanup, nil
}
