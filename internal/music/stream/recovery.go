package stream

import (
	"errors"
	"io"

	"github.com/Darkatse/SimiluBot/internal/music/parsers"

	"github.com/rs/zerolog/log"
)

const maxRecoveryAttempts = 3

// RecoveryStream wraps a TrackStream and reopens it from the current position
// when the underlying stream dies early (network hiccups, expired links).
type RecoveryStream struct {
	track       *parsers.TrackParse
	parserIndex int // index in AvailableParsers
	stream      *TrackStream
	cleanup     func()
	seekSec     float64        // current playback position
	retries     map[string]int // parser => attempts
}

func NewRecoveryStream(track *parsers.TrackParse) *RecoveryStream {
	return &RecoveryStream{
		track:   track,
		retries: make(map[string]int),
	}
}

// Open attempts to open a TrackStream starting from the given position,
// walking the remaining parsers on failure.
func (rs *RecoveryStream) Open(seek float64) error {
	for i := rs.parserIndex; i < len(rs.track.SourceInfo.AvailableParsers); i++ {
		parser := rs.track.SourceInfo.AvailableParsers[i]

		if rs.retries[parser] >= maxRecoveryAttempts {
			continue
		}

		rs.track.CurrentParser = parser
		stream, cleanup, err := OpenStream(rs.track, parser, seek)
		if err != nil {
			log.Warn().Err(err).Str("parser", parser).Msg("failed to open stream")
			rs.retries[parser]++
			continue
		}

		rs.parserIndex = i
		rs.stream = stream
		rs.cleanup = cleanup
		rs.seekSec = seek
		log.Debug().Str("parser", parser).Float64("seek", seek).Msg("stream opened")
		return nil
	}

	return errors.New("all parsers failed or exceeded recovery attempts")
}

func (rs *RecoveryStream) Read(p []byte) (int, error) {
	if rs.stream == nil {
		return 0, errors.New("stream not opened")
	}

	n, err := rs.stream.Read(p)
	if err == io.EOF && n == 0 && !rs.nearEnd() {
		// Early EOF; attempt recovery
		return rs.handleRecovery(p)
	}

	rs.seekSec += float64(n) / (sampleRate * channels * 2) // playback seconds
	return n, err
}

// nearEnd reports whether the stream position is within a few seconds of the
// known track duration, in which case EOF is legitimate.
func (rs *RecoveryStream) nearEnd() bool {
	total := rs.track.Duration.Seconds()
	if total <= 0 {
		return false
	}
	return rs.seekSec >= total-3
}

func (rs *RecoveryStream) handleRecovery(p []byte) (int, error) {
	parser := rs.track.CurrentParser
	if rs.retries[parser] >= maxRecoveryAttempts {
		log.Warn().Str("parser", parser).Msg("max recovery attempts reached")
		return 0, io.EOF
	}

	log.Info().Str("parser", parser).Int("attempt", rs.retries[parser]+1).Float64("seek", rs.seekSec).
		Msg("stream ended prematurely, attempting recovery")
	rs.retries[parser]++

	if rs.cleanup != nil {
		rs.cleanup()
	}

	if err := rs.Open(rs.seekSec); err != nil {
		log.Warn().Err(err).Msg("recovery failed")
		return 0, io.EOF
	}

	return rs.Read(p)
}

func (rs *RecoveryStream) Close() error {
	if rs.cleanup != nil {
		rs.cleanup()
	}
	if rs.stream != nil {
		return rs.stream.Close()
	}
	return nil
}

func (rs *RecoveryStream) GetTrack() *parsers.TrackParse {
	return rs.track
}

func (rs *RecoveryStream) GetParser() string {
	if rs.stream != nil {
		return rs.stream.GetParser()
	}
	return ""
}
