package player

import (
	"errors"
	"fmt"
	"time"

	"github.com/Darkatse/SimiluBot/internal/music/parsers"
	"github.com/Darkatse/SimiluBot/internal/music/stream"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type trackOutcome int

const (
	outcomeFinished trackOutcome = iota
	outcomeSkipped
	outcomeStopped
	outcomeSeek
	outcomeError
)

// run is the playback loop. Exactly one instance runs per player while there
// is work to do; it exits when the queue drains or playback is stopped.
func (p *Player) run() {
	for {
		track, ok := p.queue.Next()
		if !ok {
			p.mu.Lock()
			p.running = false
			p.playing = false
			p.paused = false
			p.current = nil
			p.armIdleTimerLocked()
			p.mu.Unlock()
			return
		}

		if p.playTrack(&track) == outcomeStopped {
			p.mu.Lock()
			p.running = false
			p.disconnectLocked()
			p.mu.Unlock()
			return
		}
	}
}

// playTrack plays one track to completion, replaying it on seek.
func (p *Player) playTrack(track *parsers.TrackParse) trackOutcome {
	var startAt time.Duration

	for {
		outcome, seekTo := p.streamOnce(track, startAt)
		if outcome == outcomeSeek {
			startAt = seekTo
			continue
		}
		return outcome
	}
}

// streamOnce opens the track at startAt and streams it until it ends or a
// control signal arrives.
func (p *Player) streamOnce(track *parsers.TrackParse, startAt time.Duration) (trackOutcome, time.Duration) {
	rs := stream.NewRecoveryStream(track)
	if err := rs.Open(startAt.Seconds()); err != nil {
		log.Error().Err(err).Str("guild", p.guildID).Str("track", track.Title).Msg("failed to open stream")
		return outcomeError, 0
	}
	defer rs.Close()

	vc, err := p.getOrCreateVoiceConnection()
	if err != nil {
		log.Error().Err(err).Str("guild", p.guildID).Msg("voice connection failed")
		return outcomeError, 0
	}

	p.mu.Lock()
	p.current = track
	p.playing = true
	p.paused = false
	p.startTime = time.Now().Add(-startAt)
	p.totalPaused = 0
	p.cancelIdleTimerLocked()
	p.mu.Unlock()

	log.Info().Str("guild", p.guildID).Str("track", track.Title).Str("parser", rs.GetParser()).
		Dur("start_at", startAt).Msg("streaming track")

	stopCh := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- stream.StreamToDiscord(rs, stopCh, p.IsPaused, vc)
	}()

	for {
		select {
		case err := <-done:
			p.finishTrack()
			if err != nil {
				log.Warn().Err(err).Str("guild", p.guildID).Str("track", track.Title).Msg("playback ended with error")
				return outcomeError, 0
			}
			return outcomeFinished, 0

		case sig := <-p.signal:
			close(stopCh)
			<-done

			switch sig.action {
			case actionSeek:
				return outcomeSeek, sig.seekTo
			case actionStop:
				p.finishTrack()
				return outcomeStopped, 0
			default:
				p.finishTrack()
				return outcomeSkipped, 0
			}
		}
	}
}

func (p *Player) finishTrack() {
	p.mu.Lock()
	p.playing = false
	p.paused = false
	p.current = nil
	p.mu.Unlock()

	// A control signal racing the end of a track targets the track that just
	// finished; it must not fire on the next one.
	select {
	case <-p.signal:
	default:
	}
}

// getOrCreateVoiceConnection joins or reuses an existing voice connection.
func (p *Player) getOrCreateVoiceConnection() (*discordgo.VoiceConnection, error) {
	p.mu.Lock()
	channelID := p.channelID
	vc := p.vc
	p.mu.Unlock()

	if channelID == "" {
		return nil, errors.New("voice channel ID is not set")
	}

	if vc != nil && vc.ChannelID == channelID {
		return vc, nil // reuse
	}

	vc, err := p.dg.ChannelVoiceJoin(p.guildID, channelID, false, true)
	if err != nil {
		return nil, fmt.Errorf("failed to join voice channel: %w", err)
	}

	p.mu.Lock()
	p.vc = vc
	p.mu.Unlock()

	log.Info().Str("guild", p.guildID).Str("channel", channelID).Msg("joined voice channel")
	return vc, nil
}
