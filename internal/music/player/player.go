// Package player runs per-guild music playback: one playback goroutine per
// guild pops tracks from the queue, pipes FFmpeg PCM into the voice
// connection and reacts to control signals (skip, stop, seek).
package player

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Darkatse/SimiluBot/internal/music/parsers"
	"github.com/Darkatse/SimiluBot/internal/music/queue"
	"github.com/Darkatse/SimiluBot/internal/music/seek"
	"github.com/Darkatse/SimiluBot/internal/music/source_resolver"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoTrackPlaying = errors.New("no track is currently playing")
	ErrNotConnected   = errors.New("not connected to a voice channel")
	ErrAlreadyPaused  = errors.New("playback is already paused")
	ErrNotPaused      = errors.New("playback is not paused")
	ErrTrackTooLong   = errors.New("track exceeds the maximum allowed duration")
)

type signalAction int

const (
	actionSkip signalAction = iota
	actionStop
	actionSeek
)

type trackSignal struct {
	action signalAction
	seekTo time.Duration
}

// Config carries the per-guild playback limits from the bot settings.
type Config struct {
	MaxQueueSize    int
	MaxSongDuration time.Duration
	IdleTimeout     time.Duration
}

type Player struct {
	mu sync.Mutex

	dg       *discordgo.Session
	guildID  string
	resolver *source_resolver.SourceResolver
	cfg      Config

	queue     *queue.Queue
	channelID string
	vc        *discordgo.VoiceConnection

	current *parsers.TrackParse
	playing bool
	paused  bool
	running bool

	// timing: position = elapsed since startTime minus time spent paused
	startTime   time.Time
	pausedAt    time.Time
	totalPaused time.Duration

	signal    chan trackSignal
	idleTimer *time.Timer
}

func New(dg *discordgo.Session, guildID string, resolver *source_resolver.SourceResolver, cfg Config) *Player {
	return &Player{
		dg:       dg,
		guildID:  guildID,
		resolver: resolver,
		cfg:      cfg,
		queue:    queue.New(cfg.MaxQueueSize),
		signal:   make(chan trackSignal, 1),
	}
}

// Enqueue resolves the input and adds the resulting tracks to the queue,
// starting the playback loop if it is idle. It returns the added tracks and
// the queue position of the first one.
func (p *Player) Enqueue(input, source, parser, requester, voiceChannelID string) ([]parsers.TrackParse, int, error) {
	tracksInfo, err := p.resolver.Resolve(input, source, parser)
	if err != nil {
		return nil, 0, err
	}

	var added []parsers.TrackParse
	firstPos := 0
	for _, info := range tracksInfo {
		track := parsers.TrackParse{
			URL:           info.URL,
			Title:         info.Title,
			Artist:        info.Artist,
			Duration:      info.Duration,
			Thumbnail:     info.Thumbnail,
			FileSize:      info.FileSize,
			Requester:     requester,
			CurrentParser: info.AvailableParsers[0],
			SourceInfo:    info,
		}

		if p.cfg.MaxSongDuration > 0 && track.Duration > p.cfg.MaxSongDuration {
			return nil, 0, fmt.Errorf("%w: %s is %s, limit is %s",
				ErrTrackTooLong, track.Title, seek.Format(track.Duration), seek.Format(p.cfg.MaxSongDuration))
		}

		pos, err := p.queue.Add(track)
		if err != nil {
			return added, firstPos, err
		}
		if firstPos == 0 {
			firstPos = pos
		}
		added = append(added, track)
	}

	p.mu.Lock()
	p.channelID = voiceChannelID
	p.cancelIdleTimerLocked()
	if !p.running {
		p.running = true
		go p.run()
	}
	p.mu.Unlock()

	log.Info().Str("guild", p.guildID).Int("added", len(added)).Int("queue_len", p.queue.Len()).
		Msg("tracks enqueued")
	return added, firstPos, nil
}

// Skip stops the current track; the loop advances to the next one.
func (p *Player) Skip() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.playing {
		return ErrNoTrackPlaying
	}
	p.sendSignalLocked(trackSignal{action: actionSkip})
	return nil
}

// Jump discards queued tracks before the 1-indexed position and skips to it.
func (p *Player) Jump(position int) (parsers.TrackParse, error) {
	track, err := p.queue.Jump(position)
	if err != nil {
		return parsers.TrackParse{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playing {
		p.sendSignalLocked(trackSignal{action: actionSkip})
	} else if !p.running {
		p.running = true
		go p.run()
	}
	return track, nil
}

// Stop halts playback, clears the queue and disconnects from voice.
func (p *Player) Stop() error {
	dropped := p.queue.Clear()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.cancelIdleTimerLocked()

	if p.playing {
		p.sendSignalLocked(trackSignal{action: actionStop})
		return nil
	}

	if p.vc == nil {
		if dropped == 0 {
			return ErrNotConnected
		}
		return nil
	}
	p.disconnectLocked()
	return nil
}

// Seek moves the current track to the position described by input
// ("mm:ss", "hh:mm:ss", "+30", "-1:00", ...) and returns the resolved target.
func (p *Player) Seek(input string) (time.Duration, error) {
	target, err := seek.Parse(input)
	if err != nil {
		return 0, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.playing || p.current == nil {
		return 0, ErrNoTrackPlaying
	}

	pos, err := target.Resolve(p.positionLocked(), p.current.Duration)
	if err != nil {
		return 0, err
	}

	p.sendSignalLocked(trackSignal{action: actionSeek, seekTo: pos})
	return pos, nil
}

// Pause suspends playback without losing the position.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.playing {
		return ErrNoTrackPlaying
	}
	if p.paused {
		return ErrAlreadyPaused
	}
	p.paused = true
	p.pausedAt = time.Now()
	return nil
}

// Resume continues paused playback.
func (p *Player) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.playing {
		return ErrNoTrackPlaying
	}
	if !p.paused {
		return ErrNotPaused
	}
	p.totalPaused += time.Since(p.pausedAt)
	p.paused = false
	return nil
}

// NowPlaying returns the current track, its playback position, and whether
// playback is paused.
func (p *Player) NowPlaying() (*parsers.TrackParse, time.Duration, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.playing || p.current == nil {
		return nil, 0, false, ErrNoTrackPlaying
	}
	return p.current, p.positionLocked(), p.paused, nil
}

// Position returns the playback position within the current track.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

func (p *Player) positionLocked() time.Duration {
	if p.current == nil {
		return 0
	}
	if p.paused {
		return p.pausedAt.Sub(p.startTime) - p.totalPaused
	}
	return time.Since(p.startTime) - p.totalPaused
}

func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *Player) IsPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

func (p *Player) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vc != nil
}

// Queue returns a snapshot of the queued tracks.
func (p *Player) Queue() []parsers.TrackParse {
	return p.queue.Snapshot()
}

func (p *Player) QueueLength() int {
	return p.queue.Len()
}

func (p *Player) QueueDuration() time.Duration {
	return p.queue.TotalDuration()
}

// ClearQueue drops all queued tracks and returns how many were removed.
func (p *Player) ClearQueue() int {
	return p.queue.Clear()
}

func (p *Player) sendSignalLocked(sig trackSignal) {
	select {
	case p.signal <- sig:
	default:
		// A signal is already pending; the newest intent wins.
		select {
		case <-p.signal:
		default:
		}
		p.signal <- sig
	}
}

func (p *Player) disconnectLocked() {
	if p.vc != nil {
		p.vc.Disconnect()
		p.vc = nil
	}
	p.channelID = ""
	p.current = nil
	p.playing = false
	p.paused = false
	log.Info().Str("guild", p.guildID).Msg("disconnected from voice channel")
}

func (p *Player) cancelIdleTimerLocked() {
	if p.idleTimer != nil {
		p.idleTimer.Stop()
		p.idleTimer = nil
	}
}

// armIdleTimerLocked schedules an auto-disconnect once playback has drained.
func (p *Player) armIdleTimerLocked() {
	if p.cfg.IdleTimeout <= 0 || p.vc == nil {
		return
	}
	p.cancelIdleTimerLocked()
	p.idleTimer = time.AfterFunc(p.cfg.IdleTimeout, p.onIdle)
	log.Debug().Str("guild", p.guildID).Dur("timeout", p.cfg.IdleTimeout).Msg("auto-disconnect timer armed")
}

func (p *Player) onIdle() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playing || p.queue.Len() > 0 || p.vc == nil {
		return
	}
	log.Info().Str("guild", p.guildID).Msg("idle timeout reached, leaving voice channel")
	p.disconnectLocked()
}
