package player

import (
	"errors"
	"testing"
	"time"

	"github.com/Darkatse/SimiluBot/internal/music/parsers"
	"github.com/Darkatse/SimiluBot/internal/music/queue"
	"github.com/Darkatse/SimiluBot/internal/music/source_resolver"
	"github.com/Darkatse/SimiluBot/internal/music/sources"

	"github.com/bwmarrin/discordgo"
)

func newIdlePlayer() *Player {
	return New(nil, "guild1", nil, Config{MaxQueueSize: 10})
}

func TestControlsRequirePlayback(t *testing.T) {
	t.Parallel()
	p := newIdlePlayer()

	if err := p.Skip(); err != ErrNoTrackPlaying {
		t.Errorf("Skip = %v, want ErrNoTrackPlaying", err)
	}
	if err := p.Pause(); err != ErrNoTrackPlaying {
		t.Errorf("Pause = %v, want ErrNoTrackPlaying", err)
	}
	if err := p.Resume(); err != ErrNoTrackPlaying {
		t.Errorf("Resume = %v, want ErrNoTrackPlaying", err)
	}
	if _, err := p.Seek("1:00"); err != ErrNoTrackPlaying {
		t.Errorf("Seek = %v, want ErrNoTrackPlaying", err)
	}
	if _, _, _, err := p.NowPlaying(); err != ErrNoTrackPlaying {
		t.Errorf("NowPlaying = %v, want ErrNoTrackPlaying", err)
	}
}

func TestStopWhenIdleAndDisconnected(t *testing.T) {
	t.Parallel()
	p := newIdlePlayer()
	if err := p.Stop(); err != ErrNotConnected {
		t.Fatalf("Stop = %v, want ErrNotConnected", err)
	}
}

func TestSeekRejectsBadInput(t *testing.T) {
	t.Parallel()
	p := newIdlePlayer()
	// Format errors surface before the playing check.
	if _, err := p.Seek("garbage"); err == nil || err == ErrNoTrackPlaying {
		t.Fatalf("Seek = %v, want format error", err)
	}
}

func TestPositionTracksPauseBookkeeping(t *testing.T) {
	t.Parallel()
	p := newIdlePlayer()

	track := &parsers.TrackParse{Title: "test", Duration: 3 * time.Minute}
	start := time.Now().Add(-30 * time.Second)

	p.mu.Lock()
	p.current = track
	p.playing = true
	p.startTime = start
	p.mu.Unlock()

	pos := p.Position()
	if pos < 29*time.Second || pos > 31*time.Second {
		t.Fatalf("position = %v, want ~30s", pos)
	}

	if err := p.Pause(); err != nil {
		t.Fatalf("Pause error: %v", err)
	}
	pausedPos := p.Position()

	// Position must freeze while paused.
	time.Sleep(30 * time.Millisecond)
	if got := p.Position(); got != pausedPos {
		t.Fatalf("position moved while paused: %v -> %v", pausedPos, got)
	}

	if err := p.Pause(); err != ErrAlreadyPaused {
		t.Fatalf("double Pause = %v, want ErrAlreadyPaused", err)
	}

	if err := p.Resume(); err != nil {
		t.Fatalf("Resume error: %v", err)
	}
	if err := p.Resume(); err != ErrNotPaused {
		t.Fatalf("double Resume = %v, want ErrNotPaused", err)
	}

	// After resuming, the paused interval is excluded from the position.
	resumedPos := p.Position()
	if resumedPos < pausedPos || resumedPos > pausedPos+time.Second {
		t.Fatalf("position after resume = %v, paused at %v", resumedPos, pausedPos)
	}
}

func TestSeekPastTrackEnd(t *testing.T) {
	t.Parallel()
	p := newIdlePlayer()

	p.mu.Lock()
	p.current = &parsers.TrackParse{Title: "short", Duration: time.Minute}
	p.playing = true
	p.startTime = time.Now()
	p.mu.Unlock()

	if _, err := p.Seek("5:00"); err == nil {
		t.Fatal("expected error seeking past the end")
	}
}

func TestSeekSendsSignalWithTarget(t *testing.T) {
	t.Parallel()
	p := newIdlePlayer()

	p.mu.Lock()
	p.current = &parsers.TrackParse{Title: "song", Duration: 10 * time.Minute}
	p.playing = true
	p.startTime = time.Now()
	p.mu.Unlock()

	pos, err := p.Seek("2:30")
	if err != nil {
		t.Fatalf("Seek error: %v", err)
	}
	if pos != 150*time.Second {
		t.Fatalf("Seek target = %v, want 2m30s", pos)
	}

	select {
	case sig := <-p.signal:
		if sig.action != actionSeek || sig.seekTo != 150*time.Second {
			t.Fatalf("signal = %+v", sig)
		}
	default:
		t.Fatal("no signal queued")
	}
}

func TestNewestSignalWins(t *testing.T) {
	t.Parallel()
	p := newIdlePlayer()

	p.mu.Lock()
	p.sendSignalLocked(trackSignal{action: actionSkip})
	p.sendSignalLocked(trackSignal{action: actionStop})
	p.mu.Unlock()

	select {
	case sig := <-p.signal:
		if sig.action != actionStop {
			t.Fatalf("signal action = %v, want stop", sig.action)
		}
	default:
		t.Fatal("no signal queued")
	}

	select {
	case sig := <-p.signal:
		t.Fatalf("unexpected second signal: %+v", sig)
	default:
	}
}

func TestTrackEndDropsPendingSignal(t *testing.T) {
	t.Parallel()
	p := newIdlePlayer()

	p.mu.Lock()
	p.current = &parsers.TrackParse{Title: "ending", Duration: 3 * time.Minute}
	p.playing = true
	p.startTime = time.Now()
	p.mu.Unlock()

	// A seek lands just as the track runs out on its own.
	if _, err := p.Seek("2:30"); err != nil {
		t.Fatalf("Seek error: %v", err)
	}
	p.finishTrack()

	select {
	case sig := <-p.signal:
		t.Fatalf("signal survived track end: %+v", sig)
	default:
	}
}

func TestJumpOnEmptyQueue(t *testing.T) {
	t.Parallel()
	p := newIdlePlayer()
	if _, err := p.Jump(1); !errors.Is(err, queue.ErrQueueEmpty) {
		t.Fatalf("Jump = %v, want ErrQueueEmpty", err)
	}
}

func TestIdleTimerArmsOnlyWhenConnected(t *testing.T) {
	t.Parallel()
	p := New(nil, "guild1", nil, Config{MaxQueueSize: 10, IdleTimeout: time.Hour})

	// No voice connection: nothing to disconnect, so no timer.
	p.mu.Lock()
	p.armIdleTimerLocked()
	armed := p.idleTimer != nil
	p.mu.Unlock()
	if armed {
		t.Fatal("timer armed without a voice connection")
	}

	p.mu.Lock()
	p.vc = &discordgo.VoiceConnection{}
	p.armIdleTimerLocked()
	armed = p.idleTimer != nil
	p.cancelIdleTimerLocked()
	p.mu.Unlock()
	if !armed {
		t.Fatal("timer not armed while connected")
	}
}

func TestIdleTimerDisabledByZeroTimeout(t *testing.T) {
	t.Parallel()
	p := New(nil, "guild1", nil, Config{MaxQueueSize: 10})

	p.mu.Lock()
	p.vc = &discordgo.VoiceConnection{}
	p.armIdleTimerLocked()
	armed := p.idleTimer != nil
	p.vc = nil
	p.mu.Unlock()
	if armed {
		t.Fatal("timer armed with no timeout configured")
	}
}

func TestIdleFiresOnlyWhenTrulyIdle(t *testing.T) {
	t.Parallel()
	p := New(nil, "guild1", nil, Config{MaxQueueSize: 10, IdleTimeout: time.Hour})

	// Still playing: the expiry callback must leave the connection alone.
	p.mu.Lock()
	p.vc = &discordgo.VoiceConnection{}
	p.playing = true
	p.mu.Unlock()

	p.onIdle()

	p.mu.Lock()
	connected := p.vc != nil
	p.vc = nil
	p.mu.Unlock()
	if !connected {
		t.Fatal("idle expiry disconnected during playback")
	}
}

type stubSource struct{}

func (stubSource) Match(string) bool { return true }
func (stubSource) Resolve(input, parser string) ([]sources.TrackInfo, error) {
	return []sources.TrackInfo{{
		URL:              input,
		Title:            "stub track",
		Duration:         time.Minute,
		SourceName:       "stub",
		AvailableParsers: []string{"ffmpeg-link"},
	}}, nil
}
func (stubSource) SourceName() string         { return "stub" }
func (stubSource) AvailableParsers() []string { return []string{"ffmpeg-link"} }

func TestEnqueueCancelsIdleTimer(t *testing.T) {
	t.Parallel()
	resolver := &source_resolver.SourceResolver{
		Sources: map[string]sources.Source{"stub": stubSource{}},
	}
	p := New(nil, "guild1", resolver, Config{MaxQueueSize: 10, IdleTimeout: time.Hour})

	p.mu.Lock()
	p.vc = &discordgo.VoiceConnection{}
	p.running = true // keep the loop out of the picture; only timer handling is under test
	p.armIdleTimerLocked()
	p.mu.Unlock()

	if _, _, err := p.Enqueue("https://example.com/a.mp3", "stub", "", "tester", "vc1"); err != nil {
		t.Fatalf("Enqueue error: %v", err)
	}

	p.mu.Lock()
	pending := p.idleTimer != nil
	p.cancelIdleTimerLocked()
	p.vc = nil
	p.mu.Unlock()
	if pending {
		t.Fatal("idle timer survived new activity")
	}
}

func TestQueueHelpers(t *testing.T) {
	t.Parallel()
	p := newIdlePlayer()

	p.queue.Add(parsers.TrackParse{Title: "a", Duration: time.Minute})
	p.queue.Add(parsers.TrackParse{Title: "b", Duration: time.Minute})

	if p.QueueLength() != 2 {
		t.Fatalf("QueueLength = %d, want 2", p.QueueLength())
	}
	if p.QueueDuration() != 2*time.Minute {
		t.Fatalf("QueueDuration = %v, want 2m", p.QueueDuration())
	}
	if got := p.ClearQueue(); got != 2 {
		t.Fatalf("ClearQueue = %d, want 2", got)
	}
	if p.QueueLength() != 0 {
		t.Fatalf("QueueLength after clear = %d, want 0", p.QueueLength())
	}
}
