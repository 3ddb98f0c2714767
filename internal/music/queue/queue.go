// Package queue implements the per-guild FIFO song queue.
package queue

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/Darkatse/SimiluBot/internal/music/parsers"
)

var (
	ErrQueueFull  = errors.New("queue is full")
	ErrQueueEmpty = errors.New("queue is empty")
	ErrBadIndex   = errors.New("position out of range")
)

// Queue is a bounded FIFO of tracks. Positions are 1-indexed everywhere they
// surface to users.
type Queue struct {
	mu      sync.Mutex
	tracks  []parsers.TrackParse
	maxSize int
}

// New creates a queue bounded to maxSize tracks. maxSize <= 0 means
// unbounded.
func New(maxSize int) *Queue {
	return &Queue{maxSize: maxSize}
}

// Add appends a track and returns its 1-indexed position.
func (q *Queue) Add(track parsers.TrackParse) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.maxSize > 0 && len(q.tracks) >= q.maxSize {
		return 0, ErrQueueFull
	}
	q.tracks = append(q.tracks, track)
	return len(q.tracks), nil
}

// Next pops the head of the queue.
func (q *Queue) Next() (parsers.TrackParse, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.tracks) == 0 {
		return parsers.TrackParse{}, false
	}
	track := q.tracks[0]
	q.tracks = q.tracks[1:]
	return track, true
}

// Jump discards everything before the 1-indexed position. The target track
// becomes the new head and is returned for display.
func (q *Queue) Jump(position int) (parsers.TrackParse, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.tracks) == 0 {
		return parsers.TrackParse{}, ErrQueueEmpty
	}
	if position < 1 || position > len(q.tracks) {
		return parsers.TrackParse{}, ErrBadIndex
	}
	q.tracks = q.tracks[position-1:]
	return q.tracks[0], nil
}

// Clear empties the queue and returns how many tracks were dropped.
func (q *Queue) Clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.tracks)
	q.tracks = nil
	return n
}

// Snapshot returns a copy of the queued tracks in order.
func (q *Queue) Snapshot() []parsers.TrackParse {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.tracks)
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tracks)
}

// TotalDuration sums the known durations of all queued tracks.
func (q *Queue) TotalDuration() time.Duration {
	q.mu.Lock()
	defer q.mu.Unlock()

	var total time.Duration
	for _, t := range q.tracks {
		total += t.Duration
	}
	return total
}
