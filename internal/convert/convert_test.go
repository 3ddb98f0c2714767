package convert

import (
	"path/filepath"
	"testing"
)

func TestOutputPath(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		bitrate int
		want    string
	}{
		{
			name:    "relative path",
			input:   "temp/song.mp3",
			bitrate: 128,
			want:    filepath.Join("temp", "song_128kbps.m4a"),
		},
		{
			name:    "no extension",
			input:   "temp/song",
			bitrate: 96,
			want:    filepath.Join("temp", "song_96kbps.m4a"),
		},
		{
			name:    "dots in name",
			input:   "temp/my.favorite.song.flac",
			bitrate: 112,
			want:    filepath.Join("temp", "my.favorite.song_112kbps.m4a"),
		},
		{
			name:    "bare file name",
			input:   "song.wav",
			bitrate: 128,
			want:    "song_128kbps.m4a",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputPath(tt.input, tt.bitrate); got != tt.want {
				t.Fatalf("OutputPath(%q, %d) = %q, want %q", tt.input, tt.bitrate, got, tt.want)
			}
		})
	}
}

func TestNewDefaultsBitrate(t *testing.T) {
	t.Parallel()
	if c := New(0); c.Bitrate != DefaultBitrate {
		t.Fatalf("Bitrate = %d, want %d", c.Bitrate, DefaultBitrate)
	}
	if c := New(-5); c.Bitrate != DefaultBitrate {
		t.Fatalf("Bitrate = %d, want %d", c.Bitrate, DefaultBitrate)
	}
	if c := New(192); c.Bitrate != 192 {
		t.Fatalf("Bitrate = %d, want 192", c.Bitrate)
	}
}
