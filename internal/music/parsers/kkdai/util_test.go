package kkdai

import "testing"

func TestExtractVideoID(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "watch url", input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "watch with extra params", input: "https://www.youtube.com/watch?list=PL1&v=dQw4w9WgXcQ&t=10", want: "dQw4w9WgXcQ"},
		{name: "music host", input: "https://music.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "short url", input: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "embed url", input: "https://www.youtube.com/embed/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "legacy v path", input: "https://www.youtube.com/v/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.input)
			if err != nil {
				t.Fatalf("ExtractVideoID(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ExtractVideoID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractVideoIDUnsupported(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"https://www.youtube.com/playlist?list=PL123",
		"https://example.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/short",
		"plain text",
	}
	for _, in := range inputs {
		if _, err := ExtractVideoID(in); err == nil {
			t.Errorf("ExtractVideoID(%q) expected error", in)
		}
	}
}
