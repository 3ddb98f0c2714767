package mega

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestIsMegaLink(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  bool
	}{
		{"https://mega.nz/file/AbCdEf12#s0m3k3y_-material", true},
		{"http://mega.nz/file/AbCdEf12", true},
		{"https://mega.nz/folder/AbCdEf12#s0m3k3y", true},
		{"https://mega.nz/#!AbCdEf12!s0m3k3y", true},
		{"check this out https://mega.nz/file/AbCdEf12#key trailing text", true},
		{"https://mega.com/file/AbCdEf12", false},
		{"https://example.com/mega.nz/file/abc", false},
		{"mega.nz/file/AbCdEf12", false},
		{"no link here", false},
	}
	for _, tt := range tests {
		if got := IsMegaLink(tt.input); got != tt.want {
			t.Errorf("IsMegaLink(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestExtractLinks(t *testing.T) {
	t.Parallel()
	text := "first https://mega.nz/file/AAA111#key1 and second https://mega.nz/folder/BBB222#key2 done"
	want := []string{
		"https://mega.nz/file/AAA111#key1",
		"https://mega.nz/folder/BBB222#key2",
	}
	if got := ExtractLinks(text); !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractLinks = %v, want %v", got, want)
	}

	if got := ExtractLinks("nothing to see"); got != nil {
		t.Fatalf("ExtractLinks on plain text = %v, want nil", got)
	}
}

func TestNewDownloaderDefaultsTempDir(t *testing.T) {
	t.Parallel()
	if d := NewDownloader(""); d.TempDir != "temp" {
		t.Fatalf("TempDir = %q, want temp", d.TempDir)
	}
	if d := NewDownloader("/tmp/x"); d.TempDir != "/tmp/x" {
		t.Fatalf("TempDir = %q, want /tmp/x", d.TempDir)
	}
}

func TestDownloadRejectsBadLink(t *testing.T) {
	t.Parallel()
	d := NewDownloader(t.TempDir())
	if _, err := d.Download(t.Context(), "https://example.com/file"); err == nil {
		t.Fatal("expected error for non-mega link")
	}
}

func TestPickLargestNew(t *testing.T) {
	t.Parallel()
	before := map[string]int64{"old.bin": 100}
	after := map[string]int64{
		"old.bin":   100,
		"small.bin": 10,
		"big.bin":   500,
	}
	if got := pickLargestNew(before, after); got != "big.bin" {
		t.Fatalf("pickLargestNew = %q, want big.bin", got)
	}

	if got := pickLargestNew(after, after); got != "" {
		t.Fatalf("pickLargestNew with no new files = %q, want empty", got)
	}

	// A zero-byte new file still counts as the download result.
	if got := pickLargestNew(map[string]int64{}, map[string]int64{"empty.bin": 0}); got != "empty.bin" {
		t.Fatalf("pickLargestNew = %q, want empty.bin", got)
	}
}

func TestListFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.bin"), []byte("12345"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "b.bin"), []byte("12"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := listFiles(dir)
	if err != nil {
		t.Fatalf("listFiles error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("listFiles returned %d entries, want 2", len(files))
	}
	if files[filepath.Join(dir, "a.bin")] != 5 {
		t.Fatalf("a.bin size = %d, want 5", files[filepath.Join(dir, "a.bin")])
	}
	if files[filepath.Join(sub, "b.bin")] != 2 {
		t.Fatalf("b.bin size = %d, want 2", files[filepath.Join(sub, "b.bin")])
	}
}
