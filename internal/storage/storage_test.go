package storage

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "datastore.json"))
	if err != nil {
		t.Fatalf("storage.New error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCommandHistoryAppendAndFetch(t *testing.T) {
	t.Parallel()
	s := newTestStorage(t)

	rec := CommandHistoryRecord{
		ChannelID: "chan1",
		UserID:    "user1",
		Username:  "alice",
		Command:   "music",
		Param:     "play",
		Datetime:  time.Now(),
	}
	if err := s.AppendCommandToHistory("guild1", rec); err != nil {
		t.Fatalf("AppendCommandToHistory error: %v", err)
	}

	history, err := s.FetchCommandHistory("guild1")
	if err != nil {
		t.Fatalf("FetchCommandHistory error: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0].Command != "music" || history[0].Param != "play" {
		t.Fatalf("history[0] = %+v", history[0])
	}
}

func TestCommandHistoryTrimsToLimit(t *testing.T) {
	t.Parallel()
	s := newTestStorage(t)

	for i := 0; i < commandHistoryLimit+5; i++ {
		rec := CommandHistoryRecord{Command: fmt.Sprintf("cmd-%d", i)}
		if err := s.AppendCommandToHistory("guild1", rec); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	history, err := s.FetchCommandHistory("guild1")
	if err != nil {
		t.Fatalf("FetchCommandHistory error: %v", err)
	}
	if len(history) > commandHistoryLimit+1 {
		t.Fatalf("history length = %d, want at most %d", len(history), commandHistoryLimit+1)
	}
	// The newest entry survives the trim.
	last := history[len(history)-1]
	if last.Command != fmt.Sprintf("cmd-%d", commandHistoryLimit+4) {
		t.Fatalf("last command = %q", last.Command)
	}
}

func TestGroupDisableToggle(t *testing.T) {
	t.Parallel()
	s := newTestStorage(t)

	if s.IsGroupDisabled("guild1", "music") {
		t.Fatal("group should start enabled")
	}

	if err := s.SetGroupDisabled("guild1", "music", true); err != nil {
		t.Fatalf("SetGroupDisabled error: %v", err)
	}
	if !s.IsGroupDisabled("guild1", "music") {
		t.Fatal("group should be disabled")
	}

	// Other guilds are unaffected.
	if s.IsGroupDisabled("guild2", "music") {
		t.Fatal("other guild should be unaffected")
	}

	if err := s.SetGroupDisabled("guild1", "music", false); err != nil {
		t.Fatalf("SetGroupDisabled error: %v", err)
	}
	if s.IsGroupDisabled("guild1", "music") {
		t.Fatal("group should be enabled again")
	}
}

func TestDownloadsAppendAndTrim(t *testing.T) {
	t.Parallel()
	s := newTestStorage(t)

	for i := 0; i < 5; i++ {
		dl := DownloadRecord{
			SourceURL: fmt.Sprintf("https://mega.nz/file/f%d", i),
			FileName:  fmt.Sprintf("file%d.m4a", i),
			Status:    "completed",
			Datetime:  time.Now(),
		}
		if err := s.AppendDownload("guild1", dl, 3); err != nil {
			t.Fatalf("AppendDownload error: %v", err)
		}
	}

	downloads, err := s.FetchDownloads("guild1")
	if err != nil {
		t.Fatalf("FetchDownloads error: %v", err)
	}
	if len(downloads) != 3 {
		t.Fatalf("downloads length = %d, want 3", len(downloads))
	}
	if downloads[0].FileName != "file2.m4a" || downloads[2].FileName != "file4.m4a" {
		t.Fatalf("downloads = %+v", downloads)
	}
}

func TestDownloadsUnlimitedWhenCapZero(t *testing.T) {
	t.Parallel()
	s := newTestStorage(t)

	for i := 0; i < 10; i++ {
		if err := s.AppendDownload("guild1", DownloadRecord{FileName: "f"}, 0); err != nil {
			t.Fatalf("AppendDownload error: %v", err)
		}
	}
	downloads, _ := s.FetchDownloads("guild1")
	if len(downloads) != 10 {
		t.Fatalf("downloads length = %d, want 10", len(downloads))
	}
}

func TestRecordSurvivesRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "datastore.json")

	s, err := New(path)
	if err != nil {
		t.Fatalf("storage.New error: %v", err)
	}
	s.AppendCommandToHistory("guild1", CommandHistoryRecord{Command: "about"})
	s.SetGroupDisabled("guild1", "media", true)
	if err := s.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer reopened.Close()

	history, err := reopened.FetchCommandHistory("guild1")
	if err != nil {
		t.Fatalf("FetchCommandHistory error: %v", err)
	}
	if len(history) != 1 || history[0].Command != "about" {
		t.Fatalf("history = %+v", history)
	}
	if !reopened.IsGroupDisabled("guild1", "media") {
		t.Fatal("disabled group lost across restart")
	}
}
