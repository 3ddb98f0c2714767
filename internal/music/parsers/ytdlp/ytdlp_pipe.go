package ytdlp

import (
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/Darkatse/SimiluBot/internal/music/parsers"
)

func ytdlpPipe(track *parsers.TrackParse, seekSec float64) (io.ReadCloser, func(), error) {
	probe := exec.Command("yt-dlp", "-j", "-f", "bestaudio", track.URL)
	output, err := probe.Output()
	if err != nil {
		return nil, nil, fmt.Errorf("yt-dlp json error: %w", err)
	}

	info, err := parseInfo(output)
	if err != nil {
		return nil, nil, err
	}

	track.Duration = time.Duration(info.Duration * float64(time.Second))
	if track.Title == "" {
		track.Title = info.Title
	}

	ytdlp := exec.Command("yt-dlp", "-o", "-", "-f", "bestaudio", track.URL)
	ffmpeg := exec.Command("ffmpeg",
		"-ss", fmt.Sprintf("%.3f", seekSec),
		"-i", "pipe:0",
		"-f", "s16le",
		"-ar", fmt.Sprintf("%d", sampleRate),
		"-ac", fmt.Sprintf("%d", channels),
		"-loglevel", "warning",
		"pipe:1",
	)

	ffmpegIn, err := ytdlp.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("yt-dlp stdout pipe error: %w", err)
	}
	ffmpeg.Stdin = ffmpegIn

	reader, err := ffmpeg.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("ffmpeg stdout pipe error: %w", err)
	}

	if err := ytdlp.Start(); err != nil {
		return nil, nil, fmt.Errorf("yt-dlp start error: %w", err)
	}
	if err := ffmpeg.Start(); err != nil {
		ytdlp.Process.Kill()
		return nil, nil, fmt.Errorf("ffmpeg start error: %w", err)
	}

	cleanup := func() {
		ffmpeg.Process.Kill()
		ytdlp.Process.Kill()
	}

	return reader, cleanup, nil
}
