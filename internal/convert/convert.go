// Package convert wraps FFmpeg for audio transcoding to AAC.
package convert

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultBitrate = 128 // kbps
	MinBitrate     = 96  // kbps floor for the shrink ladder
	bitrateStep    = 16  // kbps per shrink step
)

type Converter struct {
	Bitrate int // default target bitrate in kbps
}

func New(bitrate int) *Converter {
	if bitrate <= 0 {
		bitrate = DefaultBitrate
	}
	return &Converter{Bitrate: bitrate}
}

// OutputPath derives the output file name: <name>_<bitrate>kbps.m4a next to
// the input.
func OutputPath(inputPath string, bitrate int) string {
	dir := filepath.Dir(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(dir, fmt.Sprintf("%s_%dkbps.m4a", base, bitrate))
}

// ToAAC converts the input file to AAC at the given bitrate (kbps); zero
// means the converter default. Returns the output path.
func (c *Converter) ToAAC(ctx context.Context, inputPath string, bitrate int) (string, error) {
	if bitrate <= 0 {
		bitrate = c.Bitrate
	}
	outPath := OutputPath(inputPath, bitrate)

	if dur, err := ProbeDuration(ctx, inputPath); err == nil {
		log.Debug().Str("input", inputPath).Dur("duration", dur).Int("bitrate", bitrate).Msg("converting to AAC")
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-i", inputPath,
		"-c:a", "aac",
		"-b:a", fmt.Sprintf("%dk", bitrate),
		"-vn",
		"-loglevel", "warning",
		outPath,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		os.Remove(outPath)
		return "", fmt.Errorf("ffmpeg conversion failed: %w: %s", err, string(output))
	}

	return outPath, nil
}

// ToAACUnderLimit converts the input, stepping the bitrate down toward
// MinBitrate until the output fits maxBytes. Returns the output path and the
// bitrate that was used.
func (c *Converter) ToAACUnderLimit(ctx context.Context, inputPath string, bitrate int, maxBytes int64) (string, int, error) {
	if bitrate <= 0 {
		bitrate = c.Bitrate
	}

	for {
		outPath, err := c.ToAAC(ctx, inputPath, bitrate)
		if err != nil {
			return "", 0, err
		}

		info, err := os.Stat(outPath)
		if err != nil {
			return "", 0, fmt.Errorf("stat converted file: %w", err)
		}

		if maxBytes <= 0 || info.Size() <= maxBytes {
			return outPath, bitrate, nil
		}

		os.Remove(outPath)
		log.Info().Int64("size", info.Size()).Int64("limit", maxBytes).Int("bitrate", bitrate).
			Msg("converted file too large, lowering bitrate")

		if bitrate <= MinBitrate {
			return "", 0, fmt.Errorf("file still exceeds %d MB even at %d kbps", maxBytes/(1024*1024), MinBitrate)
		}
		bitrate -= bitrateStep
		if bitrate < MinBitrate {
			bitrate = MinBitrate
		}
	}
}

// ProbeDuration reads the container duration via ffprobe.
func ProbeDuration(ctx context.Context, path string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	secs, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration: %w", err)
	}
	return time.Duration(secs * float64(time.Second)), nil
}
