// Package mega wraps the MEGAcmd CLI for downloading mega.nz links.
package mega

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"

	"github.com/rs/zerolog/log"
)

// linkPattern matches file links, folder links and the legacy #! form.
var linkPattern = regexp.MustCompile(`https?://mega\.nz/(?:file/[^/\s#]+(?:#[^/\s]+)?|folder/[^/\s#]+(?:#[^/\s]+)?|#!?[^/\s!]+(?:![^/\s]+)?)`)

// IsMegaLink reports whether the input contains a mega.nz link.
func IsMegaLink(input string) bool {
	return linkPattern.MatchString(input)
}

// ExtractLinks returns all mega.nz links found in the text.
func ExtractLinks(text string) []string {
	return linkPattern.FindAllString(text, -1)
}

type Downloader struct {
	TempDir string
}

func NewDownloader(tempDir string) *Downloader {
	if tempDir == "" {
		tempDir = "temp"
	}
	return &Downloader{TempDir: tempDir}
}

// Download fetches a mega.nz link via mega-get and returns the path of the
// downloaded file. The new file is identified by diffing the temp directory
// before and after; when several files appear the largest one wins.
func (d *Downloader) Download(ctx context.Context, url string) (string, error) {
	if !IsMegaLink(url) {
		return "", fmt.Errorf("not a valid mega.nz link: %s", url)
	}

	if err := os.MkdirAll(d.TempDir, 0o755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	before, err := listFiles(d.TempDir)
	if err != nil {
		return "", err
	}

	log.Info().Str("url", url).Str("dir", d.TempDir).Msg("starting mega download")

	cmd := exec.CommandContext(ctx, "mega-get", url, d.TempDir)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("mega-get failed: %w: %s", err, string(output))
	}

	after, err := listFiles(d.TempDir)
	if err != nil {
		return "", err
	}

	newest := pickLargestNew(before, after)
	if newest == "" {
		return "", fmt.Errorf("mega-get finished but no new file appeared in %s", d.TempDir)
	}

	log.Info().Str("file", newest).Msg("mega download finished")
	return newest, nil
}

// listFiles maps file path -> size for every regular file under dir.
func listFiles(dir string) (map[string]int64, error) {
	files := map[string]int64{}
	err := filepath.WalkDir(dir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		files[path] = info.Size()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list files in %s: %w", dir, err)
	}
	return files, nil
}

func pickLargestNew(before, after map[string]int64) string {
	var (
		best     string
		bestSize int64 = -1
	)
	for path, size := range after {
		if _, existed := before[path]; existed {
			continue
		}
		if size > bestSize {
			best = path
			bestSize = size
		}
	}
	return best
}
