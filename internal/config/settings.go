package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Settings holds feature configuration read from a YAML file. Every field has
// a sensible default, so a missing file or a partial file both work.
type Settings struct {
	Music      MusicSettings      `yaml:"music"`
	Conversion ConversionSettings `yaml:"conversion"`
	Upload     UploadSettings     `yaml:"upload"`
	YouTube    YouTubeSettings    `yaml:"youtube"`
	Mega       MegaSettings       `yaml:"mega"`
	Logging    LoggingSettings    `yaml:"logging"`
}

type MusicSettings struct {
	Enabled bool `yaml:"enabled"`
	// MaxQueueSize limits the number of queued songs per guild.
	MaxQueueSize int `yaml:"max_queue_size"`
	// MaxSongDuration limits individual song length, in seconds. Zero means
	// unlimited.
	MaxSongDuration int `yaml:"max_song_duration"`
	// AutoDisconnectTimeout is the idle period, in seconds, after which the
	// bot leaves the voice channel.
	AutoDisconnectTimeout int `yaml:"auto_disconnect_timeout"`
	// Volume is the playback volume in percent, 0-100.
	Volume int `yaml:"volume"`
}

type ConversionSettings struct {
	// DefaultBitrate is the target AAC bitrate in kbps.
	DefaultBitrate int `yaml:"default_bitrate"`
}

type UploadSettings struct {
	// Service names the upload target. Only "catbox" is supported.
	Service string `yaml:"default_service"`
}

type YouTubeSettings struct {
	// Proxy is an optional SOCKS5 proxy address (host:port) for YouTube
	// traffic.
	Proxy string `yaml:"proxy"`
}

type MegaSettings struct {
	// AutoDetect enables reacting to MEGA links posted in ordinary messages.
	AutoDetect bool `yaml:"auto_detect"`
	// TempDir is where downloads land before conversion.
	TempDir string `yaml:"temp_dir"`
	// MaxTrackedFiles caps the download history kept per guild.
	MaxTrackedFiles int `yaml:"max_tracked_files"`
}

type LoggingSettings struct {
	Level     string `yaml:"level"`
	File      string `yaml:"file"`
	MaxSizeMB int    `yaml:"max_size_mb"`
	Backups   int    `yaml:"backups"`
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Music: MusicSettings{
			Enabled:               true,
			MaxQueueSize:          100,
			MaxSongDuration:       3600,
			AutoDisconnectTimeout: 300,
			Volume:                100,
		},
		Conversion: ConversionSettings{
			DefaultBitrate: 128,
		},
		Upload: UploadSettings{
			Service: "catbox",
		},
		Mega: MegaSettings{
			AutoDetect:      true,
			TempDir:         "temp",
			MaxTrackedFiles: 50,
		},
		Logging: LoggingSettings{
			Level:     "info",
			MaxSizeMB: 10,
			Backups:   5,
		},
	}
}

// LoadSettings reads the YAML settings file at path, layering it over the
// defaults. A missing file is not an error; defaults apply.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings file: %w", err)
	}
	return s, nil
}
