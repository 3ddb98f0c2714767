// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Darkatse/SimiluBot/internal/config"
)

// Setup installs the global logger per the logging settings: colored console
// output always, plus a rotating file when a log file path is configured.
func Setup(s config.LoggingSettings) {
	level, err := zerolog.ParseLevel(strings.ToLower(s.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	var w io.Writer = console
	if s.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   s.File,
			MaxSize:    s.MaxSizeMB,
			MaxBackups: s.Backups,
			Compress:   true,
		}
		w = zerolog.MultiLevelWriter(console, rotator)
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}
