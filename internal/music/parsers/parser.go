package parsers

import (
	"time"

	"github.com/Darkatse/SimiluBot/internal/music/sources"
)

type TrackParse struct {
	URL           string
	Title         string
	Artist        string
	Duration      time.Duration
	Thumbnail     string
	FileSize      int64
	Requester     string
	CurrentParser string
	SourceInfo    sources.TrackInfo
}
