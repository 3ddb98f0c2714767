package youtube

import (
	"errors"
	"slices"
	"strings"

	"github.com/Darkatse/SimiluBot/internal/music/parsers/kkdai"
	source "github.com/Darkatse/SimiluBot/internal/music/sources"
)

const SourceYouTube string = "youtube"

type YouTubeSource struct {
	resolver *YouTubeResolver
}

func New() *YouTubeSource {
	return &YouTubeSource{
		resolver: NewYouTubeResolver(),
	}
}

func (y *YouTubeSource) Match(input string) bool {
	return isYouTubeURL(input)
}

func (y *YouTubeSource) Resolve(input string, selectedParser string) ([]source.TrackInfo, error) {
	parsers := y.AvailableParsers()

	if selectedParser == "" {
		selectedParser = parsers[0]
	}

	if !slices.Contains(parsers, selectedParser) {
		return nil, errors.New(SourceYouTube + " source does not support " + selectedParser + " parser")
	}

	input = strings.TrimSpace(input)

	videoURL := input
	if isYouTubeVideoURL(input) {
		videoURL = CleanVideoURL(input)
	} else if isURL(input) {
		return nil, errors.New("invalid YouTube URL format")
	} else {
		// by title
		found, err := y.resolver.SearchFirstVideoURL(input)
		if err != nil {
			return nil, errors.New("could not find YouTube video for query")
		}
		videoURL = found
	}

	info := source.TrackInfo{
		URL:              videoURL,
		SourceName:       SourceYouTube,
		AvailableParsers: MoveToFront(parsers, selectedParser),
	}

	// Fetch metadata up front so the queue can show title and duration
	// before the track ever streams.
	if videoID, err := kkdai.ExtractVideoID(videoURL); err == nil {
		client := kkdai.NewClient()
		if video, err := client.GetVideo(videoID); err == nil {
			info.Title = video.Title
			info.Artist = video.Author
			info.Duration = video.Duration
			if len(video.Thumbnails) > 0 {
				info.Thumbnail = video.Thumbnails[len(video.Thumbnails)-1].URL
			}
		}
	}
	if info.Title == "" {
		info.Title = input
	}

	return []source.TrackInfo{info}, nil
}

func (y *YouTubeSource) SourceName() string {
	return SourceYouTube
}

func (y *YouTubeSource) AvailableParsers() []string {
	return []string{"kkdai-link", "kkdai-pipe", "ytdlp-link", "ytdlp-pipe"}
}
