package source_resolver

import (
	"errors"

	"github.com/Darkatse/SimiluBot/internal/music/sources"
	"github.com/Darkatse/SimiluBot/internal/music/sources/catbox"
	"github.com/Darkatse/SimiluBot/internal/music/sources/youtube"
)

type SourceResolver struct {
	Sources map[string]sources.Source
}

func New() *SourceResolver {
	youtubeSource := youtube.New()
	catboxSource := catbox.New()

	return &SourceResolver{
		Sources: map[string]sources.Source{
			youtubeSource.SourceName(): youtubeSource,
			catboxSource.SourceName():  catboxSource,
		},
	}
}

func (r *SourceResolver) Resolve(input, selectedSource, selectedParser string) ([]sources.TrackInfo, error) {
	// Direct source selection
	if selectedSource != "" && selectedSource != sources.SourceAuto {
		src, ok := r.Sources[selectedSource]
		if !ok {
			return nil, errors.New("unknown source: " + selectedSource)
		}
		selectedParser, err := ensureParser(src, selectedParser)
		if err != nil {
			return nil, err
		}

		if !isURL(input) {
			if selectedSource != sources.SourceYouTube {
				return nil, errors.New("title search is only supported on " + sources.SourceYouTube)
			}
			return src.Resolve(input, selectedParser)
		}
		if !src.Match(input) {
			return nil, errors.New("input does not match selected source: " + selectedSource)
		}
		return src.Resolve(input, selectedParser)
	}

	// Automatic detection: bare text is a YouTube title search
	if !isURL(input) {
		yt, ok := r.Sources[sources.SourceYouTube]
		if !ok {
			return nil, errors.New(sources.SourceYouTube + " source not available for title search")
		}
		selectedParser, err := ensureParser(yt, selectedParser)
		if err != nil {
			return nil, err
		}
		return yt.Resolve(input, selectedParser)
	}

	for _, s := range r.Sources {
		if s.Match(input) {
			selectedParser, err := ensureParser(s, selectedParser)
			if err != nil {
				return nil, err
			}
			return s.Resolve(input, selectedParser)
		}
	}

	return nil, errors.New("unsupported URL: use a YouTube link or a files.catbox.moe audio link")
}

func ensureParser(src sources.Source, selected string) (string, error) {
	if selected != "" {
		return selected, nil
	}
	parsers := src.AvailableParsers()
	if len(parsers) == 0 {
		return "", errors.New("no parsers available for " + src.SourceName())
	}
	return parsers[0], nil
}
