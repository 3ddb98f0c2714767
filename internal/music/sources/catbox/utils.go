package catbox

import (
	"net/url"
	"path"
	"strings"
)

const catboxFileHost = "files.catbox.moe"

var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".ogg":  true,
	".m4a":  true,
	".flac": true,
	".aac":  true,
	".opus": true,
	".wma":  true,
}

// IsCatboxAudioURL reports whether the input is a files.catbox.moe URL with a
// supported audio extension.
func IsCatboxAudioURL(input string) bool {
	u, err := url.Parse(input)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Hostname() != catboxFileHost {
		return false
	}
	ext := strings.ToLower(path.Ext(u.Path))
	return audioExtensions[ext]
}

// FileNameFromURL returns the file name portion of a catbox URL, used as the
// track title.
func FileNameFromURL(input string) string {
	u, err := url.Parse(input)
	if err != nil {
		return input
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return input
	}
	return name
}
