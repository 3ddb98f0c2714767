package version

import "runtime"

var (
	AppName        = "SimiluBot"
	AppDescription = "Music playback and media conversion bot for Discord"

	// Version and BuildDate are overridden at build time via -ldflags.
	Version   = "dev"
	BuildDate = ""

	GoVersion = runtime.Version()
)
