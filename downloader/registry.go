package downloader

import "github.com/rs/zerolog"

// BackendName identifies one download strategy. The set of valid names is
// closed; user input is validated against it.
type BackendName string

const (
	BackendWget      BackendName = "wget"
	BackendFFmpeg    BackendName = "ffmpeg"
	BackendAdobeHDS  BackendName = "adobehdsphp"
	BackendYoutubeDL BackendName = "youtubedl"
	BackendRTMPDump  BackendName = "rtmpdump"
)

// DefaultOrder is the preference order used when the caller does not
// request specific backends.
var DefaultOrder = []BackendName{
	BackendWget,
	BackendFFmpeg,
	BackendAdobeHDS,
	BackendYoutubeDL,
	BackendRTMPDump,
}

func IsValidBackend(name BackendName) bool {
	for _, known := range DefaultOrder {
		if name == known {
			return true
		}
	}
	return false
}

// ParseBackends filters the requested backend names down to the valid ones,
// warning about each rejection, and removes duplicates while preserving the
// first-occurrence order. Unknown input is never an error.
func ParseBackends(logger zerolog.Logger, names []string) []BackendName {
	backends := []BackendName{}
	for _, n := range names {
		name := BackendName(n)
		if !IsValidBackend(name) {
			logger.Warn().Str("backend", n).Msg("invalid backend")
			continue
		}

		seen := false
		for _, b := range backends {
			if b == name {
				seen = true
				break
			}
		}
		if !seen {
			backends = append(backends, name)
		}
	}
	return backends
}
