package downloader

import "github.com/rs/zerolog"

// StreamSpec is the stream-specific data the metadata layer extracted for
// one clip: where to fetch it and how the backends should shape the output.
type StreamSpec struct {
	URL      string
	Bitrate  int
	FlavorID string
	Ext      string // output extension including the leading dot

	// rtmpdump argument vector (connect URL, playpath, ...) for RTMP
	// streams
	RtmpArgs []string

	AudioOnly bool
	LongProbe bool
}

// Factory constructs backend instances for a stream. Runner drives the
// external-program variants, HDS (optional) backs the in-process variant.
type Factory struct {
	Logger zerolog.Logger
	Runner Runner
	HDS    HDSClient
}

// New returns the backend for name, or nil for an unknown name.
func (f *Factory) New(name BackendName, spec StreamSpec) Backend {
	logger := f.Logger.With().Str("backend", string(name)).Logger()

	switch name {
	case BackendWget:
		return NewWgetBackend(logger, f.Runner, spec.URL, spec.Ext)
	case BackendFFmpeg:
		if spec.AudioOnly {
			return NewHLSAudioBackend(logger, f.Runner, spec.URL, spec.Ext, spec.LongProbe)
		}
		return NewHLSBackend(logger, f.Runner, spec.URL, spec.Ext, spec.LongProbe)
	case BackendAdobeHDS:
		return NewHDSBackend(logger, f.Runner, spec.URL, spec.Bitrate, spec.FlavorID, spec.Ext)
	case BackendYoutubeDL:
		return NewHDSLibBackend(logger, f.HDS, spec.URL, spec.Bitrate, spec.Ext)
	case BackendRTMPDump:
		return NewRTMPBackend(logger, f.Runner, spec.RtmpArgs)
	}
	return nil
}
