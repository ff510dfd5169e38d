package downloader

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kmosiejczuk/yle-dl/result"
)

// SaveStream tries each backend in order until one downloads the stream into
// a file. A later backend is attempted only after the previous one has fully
// failed; success and user cancellation both stop the iteration.
func SaveStream(ctx context.Context, logger zerolog.Logger, backends []Backend, clipTitle string, ioc *IOContext) result.Code {
	return tryEach(logger, backends, ioc, func(b Backend) result.Code {
		return b.SaveStream(ctx, clipTitle, ioc)
	})
}

// PipeStream is like SaveStream but streams to stdout, optionally muxing
// subtitles.
func PipeStream(ctx context.Context, logger zerolog.Logger, backends []Backend, ioc *IOContext, subtitleURL string) result.Code {
	return tryEach(logger, backends, ioc, func(b Backend) result.Code {
		return b.Pipe(ctx, ioc, subtitleURL)
	})
}

func tryEach(logger zerolog.Logger, backends []Backend, ioc *IOContext, action func(Backend) result.Code) result.Code {
	code := result.Failed

	for i, b := range backends {
		b.WarnOnUnsupportedFeatures(ioc)
		code = action(b)

		if code == result.Success || code == result.Incomplete {
			return code
		}
		if i < len(backends)-1 {
			logger.Warn().
				Str("backend", string(b.Name())).
				Stringer("result", code).
				Msg("backend failed, trying the next one")
		}
	}

	return code
}
