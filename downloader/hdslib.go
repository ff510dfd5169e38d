package downloader

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kmosiejczuk/yle-dl/result"
)

// HDSClient is an in-process fragmented-HTTP (HDS) downloader. It is an
// external collaborator: the CLI layer wires in an implementation when one
// is available.
type HDSClient interface {
	// Download fetches the stream described by opts into output, or to
	// stdout when output is "-".
	Download(ctx context.Context, output string, opts HDSOptions) error
}

// HDSOptions is the option set of the embedded HDS downloader. Note that
// RatelimitBytes is in bytes per second, not the kB/s used elsewhere.
type HDSOptions struct {
	URL            string
	Bitrate        int
	RatelimitBytes int64
	Resume         bool
	Proxy          string
}

// HDSLibBackend downloads a fragmented HTTP stream with the in-process HDS
// client instead of spawning an external program. Subtitle muxing is not
// supported by this variant.
type HDSLibBackend struct {
	base
	url     string
	bitrate int
	client  HDSClient
}

func NewHDSLibBackend(logger zerolog.Logger, client HDSClient, url string, bitrate int, ext string) *HDSLibBackend {
	return &HDSLibBackend{
		base: base{
			logger: logger,
			ext:    ext,
			caps:   CapResume | CapProxy | CapRatelimit,
		},
		url:     url,
		bitrate: bitrate,
		client:  client,
	}
}

func (b *HDSLibBackend) Name() BackendName {
	return BackendYoutubeDL
}

func (b *HDSLibBackend) SaveStream(ctx context.Context, clipTitle string, ioc *IOContext) result.Code {
	return b.download(ctx, b.OutputFilename(clipTitle, ioc), ioc)
}

func (b *HDSLibBackend) Pipe(ctx context.Context, ioc *IOContext, subtitleURL string) result.Code {
	return b.download(ctx, "-", ioc)
}

func (b *HDSLibBackend) download(ctx context.Context, outputFile string, ioc *IOContext) result.Code {
	if b.client == nil {
		b.logger.Error().Msg("in-process HDS downloader is not available")
		return result.Failed
	}

	b.logOutputFile(outputFile, false)

	opts := HDSOptions{
		URL:     b.url,
		Bitrate: b.bitrate,
		Resume:  outputFile != "-" && ioc.Resume,
		Proxy:   ioc.Proxy,
	}
	if ioc.Limits.Ratelimit > 0 {
		opts.RatelimitBytes = int64(ioc.Limits.Ratelimit) * 1024
	}

	if err := b.client.Download(ctx, outputFile, opts); err != nil {
		b.logger.Error().Err(err).Msg("HDS download failed")
		return result.Failed
	}

	b.logOutputFile(outputFile, true)
	return result.Success
}
