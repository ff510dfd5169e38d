package downloader

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/kmosiejczuk/yle-dl/result"
)

// userAgent identifies the downloader to media servers.
const userAgent = "yle-dl/1.0.0"

// WgetBackend downloads a plain HTTP stream by delegating to wget.
type WgetBackend struct {
	external
	url string
}

func NewWgetBackend(logger zerolog.Logger, runner Runner, url, ext string) *WgetBackend {
	return &WgetBackend{
		external: newExternal(logger, runner, ext,
			CapResume|CapRatelimit|CapProxy),
		url: url,
	}
}

func (b *WgetBackend) Name() BackendName {
	return BackendWget
}

func (b *WgetBackend) SaveStream(ctx context.Context, clipTitle string, ioc *IOContext) result.Code {
	outputFile := b.OutputFilename(clipTitle, ioc)
	args := b.buildArgs(outputFile, ioc)
	return b.transfer(ctx, [][]string{args}, b.extraEnvironment(ioc), outputFile)
}

func (b *WgetBackend) Pipe(ctx context.Context, ioc *IOContext, subtitleURL string) result.Code {
	args := append(b.sharedArgs(ioc.Tools.Wget, "-"), b.url)
	return b.pipeThrough(ctx, args, b.extraEnvironment(ioc), ioc.Tools.FFmpeg, subtitleURL)
}

func (b *WgetBackend) buildArgs(outputFile string, ioc *IOContext) []string {
	args := b.sharedArgs(ioc.Tools.Wget, outputFile)
	args = append(args,
		"--progress=bar",
		"--tries=5",
		"--random-wait",
	)
	if ioc.Resume {
		args = append(args, "-c")
	}
	if ioc.Limits.Ratelimit > 0 {
		args = append(args, fmt.Sprintf("--limit-rate=%dk", ioc.Limits.Ratelimit))
	}
	return append(args, b.url)
}

func (b *WgetBackend) sharedArgs(wgetBinary, outputFile string) []string {
	return []string{
		wgetBinary,
		"-O", outputFile,
		"--no-use-server-timestamps",
		"--user-agent=" + userAgent,
		"--timeout=20",
	}
}

// extraEnvironment routes the requested proxy through the https_proxy
// environment variable. An externally set https_proxy is never overridden.
func (b *WgetBackend) extraEnvironment(ioc *IOContext) map[string]string {
	if ioc.Proxy == "" {
		return nil
	}
	if _, exists := os.LookupEnv("https_proxy"); exists {
		b.logger.Warn().Msg("--proxy ignored because https_proxy environment variable exists")
		return nil
	}
	return map[string]string{"https_proxy": ioc.Proxy}
}
