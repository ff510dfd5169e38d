// Package downloader implements the interchangeable strategies ("backends")
// for transferring a media stream, either by driving external programs
// through the subprocess runner or by delegating to an in-process library.
package downloader

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kmosiejczuk/yle-dl/result"
)

// Capability flags for the optional I/O features a backend can honor.
type CapabilitySet uint8

const (
	CapResume CapabilitySet = 1 << iota
	CapProxy
	CapRatelimit
	CapDuration
)

func (s CapabilitySet) Has(c CapabilitySet) bool {
	return s&c != 0
}

// DownloadLimits restricts the transfer speed and length. Zero values mean
// unlimited.
type DownloadLimits struct {
	Ratelimit int // kB/s
	Duration  int // seconds
}

// Tools holds the locations of the external programs the backends delegate
// to. HDS is a command prefix rather than a single binary because the Adobe
// HDS downloader is a script run through an interpreter.
type Tools struct {
	FFmpeg   string
	Wget     string
	Rtmpdump string
	HDS      []string
}

// IOContext carries the caller's output and transfer options for one
// download attempt. It is owned by the caller and read-only for backends.
type IOContext struct {
	OutputFilename string
	DestDir        string
	Resume         bool
	ExcludeChars   string
	Proxy          string
	Limits         DownloadLimits
	Tools          Tools
}

// Backend is one download strategy. SaveStream transfers the stream into a
// local file, Pipe streams it to stdout. Both return a result code and never
// panic or leak errors past the call.
type Backend interface {
	Name() BackendName
	SaveStream(ctx context.Context, clipTitle string, ioc *IOContext) result.Code
	Pipe(ctx context.Context, ioc *IOContext, subtitleURL string) result.Code
	OutputFilename(clipTitle string, ioc *IOContext) string
	WarnOnUnsupportedFeatures(ioc *IOContext)
}

// Runner executes a chain of piped commands. Satisfied by
// subprocess.RunnerCtx; tests substitute fakes.
type Runner interface {
	Execute(ctx context.Context, commands [][]string, extraEnv map[string]string) result.Code
}

// base carries the state shared by every backend variant: the output
// extension, the fixed capability set and the cached output path decision.
type base struct {
	logger zerolog.Logger
	ext    string
	caps   CapabilitySet

	cachedOutputFile string
}

// WarnOnUnsupportedFeatures logs a warning for every requested option the
// variant cannot honor. It never fails; the transfer proceeds regardless.
func (b *base) WarnOnUnsupportedFeatures(ioc *IOContext) {
	if ioc.Resume && !b.caps.Has(CapResume) {
		b.logger.Warn().Msg("resume not supported on this stream")
	}
	if ioc.Proxy != "" && !b.caps.Has(CapProxy) {
		b.logger.Warn().Msg("proxy not supported on this stream, trying to continue anyway")
	}
	if ioc.Limits.Ratelimit > 0 && !b.caps.Has(CapRatelimit) {
		b.logger.Warn().Msg("rate limiting not supported on this stream")
	}
	if ioc.Limits.Duration > 0 && !b.caps.Has(CapDuration) {
		b.logger.Warn().Msg("duration limit will be ignored on this stream")
	}
}

// OutputFilename resolves the output path, forcing the variant's extension
// onto an explicit user filename. Variants with flexible containers override
// this to only append a missing extension.
func (b *base) OutputFilename(clipTitle string, ioc *IOContext) string {
	return b.constructOutputFilename(clipTitle, ioc, true)
}

func (b *base) logOutputFile(outputFile string, done bool) {
	if outputFile == "" || outputFile == "-" {
		return
	}
	if done {
		b.logger.Info().Str("filename", outputFile).Msg("stream saved")
	} else {
		b.logger.Info().Str("filename", outputFile).Msg("output file")
	}
}

// debugEnabled reports whether debug events written to l are actually
// emitted. Loggers derived from the global logger carry no level of their
// own, so the global level has to be consulted as well.
func debugEnabled(l zerolog.Logger) bool {
	return l.GetLevel() <= zerolog.DebugLevel &&
		zerolog.GlobalLevel() <= zerolog.DebugLevel
}
