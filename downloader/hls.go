package downloader

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/kmosiejczuk/yle-dl/result"
)

// probe size passed to ffmpeg for streams whose beginning is unreliable
const longProbeSize = "80000000"

// HLSBackend downloads a segment-playlist (HLS) stream by delegating to
// ffmpeg with codec copy.
type HLSBackend struct {
	external
	url       string
	longProbe bool
}

func NewHLSBackend(logger zerolog.Logger, runner Runner, url, ext string, longProbe bool) *HLSBackend {
	return &HLSBackend{
		external:  newExternal(logger, runner, ext, CapDuration),
		url:       url,
		longProbe: longProbe,
	}
}

func (b *HLSBackend) Name() BackendName {
	return BackendFFmpeg
}

// OutputFilename keeps a user-supplied extension, because ffmpeg can write
// whatever container the extension implies.
func (b *HLSBackend) OutputFilename(clipTitle string, ioc *IOContext) string {
	return b.constructOutputFilename(clipTitle, ioc, false)
}

func (b *HLSBackend) SaveStream(ctx context.Context, clipTitle string, ioc *IOContext) result.Code {
	outputFile := b.OutputFilename(clipTitle, ioc)
	args := b.commandLine(ioc, []string{
		"-bsf:a", "aac_adtstoasc",
		"-vcodec", "copy", "-acodec", "copy",
		"file:" + outputFile,
	})
	return b.transfer(ctx, [][]string{args}, nil, outputFile)
}

// Pipe streams to stdout as MPEG-TS, or muxes a subtitle stream into a
// matroska container in a single ffmpeg invocation when a subtitle URL is
// supplied. No second-stage command is needed here, unlike the other
// external variants.
func (b *HLSBackend) Pipe(ctx context.Context, ioc *IOContext, subtitleURL string) result.Code {
	var args []string
	if subtitleURL != "" {
		args = b.commandLine(ioc, []string{
			"-thread_queue_size", "512", "-i", subtitleURL,
			"-vcodec", "copy", "-acodec", "aac", "-scodec", "copy",
			"-f", "matroska", "pipe:1",
		})
	} else {
		args = b.commandLine(ioc, []string{
			"-vcodec", "copy", "-acodec", "copy",
			"-f", "mpegts", "pipe:1",
		})
	}
	return b.runner.Execute(ctx, [][]string{args}, nil)
}

func (b *HLSBackend) commandLine(ioc *IOContext, outputOptions []string) []string {
	loglevel := "error"
	if debugEnabled(b.logger) {
		loglevel = "info"
	}

	args := []string{
		ioc.Tools.FFmpeg, "-y",
		"-loglevel", loglevel, "-stats",
		"-thread_queue_size", "512",
	}
	if b.longProbe {
		args = append(args, "-probesize", longProbeSize)
	}
	args = append(args, "-i", b.url)
	if ioc.Limits.Duration > 0 {
		args = append(args, "-t", strconv.Itoa(ioc.Limits.Duration))
	}
	return append(args, outputOptions...)
}

// HLSAudioBackend extracts the audio track of an HLS stream as an MP3 file
// instead of copying the whole container.
type HLSAudioBackend struct {
	HLSBackend
}

func NewHLSAudioBackend(logger zerolog.Logger, runner Runner, url, ext string, longProbe bool) *HLSAudioBackend {
	return &HLSAudioBackend{
		HLSBackend: *NewHLSBackend(logger, runner, url, ext, longProbe),
	}
}

func (b *HLSAudioBackend) SaveStream(ctx context.Context, clipTitle string, ioc *IOContext) result.Code {
	outputFile := b.OutputFilename(clipTitle, ioc)
	args := b.commandLine(ioc, []string{
		"-map", "0:4?", "-f", "mp3", "file:" + outputFile,
	})
	return b.transfer(ctx, [][]string{args}, nil, outputFile)
}

func (b *HLSAudioBackend) Pipe(ctx context.Context, ioc *IOContext, subtitleURL string) result.Code {
	args := b.commandLine(ioc, []string{"-map", "0:4?", "-f", "mp3", "pipe:1"})
	return b.runner.Execute(ctx, [][]string{args}, nil)
}
