package downloader

import (
	"context"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/kmosiejczuk/yle-dl/result"
)

// a resume file smaller than this cannot contain a complete audio frame and
// makes rtmpdump fail, so it is deleted and the download restarted
const minResumeFileSize = 1024

// RTMPBackend downloads a segmented RTMP stream by delegating to rtmpdump.
// The stream-specific rtmpdump arguments (connect URL, playpath, swf, ...)
// come from the stream metadata layer.
type RTMPBackend struct {
	external
	rtmpArgs []string
}

func NewRTMPBackend(logger zerolog.Logger, runner Runner, rtmpdumpArgs []string) *RTMPBackend {
	return &RTMPBackend{
		external: newExternal(logger, runner, ".flv",
			CapResume|CapDuration),
		rtmpArgs: rtmpdumpArgs,
	}
}

func (b *RTMPBackend) Name() BackendName {
	return BackendRTMPDump
}

func (b *RTMPBackend) SaveStream(ctx context.Context, clipTitle string, ioc *IOContext) result.Code {
	outputFile := b.OutputFilename(clipTitle, ioc)

	// rtmpdump fails to resume if the file doesn't contain at least one
	// audio frame. Remove small files to force a restart from the
	// beginning.
	if ioc.Resume && isSmallFile(outputFile) {
		_ = os.Remove(outputFile)
	}

	args := b.buildArgs(outputFile, ioc)
	return b.transfer(ctx, [][]string{args}, nil, outputFile)
}

func (b *RTMPBackend) Pipe(ctx context.Context, ioc *IOContext, subtitleURL string) result.Code {
	args := []string{ioc.Tools.Rtmpdump}
	args = append(args, b.rtmpArgs...)
	args = append(args, "-o", "-")
	return b.pipeThrough(ctx, args, nil, ioc.Tools.FFmpeg, subtitleURL)
}

func (b *RTMPBackend) buildArgs(outputFile string, ioc *IOContext) []string {
	args := []string{ioc.Tools.Rtmpdump}
	args = append(args, b.rtmpArgs...)
	args = append(args, "-o", outputFile)
	if ioc.Resume {
		args = append(args, "-e")
	}
	if ioc.Limits.Duration > 0 {
		args = append(args, "--stop", strconv.Itoa(ioc.Limits.Duration))
	}
	return args
}

func isSmallFile(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return info.Size() < minResumeFileSize
}
