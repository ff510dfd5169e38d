package downloader

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kmosiejczuk/yle-dl/internal/utils"
	"github.com/kmosiejczuk/yle-dl/result"
)

// external is embedded by every backend variant that delegates the transfer
// to external programs. The variant builds the argument vectors; external
// only wires them into the runner with the shared logging around them.
type external struct {
	base
	runner Runner
}

func newExternal(logger zerolog.Logger, runner Runner, ext string, caps CapabilitySet) external {
	return external{
		base: base{
			logger: logger,
			ext:    ext,
			caps:   caps,
		},
		runner: runner,
	}
}

// transfer runs the commands for a save-to-file action, logging the output
// path before the transfer and again on success.
func (e *external) transfer(ctx context.Context, commands [][]string, env map[string]string, outputFile string) result.Code {
	e.logOutputFile(outputFile, false)
	code := e.runner.Execute(ctx, commands, env)
	if code == result.Success {
		e.logOutputFile(outputFile, true)
	}
	return code
}

// pipeThrough runs the stream-to-stdout command, appending a subtitle muxing
// stage when a subtitle URL was supplied and ffmpeg is installed.
func (e *external) pipeThrough(ctx context.Context, args []string, env map[string]string, ffmpegBinary, subtitleURL string) result.Code {
	commands := [][]string{args}
	if mux := e.muxSubtitlesCommand(ffmpegBinary, subtitleURL); mux != nil {
		commands = append(commands, mux)
	}
	return e.runner.Execute(ctx, commands, env)
}

// muxSubtitlesCommand builds the second-stage command that muxes a subtitle
// stream into the piped output, or nil when muxing is not possible.
func (e *external) muxSubtitlesCommand(ffmpegBinary, subtitleURL string) []string {
	if ffmpegBinary == "" || subtitleURL == "" {
		return nil
	}

	if utils.FindBinary(ffmpegBinary) == "" {
		e.logger.Warn().Str("binary", ffmpegBinary).Msg("ffmpeg not found, subtitles disabled")
		e.logger.Warn().Msg("set the path to ffmpeg using --ffmpeg")
		return nil
	}

	return []string{ffmpegBinary, "-y", "-i", "pipe:0", "-i", subtitleURL,
		"-c", "copy", "-c:s", "srt", "-f", "matroska", "pipe:1"}
}
