package utils

import (
	"strings"

	"github.com/rs/zerolog"
)

type LogWriterCtx struct {
	logger zerolog.Logger
}

// LogWriter returns an io.Writer that forwards everything written to it to
// the given logger, one log event per line. It is used as the stderr sink
// for downstream commands in a process chain, so their diagnostics end up
// in the log instead of fighting over the terminal with the head command's
// progress display.
func LogWriter(l zerolog.Logger) *LogWriterCtx {
	return &LogWriterCtx{
		logger: l,
	}
}

func (l LogWriterCtx) Write(p []byte) (n int, err error) {
	for _, line := range strings.Split(string(p), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		l.logger.Warn().Msg(line)
	}
	return len(p), nil
}
