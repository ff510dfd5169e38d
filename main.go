package yledl

import (
	"net/url"
	"os"
	"os/signal"
	"path"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kmosiejczuk/yle-dl/downloader"
	"github.com/kmosiejczuk/yle-dl/internal/config"
	"github.com/kmosiejczuk/yle-dl/result"
	"github.com/kmosiejczuk/yle-dl/subprocess"
)

var Service *Main

func init() {
	Service = &Main{
		DownloadConfig: &config.Download{},
	}
}

type Main struct {
	DownloadConfig *config.Download

	logger zerolog.Logger
}

func (main *Main) Preflight() {
	main.logger = log.With().Str("service", "main").Logger()
}

// DownloadCommand runs one download attempt: it filters the requested
// backends, constructs an instance per candidate and tries them in order,
// then exits with the process exit code of the final result.
func (main *Main) DownloadCommand(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cfg := main.DownloadConfig
	streamURL := args[0]

	ioc := &downloader.IOContext{
		OutputFilename: cfg.Output,
		DestDir:        cfg.DestDir,
		Resume:         cfg.Resume,
		ExcludeChars:   cfg.ExcludeChars,
		Proxy:          cfg.Proxy,
		Limits: downloader.DownloadLimits{
			Ratelimit: cfg.Ratelimit,
			Duration:  cfg.Duration,
		},
		Tools: downloader.Tools{
			FFmpeg:   cfg.FFmpeg,
			Wget:     cfg.Wget,
			Rtmpdump: cfg.Rtmpdump,
			HDS:      cfg.HDS,
		},
	}

	names := downloader.DefaultOrder
	if len(cfg.Backends) > 0 {
		names = downloader.ParseBackends(main.logger, cfg.Backends)
	}
	if len(names) == 0 {
		main.logger.Error().Msg("no valid backends")
		os.Exit(result.Failed.ExitCode())
	}

	factory := &downloader.Factory{
		Logger: log.With().Str("module", "downloader").Logger(),
		Runner: subprocess.New(log.With().Str("module", "subprocess").Logger()),
	}

	spec := downloader.StreamSpec{
		URL:       streamURL,
		Bitrate:   cfg.Bitrate,
		FlavorID:  cfg.FlavorID,
		Ext:       cfg.Ext,
		RtmpArgs:  cfg.RtmpArgs,
		AudioOnly: cfg.AudioOnly,
		LongProbe: cfg.LongProbe,
	}

	backends := make([]downloader.Backend, 0, len(names))
	for _, name := range names {
		backends = append(backends, factory.New(name, spec))
	}

	title := cfg.Title
	if title == "" {
		title = titleFromURL(streamURL)
	}

	var code result.Code
	if cfg.Pipe {
		code = downloader.PipeStream(ctx, main.logger, backends, ioc, cfg.SubtitleURL)
	} else {
		code = downloader.SaveStream(ctx, main.logger, backends, title, ioc)
	}

	main.logger.Info().Stringer("result", code).Msg("download finished")

	stop()
	os.Exit(code.ExitCode())
}

func titleFromURL(streamURL string) string {
	parsed, err := url.Parse(streamURL)
	if err != nil || parsed.Path == "" || parsed.Path == "/" {
		return "stream"
	}
	base := path.Base(parsed.Path)
	if ext := path.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	if base == "" {
		return "stream"
	}
	return base
}
