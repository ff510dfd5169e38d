package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	yledl "github.com/kmosiejczuk/yle-dl"
	"github.com/kmosiejczuk/yle-dl/internal/config"
)

func init() {
	command := &cobra.Command{
		Use:   "download <url>",
		Short: "download a media stream",
		Long:  `download a media stream to a file or to stdout`,
		Args:  cobra.ExactArgs(1),
		Run:   yledl.Service.DownloadCommand,
	}

	configs := []config.Config{
		yledl.Service.DownloadConfig,
	}

	onConfigLoad = append(onConfigLoad, func() {
		for _, cfg := range configs {
			cfg.Set()
		}
		yledl.Service.Preflight()
	})

	for _, cfg := range configs {
		if err := cfg.Init(command); err != nil {
			log.Panic().Err(err).Msg("unable to run download command")
		}
	}

	rootCmd.AddCommand(command)
}
