package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	vod "github.com/JesterVZ/test-m3u8"
	"github.com/JesterVZ/test-m3u8/internal/config"
)

func init() {
	command := &cobra.Command{
		Use:   "serve",
		Short: "generate missing HLS variants and serve them",
		Long:  `generate missing HLS variants for local videos, then serve playlists and segments`,
		Run:   vod.Service.ServeCommand,
	}

	configs := []config.Config{
		vod.Service.ServerConfig,
	}

	cobra.OnInitialize(func() {
		for _, cfg := range configs {
			cfg.Set()
		}
		vod.Service.Preflight()
	})

	for _, cfg := range configs {
		if err := cfg.Init(command); err != nil {
			log.Panic().Err(err).Msg("unable to run serve command")
		}
	}

	rootCmd.AddCommand(command)
}
