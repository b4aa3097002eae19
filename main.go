package vod

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/JesterVZ/test-m3u8/internal/api"
	"github.com/JesterVZ/test-m3u8/internal/config"
	"github.com/JesterVZ/test-m3u8/internal/ffmpeg"
	"github.com/JesterVZ/test-m3u8/internal/http"
	"github.com/JesterVZ/test-m3u8/internal/pipeline"
)

var Service *Main

func init() {
	Service = &Main{
		ServerConfig: &config.Server{},
	}
}

type Main struct {
	ServerConfig *config.Server

	logger     zerolog.Logger
	apiManager *api.ApiManagerCtx
	server     *http.HttpManagerCtx
}

func (main *Main) Preflight() {
	main.logger = log.With().Str("service", "main").Logger()
}

// Start generates missing variants, then brings up the HTTP server. The
// listener never accepts traffic before the pipeline has finished.
func (main *Main) Start() error {
	manager := pipeline.New(
		ffmpeg.NewRunner(main.ServerConfig.FFmpegBinary),
		pipeline.Config{
			MediaDir:      main.ServerConfig.MediaDir,
			Workers:       main.ServerConfig.PipelineWorkers,
			EncodeTimeout: main.ServerConfig.EncodeTimeout,
		},
	)

	report, err := manager.Run(context.Background())
	if err != nil {
		return err
	}

	if err := report.Err(); err != nil {
		if main.ServerConfig.Strict {
			return err
		}
		main.logger.Warn().Err(err).Msg("serving with incomplete variants")
	}

	main.apiManager = api.New(main.ServerConfig)

	main.server = http.New(main.ServerConfig)
	main.server.Mount(main.apiManager.Mount)
	if main.ServerConfig.PProf {
		main.server.WithDebugPProf("/debug/pprof")
	}
	main.server.Start()

	return nil
}

func (main *Main) Shutdown() {
	if err := main.server.Shutdown(); err != nil {
		main.logger.Err(err).Msg("server shutdown with an error")
	} else {
		main.logger.Debug().Msg("server shutdown")
	}
}

func (main *Main) ServeCommand(cmd *cobra.Command, args []string) {
	main.logger.Info().Msg("starting main server")
	if err := main.Start(); err != nil {
		main.logger.Fatal().Err(err).Msg("unable to start main server")
	}
	main.logger.Info().Msg("main ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	sig := <-quit

	main.logger.Warn().Msgf("received %s, attempting graceful shutdown", sig)
	main.Shutdown()
	main.logger.Info().Msg("shutdown complete")
}
