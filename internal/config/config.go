package config

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Config interface {
	Init(cmd *cobra.Command) error
	Set()
}

type Server struct {
	PProf bool

	Cert string
	Key  string
	Bind string

	MediaDir     string
	FFmpegBinary string

	PipelineWorkers int
	EncodeTimeout   time.Duration
	Strict          bool
}

func (Server) Init(cmd *cobra.Command) error {
	cmd.PersistentFlags().Bool("pprof", false, "enable pprof endpoint available at /debug/pprof")
	if err := viper.BindPFlag("pprof", cmd.PersistentFlags().Lookup("pprof")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("bind", "127.0.0.1:8080", "address/port/socket to serve on")
	if err := viper.BindPFlag("bind", cmd.PersistentFlags().Lookup("bind")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("cert", "", "path to the SSL cert used to secure the server")
	if err := viper.BindPFlag("cert", cmd.PersistentFlags().Lookup("cert")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("key", "", "path to the SSL key used to secure the server")
	if err := viper.BindPFlag("key", cmd.PersistentFlags().Lookup("key")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("media-dir", "./uploads", "directory scanned for source videos and holding variant output")
	if err := viper.BindPFlag("media-dir", cmd.PersistentFlags().Lookup("media-dir")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("ffmpeg-binary", "ffmpeg", "path to the ffmpeg binary")
	if err := viper.BindPFlag("ffmpeg-binary", cmd.PersistentFlags().Lookup("ffmpeg-binary")); err != nil {
		return err
	}

	cmd.PersistentFlags().Int("pipeline.workers", 1, "concurrent variant builds")
	if err := viper.BindPFlag("pipeline.workers", cmd.PersistentFlags().Lookup("pipeline.workers")); err != nil {
		return err
	}

	cmd.PersistentFlags().Duration("pipeline.encode-timeout", 30*time.Minute, "timeout per engine invocation, 0 disables")
	if err := viper.BindPFlag("pipeline.encode-timeout", cmd.PersistentFlags().Lookup("pipeline.encode-timeout")); err != nil {
		return err
	}

	cmd.PersistentFlags().Bool("pipeline.strict", false, "abort startup when any variant build fails")
	if err := viper.BindPFlag("pipeline.strict", cmd.PersistentFlags().Lookup("pipeline.strict")); err != nil {
		return err
	}

	return nil
}

func (s *Server) Set() {
	s.PProf = viper.GetBool("pprof")

	s.Cert = viper.GetString("cert")
	s.Key = viper.GetString("key")
	s.Bind = viper.GetString("bind")

	s.MediaDir = viper.GetString("media-dir")
	if s.MediaDir == "" {
		s.MediaDir = "./uploads"
	}

	s.FFmpegBinary = viper.GetString("ffmpeg-binary")
	if s.FFmpegBinary == "" {
		s.FFmpegBinary = "ffmpeg"
	}

	s.PipelineWorkers = viper.GetInt("pipeline.workers")
	if s.PipelineWorkers < 1 {
		s.PipelineWorkers = 1
	}

	s.EncodeTimeout = viper.GetDuration("pipeline.encode-timeout")
	s.Strict = viper.GetBool("pipeline.strict")
}
