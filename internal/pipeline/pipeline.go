// Package pipeline generates the missing HLS variants for every source video
// found in the media directory. It runs once at startup, before the HTTP
// server accepts traffic.
package pipeline

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/JesterVZ/test-m3u8/internal/ffmpeg"
	"github.com/JesterVZ/test-m3u8/internal/media"
	"github.com/JesterVZ/test-m3u8/internal/metrics"
	"github.com/JesterVZ/test-m3u8/internal/variant"
)

// Encoder is the transcoding engine surface the pipeline drives.
type Encoder interface {
	Segment(ctx context.Context, req ffmpeg.SegmentRequest) error
	EncodeClip(ctx context.Context, req ffmpeg.ClipRequest) error
}

type Config struct {
	MediaDir      string
	Workers       int           // concurrent variant builds, 1 = strictly sequential
	EncodeTimeout time.Duration // per engine invocation, 0 disables
}

type ManagerCtx struct {
	logger  zerolog.Logger
	config  Config
	encoder Encoder
}

func New(encoder Encoder, config Config) *ManagerCtx {
	if config.Workers < 1 {
		config.Workers = 1
	}

	return &ManagerCtx{
		logger:  log.With().Str("module", "pipeline").Logger(),
		config:  config,
		encoder: encoder,
	}
}

type job struct {
	asset media.Asset
	spec  variant.Spec
}

// Run generates every missing variant. Failures are collected per variant,
// never aborting the remaining work; the caller decides from the report
// whether they are fatal.
func (m *ManagerCtx) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	logger := m.logger.With().Str("run", report.RunID).Logger()

	created, err := ensureDir(m.config.MediaDir)
	if err != nil {
		return nil, err
	}
	if created {
		logger.Info().Str("dir", m.config.MediaDir).Msg("media dir created, nothing to process")
		return report, nil
	}

	assets, err := media.Scan(m.config.MediaDir)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		logger.Info().Msg("no source videos found")
		return report, nil
	}

	// one job per asset x variant; each output directory belongs to exactly
	// one job, so workers never race on the same variant
	var jobs []job
	for _, asset := range assets {
		for _, spec := range variant.Catalog {
			jobs = append(jobs, job{asset: asset, spec: spec})
		}
	}

	logger.Info().
		Int("videos", len(assets)).
		Int("variants", len(jobs)).
		Int("workers", m.config.Workers).
		Msg("pipeline started")

	start := time.Now()
	report.Results = m.execute(ctx, logger, jobs)

	logger.Info().
		Int("built", report.Built()).
		Int("skipped", report.Skipped()).
		Int("failed", len(report.Failed())).
		Dur("elapsed", time.Since(start)).
		Msg("pipeline finished")

	return report, nil
}

func (m *ManagerCtx) execute(ctx context.Context, logger zerolog.Logger, jobs []job) []Result {
	results := make([]Result, len(jobs))
	for i, j := range jobs {
		results[i] = Result{Video: j.asset.BaseName, Variant: j.spec.Suffix}
	}

	indexes := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < m.config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				m.process(ctx, logger, jobs[i], &results[i])
			}
		}()
	}

	next := 0
dispatch:
	for ; next < len(jobs); next++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case indexes <- next:
		}
	}
	close(indexes)
	wg.Wait()

	// jobs never dispatched because the run was cancelled
	for ; next < len(jobs); next++ {
		results[next].Err = ctx.Err()
	}

	return results
}

func (m *ManagerCtx) process(ctx context.Context, logger zerolog.Logger, j job, res *Result) {
	logger = logger.With().
		Str("video", j.asset.BaseName).
		Str("variant", j.spec.Suffix).
		Logger()

	// point-in-time probe: only the canonical playlist signals completion
	if fileExists(j.spec.PlaylistPath(m.config.MediaDir, j.asset.BaseName)) {
		logger.Debug().Msg("variant complete, skipping")
		metrics.VariantsSkipped.Inc()
		res.Skipped = true
		return
	}

	start := time.Now()

	var err error
	if j.spec.FastStart {
		err = m.buildFastStart(ctx, j.asset, j.spec)
	} else {
		err = m.buildNormal(ctx, j.asset, j.spec)
	}
	res.Elapsed = time.Since(start)

	if err != nil {
		logger.Error().Err(err).Msg("variant build failed")
		metrics.VariantFailures.WithLabelValues(failureStep(err)).Inc()
		res.Err = err
		return
	}

	logger.Info().Dur("elapsed", res.Elapsed).Msg("variant built")
	metrics.VariantsBuilt.WithLabelValues(j.spec.Mode()).Inc()
	metrics.BuildDuration.WithLabelValues(j.spec.Mode()).Observe(res.Elapsed.Seconds())
}

// segment runs one codec-copy segmenting invocation with the configured
// per-invocation timeout.
func (m *ManagerCtx) segment(ctx context.Context, req ffmpeg.SegmentRequest) error {
	ctx, cancel := m.invocationContext(ctx)
	defer cancel()

	return m.encoder.Segment(ctx, req)
}

// clip runs one degraded lead-in invocation with the configured timeout.
func (m *ManagerCtx) clip(ctx context.Context, req ffmpeg.ClipRequest) error {
	ctx, cancel := m.invocationContext(ctx)
	defer cancel()

	return m.encoder.EncodeClip(ctx, req)
}

func (m *ManagerCtx) invocationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.config.EncodeTimeout > 0 {
		return context.WithTimeout(ctx, m.config.EncodeTimeout)
	}
	return context.WithCancel(ctx)
}

func failureStep(err error) string {
	var encodeErr *ffmpeg.EncodeError
	if errors.As(err, &encodeErr) {
		return encodeErr.Step
	}
	return "playlist"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ensureDir creates dir if absent and reports whether it was newly created.
func ensureDir(dir string) (bool, error) {
	if _, err := os.Stat(dir); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	return true, nil
}
