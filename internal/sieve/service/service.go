package service

import (
	"context"

	"github.com/aturganbekov/prime-sieve/backend/internal/common/clock"
	commonerrors "github.com/aturganbekov/prime-sieve/backend/internal/common/errors"
	"github.com/aturganbekov/prime-sieve/backend/internal/common/logger"
	"github.com/aturganbekov/prime-sieve/backend/internal/history"
	"github.com/aturganbekov/prime-sieve/backend/internal/observability/metrics"
	"github.com/aturganbekov/prime-sieve/backend/internal/sieve/atkin"
	"github.com/aturganbekov/prime-sieve/backend/internal/sieve/render"
)

// Result carries the canonical prime list plus the renderings the
// presentation collaborator derives from it. The engine itself never
// touches rendering.
type Result struct {
	Primes         []int
	Count          int
	ASCIIImage     string
	Base64Image    string
	TableImagePath string
}

// Service runs sieve computations behind a fixed number of worker
// slots, so one pathological limit saturates at most maxConcurrent
// goroutines and unrelated requests keep being served.
type Service struct {
	history  history.Repository
	clock    clock.Clock
	log      *logger.Logger
	imageDir string
	slots    chan struct{}
}

type Deps struct {
	History  history.Repository
	Clock    clock.Clock
	Log      *logger.Logger
	ImageDir string
}

func New(deps Deps, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Service{
		history:  deps.History,
		clock:    deps.Clock,
		log:      deps.Log,
		imageDir: deps.ImageDir,
		slots:    make(chan struct{}, maxConcurrent),
	}
}

// Run validates the limit, computes the primes and appends a history
// record. The engine itself accepts any limit; the service is the layer
// that rejects limit < 2 as a user error.
func (s *Service) Run(ctx context.Context, limit int) (Result, error) {
	if limit < 2 {
		metrics.SieveRunsTotal.WithLabelValues("invalid_limit").Inc()
		return Result{}, commonerrors.ErrInvalidLimit
	}

	select {
	case s.slots <- struct{}{}:
		metrics.SieveSlotsInUse.Inc()
	case <-ctx.Done():
		metrics.SieveRunsTotal.WithLabelValues("canceled").Inc()
		return Result{}, commonerrors.ErrServerBusy.WithCause(ctx.Err())
	}
	defer func() {
		<-s.slots
		metrics.SieveSlotsInUse.Dec()
	}()

	start := s.clock.Now()
	primes := atkin.GeneratePrimes(limit)
	elapsed := s.clock.Since(start)

	metrics.SieveRunDurationSeconds.Observe(elapsed.Seconds())
	metrics.SievePrimesFound.Observe(float64(len(primes)))

	result := Result{
		Primes: primes,
		Count:  len(primes),
	}

	result.ASCIIImage = render.ASCIITable(primes, limit)

	dotPNG, err := render.DotImagePNG(primes)
	if err != nil {
		metrics.SieveRunsTotal.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"limit":  limit,
			"action": "sieve_render_failed",
		}).Errorf("dot image rendering failed: %v", err)
		return Result{}, commonerrors.ErrInternalError.WithCause(err)
	}
	result.Base64Image = render.EncodeBase64(dotPNG)

	tablePath, err := render.TableImage(primes, limit, s.imageDir)
	if err != nil {
		// The table file is a side artifact; losing it does not fail
		// the computation.
		s.log.WithFields(ctx, logger.Fields{
			"limit":  limit,
			"action": "sieve_table_image_failed",
		}).Warnf("table image rendering failed: %v", err)
	} else {
		result.TableImagePath = tablePath
	}

	rec := history.Record{
		Limit:     limit,
		Timestamp: s.clock.Now(),
	}
	// The request deadline can expire while a long computation is still
	// running; a finished run is recorded regardless.
	if err := s.history.Append(context.WithoutCancel(ctx), rec); err != nil {
		metrics.SieveRunsTotal.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"limit":  limit,
			"action": "sieve_history_append_failed",
		}).Errorf("history append failed: %v", err)
		return Result{}, commonerrors.ErrStorageUnavailable.WithCause(err)
	}

	metrics.SieveRunsTotal.WithLabelValues("success").Inc()
	metrics.HistoryRecordsAppended.Inc()

	s.log.WithFields(ctx, logger.Fields{
		"limit":    limit,
		"count":    len(primes),
		"duration": elapsed,
		"action":   "sieve_completed",
	}).Info("sieve run completed")

	return result, nil
}

// History returns the full ledger in insertion order.
func (s *Service) History(ctx context.Context) ([]history.Record, error) {
	records, err := s.history.ListAll(ctx)
	if err != nil {
		return nil, commonerrors.ErrStorageUnavailable.WithCause(err)
	}
	return records, nil
}
