package observability

import (
	"context"
	"net/http"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fbref-crawler/internal/config"
	"github.com/riskibarqy/fbref-crawler/internal/platform/logging"
)

// Runtime is the observability side of one process: tracing, continuous
// profiling and the pprof listener.
type Runtime struct {
	shutdownTracing func(context.Context) error
	stopProfiling   func() error
	pprof           *http.Server
}

// Start brings up every enabled backend for component ("api", "crawler").
// On failure whatever already started is shut down again.
func Start(cfg config.Config, logger *logging.Logger, component string) (*Runtime, error) {
	rt := &Runtime{
		shutdownTracing: noopShutdown,
		stopProfiling:   func() error { return nil },
	}

	var err error
	if rt.shutdownTracing, err = InitUptrace(cfg, logger, component); err != nil {
		return nil, crerr.Wrap(err, "init uptrace")
	}
	if rt.stopProfiling, err = InitPyroscope(cfg, logger, component); err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, crerr.Wrap(err, "init pyroscope")
	}
	if rt.pprof, err = StartPprofServer(cfg, logger); err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, crerr.Wrap(err, "start pprof")
	}
	return rt, nil
}

// Shutdown stops the backends in reverse start order and flushes pending
// spans last so spans from the shutdown itself are kept.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}

	var errs error
	if err := StopPprofServer(ctx, r.pprof); err != nil {
		errs = crerr.CombineErrors(errs, crerr.Wrap(err, "stop pprof"))
	}
	if r.stopProfiling != nil {
		if err := r.stopProfiling(); err != nil {
			errs = crerr.CombineErrors(errs, crerr.Wrap(err, "stop pyroscope"))
		}
	}
	if r.shutdownTracing != nil {
		if err := r.shutdownTracing(ctx); err != nil {
			errs = crerr.CombineErrors(errs, crerr.Wrap(err, "flush spans"))
		}
	}
	return errs
}
