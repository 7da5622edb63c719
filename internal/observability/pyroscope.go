package observability

import (
	"cmp"
	"runtime"
	"strings"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/fbref-crawler/internal/config"
	"github.com/riskibarqy/fbref-crawler/internal/platform/logging"
)

// crawlProfiles extends the CPU and heap defaults with goroutine and mutex
// profiles. Mutex sampling is switched on in InitPyroscope.
var crawlProfiles = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
	pyroscope.ProfileMutexCount,
	pyroscope.ProfileMutexDuration,
}

// InitPyroscope starts continuous profiling tagged with component.
func InitPyroscope(cfg config.Config, logger *logging.Logger, component string) (func() error, error) {
	if !cfg.PyroscopeEnabled {
		return func() error { return nil }, nil
	}
	if logger == nil {
		logger = logging.Default()
	}

	runtime.SetMutexProfileFraction(5)

	app := cmp.Or(strings.TrimSpace(cfg.PyroscopeAppName), cfg.ServiceName)
	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   app,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":       cfg.AppEnv,
			"component": cmp.Or(component, "api"),
		},
		ProfileTypes: crawlProfiles,
	})
	if err != nil {
		return nil, err
	}

	logger.Named("pyroscope").Info("profiling on", "application", app, "component", component)
	return profiler.Stop, nil
}
