package observability

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/riskibarqy/fbref-crawler/internal/config"
	"github.com/riskibarqy/fbref-crawler/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_EverythingDisabled(t *testing.T) {
	cfg := config.Config{
		ServiceName: "fbref-crawler",
		AppEnv:      config.EnvDev,
	}

	rt, err := Start(cfg, logging.NewNop(), "crawler")
	require.NoError(t, err)
	assert.Nil(t, rt.pprof)
	assert.NoError(t, rt.Shutdown(context.Background()))
}

func TestInitUptrace_EnabledWithoutDSNIsNoop(t *testing.T) {
	cfg := config.Config{UptraceEnabled: true, UptraceDSN: "  ", ServiceName: "fbref-crawler"}

	shutdown, err := InitUptrace(cfg, nil, "api")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestStartPprofServer_ServesProfiles(t *testing.T) {
	cfg := config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}

	srv, err := StartPprofServer(cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = StopPprofServer(context.Background(), srv) })

	resp, err := http.Get(fmt.Sprintf("http://%s/debug/pprof/cmdline", srv.Addr))
	require.NoError(t, err)
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStartPprofServer_BusyPortFailsFast(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	_, err = StartPprofServer(config.Config{PprofEnabled: true, PprofAddr: ln.Addr().String()}, logging.NewNop())
	require.Error(t, err)

	_, err = Start(config.Config{PprofEnabled: true, PprofAddr: ln.Addr().String()}, logging.NewNop(), "api")
	assert.ErrorContains(t, err, "start pprof")
}

func TestRuntime_NilShutdown(t *testing.T) {
	var rt *Runtime
	assert.NoError(t, rt.Shutdown(context.Background()))
	assert.NoError(t, StopPprofServer(context.Background(), nil))
}
