package webserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbicalc/internal/config"
)

func TestNew_ServesAPI(t *testing.T) {
	chdirForTest(t, t.TempDir())
	cfg, _ := config.Load()

	srv, cleanup, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer cleanup()

	h := srv.Handler()
	for _, path := range []string{"/api/health", "/api/defaults", "/metrics"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
