package server

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/r3p1n/scoring/internal/config"
	"github.com/r3p1n/scoring/internal/logging"
	"github.com/r3p1n/scoring/internal/testutil"
)

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	t.Cleanup(ts.Close)
	return ts
}

func newScoringServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.GinMode = "test"
	srv := New(testutil.OpenDB(t), cfg, logging.Discard())
	return newTestServer(t, srv.Handler())
}
