package internal

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academic-hub/config"
)

func TestNewHTTPServer_Addr(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.APP
		want string
	}{
		{name: "ipv4", cfg: config.APP{Host: "127.0.0.1", Port: "8080"}, want: "127.0.0.1:8080"},
		{name: "ipv6", cfg: config.APP{Host: "::1", Port: "8080"}, want: "[::1]:8080"},
		{name: "all interfaces", cfg: config.APP{Host: "", Port: "8080"}, want: ":8080"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newHTTPServer(tt.cfg, http.NotFoundHandler()).Addr)
		})
	}
}

func TestServeUntilDone_ShutdownWithOpenStream(t *testing.T) {
	entered := make(chan struct{})
	left := make(chan struct{})
	// behaves like an event stream: returns only when the request context ends
	srv := newHTTPServer(config.APP{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		close(entered)
		<-r.Context().Done()
		close(left)
	}))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	served := make(chan error, 1)
	go func() { served <- serveUntilDone(ctx, srv, func() error { return srv.Serve(ln) }) }()

	go func() {
		resp, err := http.Get("http://" + ln.Addr().String())
		if err == nil {
			_ = resp.Body.Close()
		}
	}()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("stream never opened")
	}

	cancel()
	select {
	case <-left:
	case <-time.After(2 * time.Second):
		t.Fatal("stream handler still running after the app context ended")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()
	require.NoError(t, srv.Shutdown(shutdownCtx))
	require.NoError(t, <-served)
}
