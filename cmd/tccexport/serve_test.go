package main

// Notes:
// - runServe: we test startup with a project store and shutdown on
//   cancellation, plus the listen failure path and config validation.
// These are acceptable gaps: HTTP routes are covered by the server package tests.

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-tccexport/internal/config"
)

// ---------------------------------------------------------------------------
// TestRunServe - Server lifecycle
// ---------------------------------------------------------------------------

func TestRunServe_StopsOnCancel(t *testing.T) {
	t.Parallel()

	db := filepath.Join(t.TempDir(), "tcc.db")
	env, stdout, stderr := testEnv(map[string]string{"TCCEXPORT_DB": db})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServe(ctx, []string{"--addr", "127.0.0.1:0", "--log-level", "error"}, env) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runServe() = %v (stderr: %s)", err, stderr)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	if !strings.Contains(stdout.String(), "Listening on 127.0.0.1:0") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRunServe_AddressInUse(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	env, _, _ := testEnv(nil)
	err = runServe(context.Background(), []string{"--addr", ln.Addr().String(), "-q"}, env)
	if err == nil {
		t.Fatal("runServe() on a busy port returned nil")
	}
	if !strings.Contains(err.Error(), "--addr") {
		t.Errorf("error = %v, want a hint about --addr", err)
	}
}

func TestRunServe_InvalidBodyLimit(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv(nil)
	err := runServe(context.Background(), []string{"--max-body=-5"}, env)
	if !errors.Is(err, config.ErrInvalidValue) {
		t.Errorf("error = %v, want ErrInvalidValue", err)
	}
}
