package main

// Notes:
// - run: we test dispatch, exit codes, help and version output, and the
//   unknown environment variable warning. Commands themselves are covered
//   in their own test files.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRun_Dispatch - Command dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRun_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no args", nil, ExitUsage, "", "Usage: tccexport"},
		{"unknown command", []string{"convert"}, ExitUsage, "", "Unknown command: convert"},
		{"version", []string{"version"}, ExitSuccess, "tccexport dev", ""},
		{"version flag", []string{"--version"}, ExitSuccess, "tccexport dev", ""},
		{"help", []string{"help"}, ExitSuccess, "Commands:", ""},
		{"help export", []string{"help", "export"}, ExitSuccess, "--workers", ""},
		{"help import", []string{"help", "import"}, ExitSuccess, "--from", ""},
		{"help project", []string{"help", "project"}, ExitSuccess, "Subcommands:", ""},
		{"help serve", []string{"help", "serve"}, ExitSuccess, "/api/export/{format}", ""},
		{"help doctor", []string{"help", "doctor"}, ExitSuccess, "--json", ""},
		{"help unknown", []string{"help", "nope"}, ExitSuccess, "", "Unknown command: nope"},
		{"command help flag", []string{"export", "--help"}, ExitSuccess, "Usage: tccexport export", ""},
		{"bad flag", []string{"export", "--bogus"}, ExitUsage, "", "invalid usage"},
		{"serve extra args", []string{"serve", "x"}, ExitUsage, "", "serve takes no arguments"},
		{"project without subcommand", []string{"project"}, ExitUsage, "", "missing project subcommand"},
		{"project unknown subcommand", []string{"project", "rename"}, ExitUsage, "", "unknown project subcommand"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			code := run(context.Background(), tt.args, env)

			if code != tt.wantCode {
				t.Errorf("run() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRun_UnknownEnvVar - Typo warnings
// ---------------------------------------------------------------------------

func TestRun_UnknownEnvVar(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv(map[string]string{
		"TCCEXPORT_PROFIL": "abnt",
		"TCCEXPORT_DB":     "x.db",
	})
	if code := run(context.Background(), []string{"version"}, env); code != ExitSuccess {
		t.Fatalf("run() = %d", code)
	}

	if !strings.Contains(stderr.String(), "TCCEXPORT_PROFIL") {
		t.Errorf("stderr = %q, want a warning for TCCEXPORT_PROFIL", stderr)
	}
	if strings.Contains(stderr.String(), "TCCEXPORT_DB") {
		t.Errorf("stderr = %q, known variable reported", stderr)
	}
}

// ---------------------------------------------------------------------------
// TestRun_Profiles - Profile listing
// ---------------------------------------------------------------------------

func TestRun_Profiles(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv(nil)
	if code := run(context.Background(), []string{"profiles"}, env); code != ExitSuccess {
		t.Fatalf("run() = %d, stderr: %s", code, stderr)
	}

	out := stdout.String()
	if !strings.HasPrefix(out, "NAME") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, "default") {
		t.Errorf("default profile not listed: %q", out)
	}
}

func TestRun_ProfilesBadAssetPath(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv(nil)
	code := run(context.Background(), []string{"profiles", "--asset-path", "/does/not/exist"}, env)
	if code != ExitUsage {
		t.Errorf("run() = %d, want %d", code, ExitUsage)
	}
}
