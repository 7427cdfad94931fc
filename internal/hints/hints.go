// Package hints builds the short suggestions appended to CLI error messages.
// Every non-empty hint reads "\n  hint: <text>".
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-tccexport/internal/fileutil"
)

const prefix = "\n  hint: "

// IsInContainer reports whether the process runs under Docker, which
// creates /.dockerenv in every container. Tests swap it out.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForServerListen explains a failed listen. A loopback address inside a
// container is unreachable from the host.
func ForServerListen(addr string) string {
	var container, port string
	if IsInContainer() && isLoopback(addr) {
		container = "bind to :PORT inside containers"
	}
	if os.Getenv("TCCEXPORT_ADDR") == "" {
		port = "set TCCEXPORT_ADDR or --addr to use another port"
	}
	return join(container, port)
}

func isLoopback(addr string) bool {
	host, _, _ := strings.Cut(addr, ":")
	return host == "127.0.0.1" || host == "localhost"
}

// ForConfigNotFound points at --config, and at the per-user config file
// when it is among the searched paths.
func ForConfigNotFound(searched []string) string {
	userDir := filepath.Join(".config", "go-tccexport")
	for _, p := range searched {
		if strings.Contains(p, userDir) {
			return join("use --config /path/to/file.yaml or create " + p)
		}
	}
	return join("use --config /path/to/file.yaml")
}

func ForOutputDirectory() string {
	return join("check parent directory exists and is writable")
}

// ForProfileNotFound lists the profiles that do exist.
func ForProfileNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return join("available: " + strings.Join(available, ", "))
}

// ForStore explains a project store that cannot be opened: either no path
// is configured or its directory is missing.
func ForStore(path string) string {
	switch {
	case path == "":
		return join("set --db or store.path in the config file")
	case !fileutil.DirExists(filepath.Dir(path)):
		return join("create " + filepath.Dir(path) + " first")
	}
	return ""
}

func ForImportSource() string {
	return join("supported extensions: .html, .htm, .md, .markdown; or pass --type")
}

func ForUnknownFormat(formats []string) string {
	return join("supported formats: " + strings.Join(formats, ", "))
}

// join renders the non-empty parts as a single hint line.
func join(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return prefix + strings.Join(kept, "; ")
}
