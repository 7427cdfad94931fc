package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	tccexport "github.com/alnah/go-tccexport"
	"github.com/alnah/go-tccexport/internal/config"
	"github.com/alnah/go-tccexport/internal/fileutil"
	"github.com/alnah/go-tccexport/internal/hints"
	"github.com/alnah/go-tccexport/internal/store"
	flag "github.com/spf13/pflag"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Profiles profilesInfo `json:"profiles"`
	Export   exportInfo   `json:"export"`
	Store    storeInfo    `json:"store"`
	Env      envInfo      `json:"environment"`
	System   systemInfo   `json:"system"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// profilesInfo holds profile discovery results.
type profilesInfo struct {
	AssetPath string   `json:"asset_path,omitempty"`
	Available []string `json:"available"`
	Invalid   []string `json:"invalid,omitempty"`
}

// exportInfo holds the smoke export results, one entry per format.
type exportInfo struct {
	Formats map[string]bool `json:"formats"`
}

// storeInfo holds project store results.
type storeInfo struct {
	Configured bool   `json:"configured"`
	Path       string `json:"path,omitempty"`
	Projects   int    `json:"projects"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable   bool   `json:"temp_writable"`
	OutputDir      string `json:"output_dir,omitempty"`
	OutputWritable bool   `json:"output_writable,omitempty"`
}

// doctorSample is exported in every format during the smoke check.
var doctorSample = tccexport.Manuscript{
	Title:      "Diagnóstico",
	CourseName: "tccexport",
	Chapters: []tccexport.Chapter{
		{ID: "1", Title: "Introdução", ContentMarkup: "<p>Texto de <b>teste</b>.</p><ol><li>um</li></ol>", Order: 1},
	},
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	var (
		common     commonFlags
		jsonOutput bool
	)
	fs := newFlagSet("doctor")
	fs.BoolVar(&jsonOutput, "json", false, "print the report as JSON")
	addCommonFlags(fs, &common)
	if err := parse(fs, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			runHelp([]string{"doctor"}, env)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	result := runDoctor(context.Background(), &common, env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, flags *commonFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
		Profiles: profilesInfo{Available: []string{}},
		Export:   exportInfo{Formats: make(map[string]bool, len(tccexport.Formats))},
	}

	cfg, _, err := loadConfig(flags, env)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		cfg = config.DefaultConfig()
	}

	checkProfiles(result, cfg)
	checkExport(ctx, result, cfg, env)
	checkStore(ctx, result, cfg)
	checkEnvironment(result, env)
	checkSystem(result, cfg)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkProfiles loads every available profile.
func checkProfiles(result *doctorResult, cfg *config.Config) {
	result.Profiles.AssetPath = cfg.Assets.BasePath

	loader, err := tccexport.NewProfileLoader(cfg.Assets.BasePath)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Profiles: %v", err))
		return
	}
	names, err := loader.ListProfiles()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Profiles: %v", err))
		return
	}
	for _, name := range names {
		if _, err := loader.LoadProfile(name); err != nil {
			result.Profiles.Invalid = append(result.Profiles.Invalid, name)
			result.Warnings = append(result.Warnings, fmt.Sprintf("Profile %q is invalid: %v", name, err))
			continue
		}
		result.Profiles.Available = append(result.Profiles.Available, name)
	}
}

// checkExport runs a small manuscript through every format with the
// configured profile. PDFs are re-read and their page count checked.
func checkExport(ctx context.Context, result *doctorResult, cfg *config.Config, env *Environment) {
	factory, err := newExporterFactory(cfg, newLogger(cfg, env), env, true)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Export: %v", err))
		return
	}
	exporter, err := factory.configured()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Export: %v", err))
		return
	}
	for _, f := range tccexport.Formats {
		_, err := exporter.Export(ctx, f, doctorSample)
		result.Export.Formats[string(f)] = err == nil
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Export %s: %v", f, err))
		}
	}
}

// checkStore opens the project store when one is configured. A missing
// parent directory is only a warning since export creates it.
func checkStore(ctx context.Context, result *doctorResult, cfg *config.Config) {
	path := storePath("", cfg)
	if path == "" {
		return
	}
	result.Store.Configured = true
	result.Store.Path = path

	if !fileutil.DirExists(filepath.Dir(path)) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Store directory missing: %s%s", filepath.Dir(path), hints.ForStore(path)))
		return
	}
	s, err := store.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Store: %v", err))
		return
	}
	defer s.Close()

	projects, err := s.List(ctx)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Store: %v", err))
		return
	}
	result.Store.Projects = len(projects)
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, env *Environment) {
	result.Env.Container, result.Env.ContainerHint = isContainer(env.Getenv)

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if env.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Env.Container && env.Getenv("TCCEXPORT_ADDR") == "" {
		result.Warnings = append(result.Warnings,
			"Container detected but TCCEXPORT_ADDR not set. serve binds to :8080")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(getenv func(string) string) (bool, string) {
	if getenv("TCCEXPORT_CONTAINER") == "1" {
		return true, "TCCEXPORT_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp and output directories are writable.
func checkSystem(result *doctorResult, cfg *config.Config) {
	tmpDir := os.TempDir()
	if writable(tmpDir) {
		result.System.TempWritable = true
	} else {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	}

	dir := cfg.Output.DefaultDir
	if dir == "" {
		return
	}
	result.System.OutputDir = dir
	switch {
	case !fileutil.DirExists(dir):
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Output directory does not exist yet: %s", dir))
	case writable(dir):
		result.System.OutputWritable = true
	default:
		result.Errors = append(result.Errors,
			fmt.Sprintf("Output directory not writable: %s%s", dir, hints.ForOutputDirectory()))
	}
}

func writable(dir string) bool {
	f, err := os.CreateTemp(dir, "tccexport-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "tccexport doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Profiles")
	if r.Profiles.AssetPath != "" {
		fmt.Fprintf(w, "  [OK] Asset path: %s\n", r.Profiles.AssetPath)
	}
	for _, name := range r.Profiles.Available {
		fmt.Fprintf(w, "  [OK] %s\n", name)
	}
	for _, name := range r.Profiles.Invalid {
		fmt.Fprintf(w, "  [WARN] %s: invalid\n", name)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Export")
	for _, f := range tccexport.Formats {
		if r.Export.Formats[string(f)] {
			fmt.Fprintf(w, "  [OK] %s\n", f)
		} else {
			fmt.Fprintf(w, "  [ERROR] %s\n", f)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Store")
	if r.Store.Configured {
		fmt.Fprintf(w, "  [OK] Path: %s (%d projects)\n", r.Store.Path, r.Store.Projects)
	} else {
		fmt.Fprintln(w, "  [OK] Not configured")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	if r.System.OutputWritable {
		fmt.Fprintf(w, "  [OK] Output directory: %s\n", r.System.OutputDir)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to export")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
