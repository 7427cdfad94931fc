package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	profile   string
	assetPath string
	logLevel  string
	logFormat string
	quiet     bool
	verbose   bool
}

// exportFlags holds all flags for the export command.
type exportFlags struct {
	common  commonFlags
	output  string
	formats []string
	workers int
	suffix  string
	verify  bool
	project string
	db      string
}

// importFlags holds all flags for the import command.
type importFlags struct {
	common     commonFlags
	mode       string
	from       string
	chapter    string
	title      string
	sourceType string
	output     string
}

// projectFlags holds flags for the project subcommands.
type projectFlags struct {
	common commonFlags
	db     string
	id     string
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common  commonFlags
	addr    string
	db      string
	maxBody int64
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.profile, "profile", "p", "", "formatting profile name or YAML file")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom profiles/")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// newFlagSet creates a FlagSet that reports errors through the caller
// instead of printing them.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// parse runs fs.Parse, wrapping failures as usage errors. flag.ErrHelp is
// returned as is so callers can print help.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// buildExportFlagSet registers the export flags on a new FlagSet.
func buildExportFlagSet(f *exportFlags) *flag.FlagSet {
	fs := newFlagSet("export")
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringSliceVarP(&f.formats, "format", "f", nil, "formats: docx, pdf, md, all (repeatable)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.suffix, "suffix", "", "filename suffix (default \"_TCC\")")
	fs.BoolVar(&f.verify, "verify", false, "re-read PDFs and check the page count")
	fs.StringVar(&f.project, "project", "", "export a stored project by ID")
	fs.StringVar(&f.db, "db", "", "project store path")
	addCommonFlags(fs, &f.common)
	return fs
}

// parseExportFlags parses export command flags and returns positional args.
func parseExportFlags(args []string) (*exportFlags, []string, error) {
	f := &exportFlags{}
	fs := buildExportFlagSet(f)
	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseImportFlags parses import command flags and returns positional args.
func parseImportFlags(args []string) (*importFlags, []string, error) {
	f := &importFlags{}
	fs := newFlagSet("import")
	fs.StringVarP(&f.mode, "mode", "m", "append", "import mode: append, replace, new")
	fs.StringVar(&f.from, "from", "", "HTML or Markdown file to import")
	fs.StringVar(&f.chapter, "chapter", "", "target chapter ID (append, replace)")
	fs.StringVar(&f.title, "title", "", "title of the new chapter (new)")
	fs.StringVar(&f.sourceType, "type", "", "source type: html, markdown (default: from extension)")
	fs.StringVarP(&f.output, "output", "o", "", "write the manuscript here instead of in place")
	addCommonFlags(fs, &f.common)
	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseProjectFlags parses project subcommand flags and returns positional args.
func parseProjectFlags(name string, args []string) (*projectFlags, []string, error) {
	f := &projectFlags{}
	fs := newFlagSet("project " + name)
	fs.StringVar(&f.db, "db", "", "project store path")
	fs.StringVar(&f.id, "id", "", "project ID (save: update this project)")
	addCommonFlags(fs, &f.common)
	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string) (*serveFlags, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve")
	fs.StringVar(&f.addr, "addr", "", "listen address (default \":8080\")")
	fs.StringVar(&f.db, "db", "", "project store path (enables project routes)")
	fs.Int64Var(&f.maxBody, "max-body", 0, "request body limit in bytes")
	addCommonFlags(fs, &f.common)
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: serve takes no arguments", ErrUsage)
	}
	return f, nil
}

// parseProfilesFlags parses profiles command flags.
func parseProfilesFlags(args []string) (*commonFlags, error) {
	f := &commonFlags{}
	fs := newFlagSet("profiles")
	addCommonFlags(fs, f)
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: profiles takes no arguments", ErrUsage)
	}
	return f, nil
}
