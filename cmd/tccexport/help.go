package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tccexport <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  export     Export manuscripts to DOCX, PDF or Markdown")
	fmt.Fprintln(w, "  import     Import an HTML or Markdown file into a manuscript")
	fmt.Fprintln(w, "  project    Save, list, show and delete stored projects")
	fmt.Fprintln(w, "  serve      Run the HTTP export server")
	fmt.Fprintln(w, "  profiles   List formatting profiles")
	fmt.Fprintln(w, "  doctor     Check profiles, rendering and storage")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'tccexport help <command>' for details on a specific command.")
}

// printCommonFlags prints the flags shared by every command.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -p, --profile <s>         Formatting profile name or YAML file")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with custom profiles/")
	fmt.Fprintln(w, "      --log-level <s>       Log level: debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>      Log format: text, json")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tccexport export <input>... [flags]")
	fmt.Fprintln(w, "       tccexport export --project <id> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export manuscripts (.yaml, .yml, .json) to documents. Directories are")
	fmt.Fprintln(w, "scanned for manuscripts, without recursion.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: next to the input)")
	fmt.Fprintln(w, "  -f, --format <s>          Formats: docx, pdf, md, all (repeatable)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --suffix <s>          Filename suffix (default \"_TCC\")")
	fmt.Fprintln(w, "      --verify              Re-read PDFs and check the page count")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Projects:")
	fmt.Fprintln(w, "      --project <id>        Export a stored project")
	fmt.Fprintln(w, "      --db <path>           Project store path")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

func printImportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tccexport import <manuscript> --from <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Import an HTML or Markdown file into a chapter of the manuscript.")
	fmt.Fprintln(w, "The manuscript is rewritten in place unless --output is given.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Import:")
	fmt.Fprintln(w, "      --from <file>         HTML or Markdown file to import")
	fmt.Fprintln(w, "      --type <s>            Source type: html, markdown (default: from extension)")
	fmt.Fprintln(w, "  -m, --mode <s>            Mode: append, replace, new (default \"append\")")
	fmt.Fprintln(w, "      --chapter <id>        Target chapter (append, replace)")
	fmt.Fprintln(w, "      --title <s>           Title of the new chapter (new)")
	fmt.Fprintln(w, "  -o, --output <path>       Write the manuscript here")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

func printProjectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tccexport project <subcommand> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Subcommands:")
	fmt.Fprintln(w, "  save <manuscript>         Store a manuscript, printing its project ID")
	fmt.Fprintln(w, "  list                      List stored projects, most recent first")
	fmt.Fprintln(w, "  show <id>                 Show a project and its chapters")
	fmt.Fprintln(w, "  delete <id>               Delete a project")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --db <path>           Project store path")
	fmt.Fprintln(w, "      --id <id>             Project ID (save: update this project)")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tccexport serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the HTTP export server until interrupted.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Routes:")
	fmt.Fprintln(w, "  GET  /health")
	fmt.Fprintln(w, "  GET  /api/profiles")
	fmt.Fprintln(w, "  POST /api/export/{format}")
	fmt.Fprintln(w, "  GET  /api/projects/{id}/export/{format}   (with --db)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --addr <addr>         Listen address (default \":8080\")")
	fmt.Fprintln(w, "      --db <path>           Project store path")
	fmt.Fprintln(w, "      --max-body <n>        Request body limit in bytes")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "export":
		printExportUsage(env.Stdout)
	case "import":
		printImportUsage(env.Stdout)
	case "project":
		printProjectUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "profiles":
		fmt.Fprintln(env.Stdout, "Usage: tccexport profiles [flags]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List built-in and custom formatting profiles.")
		fmt.Fprintln(env.Stdout)
		printCommonFlags(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: tccexport doctor [--json] [flags]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check profiles, a sample export in every format, the project store")
		fmt.Fprintln(env.Stdout, "and the output directories.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: tccexport version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: tccexport help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
