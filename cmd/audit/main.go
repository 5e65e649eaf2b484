package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/apiforge/commandgen/internal/audit"
)

var (
	flagDir     string
	flagVerbose bool
	flagHelp    bool
)

const cmdPath = "github.com/apiforge/commandgen/cmd/audit"

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: go run %s [options] [corpus-dir]\n\n", cmdPath)
		fmt.Fprintf(os.Stderr, "Re-validates a persisted command corpus.\n\n")
		fmt.Fprintf(os.Stderr, "Walks every <service>/*.json document, re-runs the structural\n")
		fmt.Fprintf(os.Stderr, "consistency checks and aggregates findings across the corpus.\n")
		fmt.Fprintf(os.Stderr, "Exits 0 when no errors were found, 1 otherwise.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}

func main() {
	flag.BoolVar(&flagHelp, "help", false, "Show this help and exit.")
	flag.StringVar(&flagDir, "dir", "build/commands", "Corpus directory to audit.")
	flag.BoolVar(&flagVerbose, "verbose", false, "Print every finding, not just the counts.")

	flag.Parse()

	if flagHelp {
		flag.Usage()
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	dir := flagDir
	if flag.NArg() > 0 {
		dir = flag.Arg(0)
	}

	report, err := audit.AuditCorpus(dir)
	if err != nil {
		slog.Error("audit failed", "error", err)
		os.Exit(1)
	}

	if flagVerbose {
		for _, e := range report.Errors {
			slog.Error("corpus error", "finding", e)
		}
		for _, w := range report.Warnings {
			slog.Warn("corpus warning", "finding", w)
		}
	}

	slog.Info("audit finished",
		"dir", dir,
		"files", report.Files,
		"commands", report.Commands,
		"errors", len(report.Errors),
		"warnings", len(report.Warnings))

	if !report.Valid() {
		os.Exit(1)
	}
}
