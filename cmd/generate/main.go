package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/apiforge/commandgen/internal/config"
	"github.com/apiforge/commandgen/internal/generator"
	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	flagInput    string
	flagOutput   string
	flagWorkers  int
	flagServices string
	flagSuffix   string
	flagLogFile  string
	flagWatch    bool
	flagHelp     bool
)

const cmdPath = "github.com/apiforge/commandgen/cmd/generate"

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: go run %s [options]\n\n", cmdPath)
		fmt.Fprintf(os.Stderr, "Generates flat command schemas from vendor API descriptions.\n\n")
		fmt.Fprintf(os.Stderr, "The command:\n")
		fmt.Fprintf(os.Stderr, "  - Discovers <service>/<version>/api.json trees under the input directory\n")
		fmt.Fprintf(os.Stderr, "  - Picks the newest version folder per service\n")
		fmt.Fprintf(os.Stderr, "  - Writes one JSON document per operation, plus per-service and corpus indexes\n")
		fmt.Fprintf(os.Stderr, "  - Validates every schema and fails the run on structural errors\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Generate from ./apis into ./build/commands\n")
		fmt.Fprintf(os.Stderr, "  go run %s\n\n", cmdPath)
		fmt.Fprintf(os.Stderr, "  # Generate two services only, regenerating on changes\n")
		fmt.Fprintf(os.Stderr, "  go run %s -services storage,compute -watch\n", cmdPath)
	}
}

func main() {
	flag.BoolVar(&flagHelp, "help", false, "Show this help and exit.")
	flag.StringVar(&flagInput, "input", "", "Input directory with API descriptions. Overrides config.")
	flag.StringVar(&flagOutput, "output", "", "Output directory for command documents. Overrides config.")
	flag.IntVar(&flagWorkers, "workers", 0, "Number of services processed concurrently. Overrides config.")
	flag.StringVar(&flagServices, "services", "", "Comma-separated service filter. Overrides config.")
	flag.StringVar(&flagSuffix, "suffix", "", "Command name suffix. Overrides config.")
	flag.StringVar(&flagLogFile, "log-file", "", "Log to this file (rotated) instead of stdout.")
	flag.BoolVar(&flagWatch, "watch", false, "Keep running and regenerate when the input directory changes.")

	flag.Parse()

	if flagHelp {
		flag.Usage()
		os.Exit(0)
	}

	setupLogger()

	baseDir := os.Getenv("APP_DIR")
	if baseDir == "" {
		baseDir, _ = os.Getwd()
	}
	_ = godotenv.Load(fmt.Sprintf("%s/.env", baseDir))

	cfg := config.MustConfig(baseDir)
	applyFlags(cfg)

	gen := generator.New(cfg)
	report, err := gen.Run()
	if err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}

	if flagWatch {
		w, err := newInputWatcher(cfg, gen)
		if err != nil {
			slog.Error("failed to start watcher", "error", err)
			os.Exit(1)
		}

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigChan
			slog.Info("shutting down watcher")
			w.stop()
		}()

		w.run()
		return
	}

	if report.HasErrors() {
		os.Exit(1)
	}
}

func setupLogger() {
	var out io.Writer = os.Stdout
	if flagLogFile != "" {
		out = &lumberjack.Logger{
			Filename:   flagLogFile,
			MaxSize:    20, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}
	logger := slog.New(slog.NewJSONHandler(out, nil))
	slog.SetDefault(logger)
}

func applyFlags(cfg *config.Config) {
	gen := cfg.GetGenerator()
	if flagInput != "" {
		gen.InputDir = flagInput
	}
	if flagOutput != "" {
		gen.OutputDir = flagOutput
	}
	if flagWorkers > 0 {
		gen.Workers = flagWorkers
	}
	if flagSuffix != "" {
		gen.CommandSuffix = flagSuffix
	}
	if flagServices != "" {
		var services []string
		for _, s := range strings.Split(flagServices, ",") {
			if s = strings.TrimSpace(s); s != "" {
				services = append(services, s)
			}
		}
		cfg.Services = services
	}
}
