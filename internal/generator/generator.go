package generator

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/apiforge/commandgen/internal/config"
	"github.com/apiforge/commandgen/internal/loader"
	"github.com/apiforge/commandgen/internal/writer"
	"github.com/apiforge/commandgen/pkg/command"
	"github.com/google/uuid"
)

// Generator runs one batch extraction over all discovered services.
type Generator struct {
	cfg *config.Config
	now func() time.Time
}

// New creates a generator for the given config.
func New(cfg *config.Config) *Generator {
	return &Generator{
		cfg: cfg,
		now: time.Now,
	}
}

// Run discovers services, extracts and validates every operation, and
// writes the command corpus. One operation's failure never halts the
// batch; failures are counted in the report instead.
func (g *Generator) Run() (*Report, error) {
	gen := g.cfg.GetGenerator()
	started := g.now()

	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: started,
	}

	dirs, err := loader.Discover(gen.InputDir)
	if err != nil {
		return nil, err
	}

	var enabled []loader.ServiceDir
	for _, dir := range dirs {
		if g.cfg.ServiceEnabled(dir.Name) {
			enabled = append(enabled, dir)
		}
	}

	slog.Info("starting generation",
		"runId", report.RunID, "services", len(enabled), "workers", gen.Workers)

	semaphore := make(chan struct{}, gen.Workers)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, dir := range enabled {
		semaphore <- struct{}{} // Acquire
		wg.Add(1)
		go func(dir loader.ServiceDir) {
			defer wg.Done()
			defer func() { <-semaphore }() // Release

			result := g.generateService(dir)

			mu.Lock()
			report.Services = append(report.Services, result)
			mu.Unlock()
		}(dir)
	}

	wg.Wait()

	sort.Slice(report.Services, func(i, j int) bool {
		return report.Services[i].Service < report.Services[j].Service
	})
	report.Duration = g.now().Sub(started)

	if err := g.writeCorpusFiles(report); err != nil {
		return nil, err
	}

	slog.Info("generation finished",
		"runId", report.RunID,
		"services", len(report.Services),
		"commands", report.Commands(),
		"failedOperations", report.FailedOperations(),
		"duration", report.Duration.String())

	return report, nil
}

// generateService extracts every operation of one service. Load and
// extraction failures are recorded on the result, never returned: the
// batch continues regardless.
func (g *Generator) generateService(dir loader.ServiceDir) *ServiceResult {
	gen := g.cfg.GetGenerator()
	result := &ServiceResult{Service: dir.Name, Version: dir.Version}

	svc, err := loader.LoadService(dir)
	if err != nil {
		slog.Error("failed to load service", "service", dir.Name, "error", err)
		result.LoadError = err
		return result
	}

	store := svc.Store()
	docs := make(map[string]*writer.CommandDocument)
	var order []string

	for _, opName := range svc.OperationNames() {
		schema, diagnostics, err := command.Extract(dir.Name, opName, svc.Operations[opName], store)
		if err != nil {
			slog.Error("operation extraction failed",
				"service", dir.Name, "operation", opName, "error", err)
			result.Failed++
			continue
		}

		for _, d := range diagnostics {
			slog.Warn("member skipped",
				"service", dir.Name, "operation", opName,
				"member", d.Member, "shape", d.Shape, "error", d.Err)
		}
		result.SkippedMembers += len(diagnostics)

		// Self-check right after extraction, before anything is persisted.
		res := command.Validate(schema)
		result.ValidationWarnings += len(res.Warnings)
		for _, w := range res.Warnings {
			slog.Warn("schema warning", "service", dir.Name, "operation", opName, "warning", w)
		}
		if !res.Valid() {
			for _, e := range res.Errors {
				slog.Error("schema invalid", "service", dir.Name, "operation", opName, "error", e)
			}
			result.ValidationErrors += len(res.Errors)
			result.Failed++
			continue
		}

		commandName := opName + gen.CommandSuffix
		doc := writer.NewCommandDocument(schema, g.now())
		if err := writer.WriteCommand(gen.OutputDir, dir.Name, commandName, doc); err != nil {
			slog.Error("failed to write command",
				"service", dir.Name, "command", commandName, "error", err)
			result.Failed++
			continue
		}

		docs[commandName] = doc
		order = append(order, commandName)
		result.Commands++
	}

	if err := writer.WriteServiceIndex(gen.OutputDir, dir.Name, docs, order); err != nil {
		slog.Error("failed to write service index", "service", dir.Name, "error", err)
	}

	slog.Info("service done",
		"service", dir.Name, "version", dir.Version,
		"commands", result.Commands, "failed", result.Failed)

	return result
}

func (g *Generator) writeCorpusFiles(report *Report) error {
	gen := g.cfg.GetGenerator()

	summaries := make([]writer.ServiceSummary, 0, len(report.Services))
	for _, s := range report.Services {
		// A service that never loaded has no README of its own,
		// so an index row would link nowhere.
		if s.LoadError != nil {
			continue
		}
		summaries = append(summaries, writer.ServiceSummary{
			Name:     s.Service,
			Version:  s.Version,
			Commands: s.Commands,
			Failed:   s.Failed,
		})
	}
	if err := writer.WriteCorpusIndex(gen.OutputDir, summaries); err != nil {
		return err
	}

	return writer.WriteManifest(gen.OutputDir, &writer.Manifest{
		RunID:              report.RunID,
		GeneratedAt:        report.StartedAt.UTC().Format(time.RFC3339),
		Services:           len(report.Services),
		Commands:           report.Commands(),
		FailedOperations:   report.FailedOperations(),
		SkippedMembers:     report.SkippedMembers(),
		ValidationErrors:   report.ValidationErrors(),
		ValidationWarnings: report.ValidationWarnings(),
	})
}
