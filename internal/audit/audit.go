// Package audit re-validates a persisted command corpus.
//
// It is the offline counterpart of the validator run during generation:
// the same structural checks, applied to reloaded documents, aggregated
// across the whole corpus.
package audit

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/apiforge/commandgen/internal/writer"
	"github.com/apiforge/commandgen/pkg/command"
)

// CorpusReport aggregates findings across one persisted corpus.
type CorpusReport struct {
	Files    int
	Commands int
	Errors   []string
	Warnings []string
}

// Valid reports whether the corpus passed without errors.
func (r *CorpusReport) Valid() bool {
	return len(r.Errors) == 0
}

// AuditCorpus walks dir, reloads every command document and re-runs the
// consistency validator. A malformed file is an audit error for that
// file; the walk always continues. Findings are prefixed with the file's
// path relative to dir.
func AuditCorpus(dir string) (*CorpusReport, error) {
	report := &CorpusReport{}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		report.Files++

		data, err := os.ReadFile(path)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", rel, err))
			return nil
		}

		var doc writer.CommandDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: malformed document: %v", rel, err))
			return nil
		}

		report.Commands++
		res := command.Validate(&doc.Schema)
		for _, e := range res.Errors {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", rel, e))
		}
		for _, w := range res.Warnings {
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: %s", rel, w))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking corpus %s: %w", dir, err)
	}

	return report, nil
}
