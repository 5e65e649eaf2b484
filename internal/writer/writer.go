package writer

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/apiforge/commandgen/internal/files"
	"github.com/apiforge/commandgen/internal/types"
	"github.com/apiforge/commandgen/pkg/command"
	"gopkg.in/yaml.v3"
)

const (
	// ManifestFileName is written once per generation run at the output root.
	ManifestFileName = "manifest.yaml"

	indexFileName = "README.md"
)

// CommandDocument is the persisted form of one command: the schema plus
// derived presentation fields. The core stays the sole authority over
// the schema fields; only the writer constructs the derived ones.
type CommandDocument struct {
	command.Schema

	GeneratedAt    string `json:"generatedAt"`
	ParameterCount int    `json:"parameterCount"`
	Summary        string `json:"summary"`
}

// NewCommandDocument derives the persisted document from a schema.
func NewCommandDocument(schema *command.Schema, now time.Time) *CommandDocument {
	return &CommandDocument{
		Schema:         *schema,
		GeneratedAt:    now.UTC().Format(time.RFC3339),
		ParameterCount: len(schema.RequiredParameters) + len(schema.OptionalParameters),
		Summary: fmt.Sprintf("%s: %d required, %d optional",
			schema.Operation, len(schema.RequiredParameters), len(schema.OptionalParameters)),
	}
}

// CommandFileName returns the output file name for a command.
func CommandFileName(commandName string) string {
	return types.ToSnakeCase(commandName) + ".json"
}

// WriteCommand persists one command document under outDir/<service>/.
func WriteCommand(outDir, service, commandName string, doc *CommandDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding command %s: %w", commandName, err)
	}
	data = append(data, '\n')

	path := filepath.Join(outDir, service, CommandFileName(commandName))
	return files.SaveFile(path, data)
}

// Manifest summarizes one generation run.
type Manifest struct {
	RunID              string `yaml:"runId"`
	GeneratedAt        string `yaml:"generatedAt"`
	Services           int    `yaml:"services"`
	Commands           int    `yaml:"commands"`
	FailedOperations   int    `yaml:"failedOperations"`
	SkippedMembers     int    `yaml:"skippedMembers"`
	ValidationErrors   int    `yaml:"validationErrors"`
	ValidationWarnings int    `yaml:"validationWarnings"`
}

// WriteManifest persists the run manifest at the output root.
func WriteManifest(outDir string, manifest *Manifest) error {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return files.SaveFile(filepath.Join(outDir, ManifestFileName), data)
}
