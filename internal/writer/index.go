package writer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/apiforge/commandgen/internal/files"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCase creates a fresh caser per call: a cases.Caser carries
// transformer state and is not safe for concurrent use.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// ServiceSummary is one row in the top-level corpus index.
type ServiceSummary struct {
	Name     string
	Version  string
	Commands int
	Failed   int
}

// WriteServiceIndex writes the per-service README listing every
// generated command. Documents are listed in the order given.
func WriteServiceIndex(outDir, service string, docs map[string]*CommandDocument, order []string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", titleCase(service))
	fmt.Fprintf(&b, "Generated command schemas: %d\n\n", len(order))
	b.WriteString("| Command | Parameters | Required | Summary |\n")
	b.WriteString("|---------|------------|----------|---------|\n")

	for _, name := range order {
		doc, ok := docs[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "| [%s](%s) | %d | %d | %s |\n",
			name, CommandFileName(name), doc.ParameterCount, len(doc.RequiredParameters), doc.Summary)
	}

	return files.SaveFile(filepath.Join(outDir, service, indexFileName), []byte(b.String()))
}

// WriteCorpusIndex writes the top-level README listing every service.
// Summaries are listed in the order given, one row per service.
func WriteCorpusIndex(outDir string, summaries []ServiceSummary) error {
	var b strings.Builder

	b.WriteString("# Command Schemas\n\n")
	b.WriteString("Flat, validated parameter models generated from vendor API descriptions.\n\n")
	b.WriteString("| Service | Version | Commands | Failed operations |\n")
	b.WriteString("|---------|---------|----------|-------------------|\n")

	for _, s := range summaries {
		fmt.Fprintf(&b, "| [%s](%s/%s) | %s | %d | %d |\n",
			titleCase(s.Name), s.Name, indexFileName, s.Version, s.Commands, s.Failed)
	}

	return files.SaveFile(filepath.Join(outDir, indexFileName), []byte(b.String()))
}
