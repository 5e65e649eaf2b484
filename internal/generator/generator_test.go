package generator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/apiforge/commandgen/internal/audit"
	"github.com/apiforge/commandgen/internal/config"
	"github.com/apiforge/commandgen/internal/writer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storageAPI = `{
	"metadata": {"serviceId": "storage", "apiVersion": "2024-05-01"},
	"operations": {
		"PutObject": {
			"input": {"shape": "PutObjectRequest"},
			"documentation": "Stores an object."
		},
		"ListBuckets": {}
	},
	"shapes": {
		"PutObjectRequest": {
			"type": "structure",
			"required": ["Bucket"],
			"members": {
				"Bucket": {"shape": "BucketName"},
				"Body": {"shape": "Blob"},
				"Checksum": {"shape": "MissingShape"}
			}
		},
		"BucketName": {"type": "string"},
		"Blob": {"type": "blob"}
	}
}`

const computeAPI = `{
	"metadata": {"serviceId": "compute"},
	"operations": {
		"StartInstance": {"input": {"shape": "NowhereToBeFound"}}
	},
	"shapes": {
		"InstanceId": {"type": "string"}
	}
}`

func setupRun(t *testing.T) (*config.Config, string) {
	t.Helper()

	inDir := t.TempDir()
	outDir := t.TempDir()

	for service, api := range map[string]string{"storage": storageAPI, "compute": computeAPI} {
		dir := filepath.Join(inDir, service, "2024-05-01")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "api.json"), []byte(api), 0o644))
	}

	cfg := config.NewDefaultConfig(t.TempDir())
	cfg.Generator.InputDir = inDir
	cfg.Generator.OutputDir = outDir
	cfg.Generator.Workers = 2

	return cfg, outDir
}

func TestGenerator_Run(t *testing.T) {
	cfg, outDir := setupRun(t)

	report, err := New(cfg).Run()
	require.NoError(t, err)

	t.Run("All services are processed", func(t *testing.T) {
		require.Len(t, report.Services, 2)
		assert.Equal(t, "compute", report.Services[0].Service)
		assert.Equal(t, "storage", report.Services[1].Service)
	})

	t.Run("One operation failure never halts the batch", func(t *testing.T) {
		compute := report.Services[0]
		storage := report.Services[1]

		assert.Equal(t, 1, compute.Failed, "missing input shape fails the operation")
		assert.Equal(t, 0, compute.Commands)

		assert.Equal(t, 2, storage.Commands)
		assert.Equal(t, 1, storage.SkippedMembers, "bad member is skipped, not fatal")
	})

	t.Run("Report totals", func(t *testing.T) {
		assert.Equal(t, 2, report.Commands())
		assert.Equal(t, 1, report.FailedOperations())
		assert.Equal(t, 1, report.SkippedMembers())
		assert.True(t, report.HasErrors())
		assert.NotEmpty(t, report.RunID)
	})

	t.Run("Command documents are written with suffix", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(outDir, "storage", "put_object_command.json"))
		require.NoError(t, err)

		var doc writer.CommandDocument
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, "storage", doc.Service)
		assert.Equal(t, "PutObject", doc.Operation)
		assert.Equal(t, []string{"Bucket"}, doc.RequiredParameters)
		assert.Equal(t, []string{"Body"}, doc.OptionalParameters)
		assert.Equal(t, 2, doc.ParameterCount)
	})

	t.Run("Operation without input yields an empty document", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(outDir, "storage", "list_buckets_command.json"))
		require.NoError(t, err)

		var doc writer.CommandDocument
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, 0, doc.ParameterCount)
		assert.Equal(t, []string{}, doc.RequiredParameters)
	})

	t.Run("Indexes and manifest exist", func(t *testing.T) {
		for _, rel := range []string{
			"README.md",
			filepath.Join("storage", "README.md"),
			filepath.Join("compute", "README.md"),
			writer.ManifestFileName,
		} {
			_, err := os.Stat(filepath.Join(outDir, rel))
			assert.NoError(t, err, rel)
		}
	})

	t.Run("Generated corpus audits clean", func(t *testing.T) {
		corpus, err := audit.AuditCorpus(outDir)
		require.NoError(t, err)
		assert.True(t, corpus.Valid())
		assert.Equal(t, 2, corpus.Commands)
	})
}

func TestGenerator_ServiceFilter(t *testing.T) {
	cfg, outDir := setupRun(t)
	cfg.Services = []string{"storage"}

	report, err := New(cfg).Run()
	require.NoError(t, err)

	require.Len(t, report.Services, 1)
	assert.Equal(t, "storage", report.Services[0].Service)

	_, err = os.Stat(filepath.Join(outDir, "compute"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerator_CustomSuffix(t *testing.T) {
	cfg, outDir := setupRun(t)
	cfg.Services = []string{"storage"}
	cfg.Generator.CommandSuffix = "Cmd"

	_, err := New(cfg).Run()
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(outDir, "storage", "put_object_cmd.json"))
	assert.NoError(t, statErr)
}

func TestGenerator_LoadFailedServiceLeftOutOfIndex(t *testing.T) {
	cfg, outDir := setupRun(t)

	dir := filepath.Join(cfg.Generator.InputDir, "unparsable", "2024-01-01")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api.json"), []byte("{oops"), 0o644))

	report, err := New(cfg).Run()
	require.NoError(t, err)

	t.Run("Load failure is reported", func(t *testing.T) {
		require.Len(t, report.Services, 3)
		assert.NotNil(t, report.Services[2].LoadError)
		assert.True(t, report.HasErrors())
	})

	t.Run("No index row links to a README that was never written", func(t *testing.T) {
		data, readErr := os.ReadFile(filepath.Join(outDir, "README.md"))
		require.NoError(t, readErr)
		assert.NotContains(t, string(data), "unparsable")

		_, statErr := os.Stat(filepath.Join(outDir, "unparsable", "README.md"))
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestGenerator_MissingInputDir(t *testing.T) {
	cfg := config.NewDefaultConfig(t.TempDir())
	cfg.Generator.InputDir = filepath.Join(t.TempDir(), "nope")

	_, err := New(cfg).Run()
	assert.Error(t, err)
}
