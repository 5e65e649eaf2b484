package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAPIFile(t *testing.T, root, service, version, content string) {
	t.Helper()

	dir := filepath.Join(root, service, version)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, APIFileName), []byte(content), 0o644))
}

const minimalAPI = `{
	"metadata": {"serviceId": "svc"},
	"operations": {"Ping": {}},
	"shapes": {}
}`

func TestDiscover(t *testing.T) {
	t.Run("Picks the newest version folder", func(t *testing.T) {
		root := t.TempDir()
		writeAPIFile(t, root, "storage", "2023-11-01", minimalAPI)
		writeAPIFile(t, root, "storage", "2024-05-01", minimalAPI)
		writeAPIFile(t, root, "storage", "2021-01-15", minimalAPI)

		dirs, err := Discover(root)
		require.NoError(t, err)
		require.Len(t, dirs, 1)

		assert.Equal(t, "storage", dirs[0].Name)
		assert.Equal(t, "2024-05-01", dirs[0].Version)
		assert.Equal(t, filepath.Join(root, "storage", "2024-05-01"), dirs[0].Path)
	})

	t.Run("Results are sorted by service name", func(t *testing.T) {
		root := t.TempDir()
		writeAPIFile(t, root, "zeta", "2024-01-01", minimalAPI)
		writeAPIFile(t, root, "alpha", "2024-01-01", minimalAPI)

		dirs, err := Discover(root)
		require.NoError(t, err)
		require.Len(t, dirs, 2)
		assert.Equal(t, "alpha", dirs[0].Name)
		assert.Equal(t, "zeta", dirs[1].Name)
	})

	t.Run("Skips services without a usable version", func(t *testing.T) {
		root := t.TempDir()
		writeAPIFile(t, root, "good", "2024-01-01", minimalAPI)
		// version folder without an api file
		require.NoError(t, os.MkdirAll(filepath.Join(root, "empty", "2024-01-01"), 0o755))

		dirs, err := Discover(root)
		require.NoError(t, err)
		require.Len(t, dirs, 1)
		assert.Equal(t, "good", dirs[0].Name)
	})

	t.Run("Ignores hidden directories and plain files", func(t *testing.T) {
		root := t.TempDir()
		writeAPIFile(t, root, "good", "2024-01-01", minimalAPI)
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".hidden", "2024-01-01"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

		dirs, err := Discover(root)
		require.NoError(t, err)
		require.Len(t, dirs, 1)
	})

	t.Run("Missing root", func(t *testing.T) {
		_, err := Discover(filepath.Join(t.TempDir(), "nope"))
		assert.ErrorIs(t, err, ErrInputDirNotFound)
	})
}

func TestLoadService(t *testing.T) {
	t.Run("Parses a description with ordered members", func(t *testing.T) {
		root := t.TempDir()
		writeAPIFile(t, root, "storage", "2024-05-01", `{
			"metadata": {"serviceId": "storage", "apiVersion": "2024-05-01"},
			"operations": {
				"PutObject": {"input": {"shape": "PutObjectRequest"}}
			},
			"shapes": {
				"PutObjectRequest": {
					"type": "structure",
					"members": {
						"Bucket": {"shape": "Str"},
						"Acl": {"shape": "Str"}
					}
				},
				"Str": {"type": "string"}
			}
		}`)

		dirs, err := Discover(root)
		require.NoError(t, err)
		require.Len(t, dirs, 1)

		svc, err := LoadService(dirs[0])
		require.NoError(t, err)

		req, ok := svc.Store().Get("PutObjectRequest")
		require.True(t, ok)
		assert.Equal(t, []string{"Bucket", "Acl"}, req.MemberNames())
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		root := t.TempDir()
		writeAPIFile(t, root, "bad", "2024-01-01", `{not json`)

		dirs, err := Discover(root)
		require.NoError(t, err)

		_, err = LoadService(dirs[0])
		assert.Error(t, err)
	})

	t.Run("Empty description", func(t *testing.T) {
		root := t.TempDir()
		writeAPIFile(t, root, "empty", "2024-01-01", `{}`)

		dirs, err := Discover(root)
		require.NoError(t, err)

		_, err = LoadService(dirs[0])
		assert.ErrorIs(t, err, ErrEmptyDescription)
	})
}
