package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apiforge/commandgen/pkg/shape"
)

// APIFileName is the description file expected inside each version folder.
const APIFileName = "api.json"

var (
	ErrInputDirNotFound = errors.New("input directory not found")
	ErrEmptyDescription = errors.New("empty API description")
)

// ServiceDir points at the newest usable version folder of one service.
type ServiceDir struct {
	Name    string
	Version string
	Path    string
}

// Discover scans root for <service>/<version>/api.json trees and returns
// one entry per service, pointing at the lexicographically greatest
// version folder that contains a description file. Version folder names
// are date-stamped, so the greatest name is the newest version. Services
// without a usable version are skipped with a warning. The result is
// sorted by service name.
func Discover(root string) ([]ServiceDir, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInputDirNotFound, root)
	}

	var res []ServiceDir
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		name := entry.Name()
		version, ok := newestVersion(filepath.Join(root, name))
		if !ok {
			slog.Warn("service has no usable version folder, skipping", "service", name)
			continue
		}

		res = append(res, ServiceDir{
			Name:    name,
			Version: version,
			Path:    filepath.Join(root, name, version),
		})
	}

	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func newestVersion(serviceDir string) (string, bool) {
	entries, err := os.ReadDir(serviceDir)
	if err != nil {
		return "", false
	}

	var versions []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		apiFile := filepath.Join(serviceDir, entry.Name(), APIFileName)
		if _, err := os.Stat(apiFile); err != nil {
			continue
		}
		versions = append(versions, entry.Name())
	}

	if len(versions) == 0 {
		return "", false
	}

	sort.Strings(versions)
	return versions[len(versions)-1], true
}

// LoadService reads and parses the API description for one service
// version. Shape member order from the source file is preserved.
func LoadService(dir ServiceDir) (*shape.Service, error) {
	data, err := os.ReadFile(filepath.Join(dir.Path, APIFileName))
	if err != nil {
		return nil, fmt.Errorf("reading %s description: %w", dir.Name, err)
	}

	var svc shape.Service
	if err := json.Unmarshal(data, &svc); err != nil {
		return nil, fmt.Errorf("parsing %s description: %w", dir.Name, err)
	}

	if len(svc.Shapes) == 0 && len(svc.Operations) == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrEmptyDescription, dir.Name, dir.Version)
	}

	return &svc, nil
}
