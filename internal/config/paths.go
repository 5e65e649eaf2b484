package config

import "path/filepath"

// Paths holds all the filesystem locations used by the generator.
type Paths struct {
	Base       string
	Input      string
	Output     string
	ConfigFile string
}

func NewPaths(baseDir string) *Paths {
	return &Paths{
		Base:       baseDir,
		Input:      filepath.Join(baseDir, "apis"),
		Output:     filepath.Join(baseDir, "build", "commands"),
		ConfigFile: filepath.Join(baseDir, "commandgen.yml"),
	}
}
