package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

func GetRuntimePath() string {
	path := os.Getenv("RECALL_RUNTIME_PATH")
	if path == "" {
		path = ".recallbox"
	}
	return ExpandPath(path)
}

// ExpandPath resolves "~" and anchors relative paths at the home directory,
// the way the runtime directory has always been located.
func ExpandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err == nil {
		path = expanded
	}
	if !filepath.IsAbs(path) {
		home, _ := homedir.Dir()
		path = filepath.Join(home, path)
	}
	return path
}

// ExpandMountPath resolves "~" in a user-typed drive path. Relative paths are
// made absolute against the working directory since the backend resolves
// them in its own process.
func ExpandMountPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err == nil {
		path = expanded
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path
}
