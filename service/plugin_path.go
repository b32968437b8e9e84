package service

import (
	"os"
	"path/filepath"
)

// DefaultPluginClientDir is the client directory shipped with the scripting plugin for the 2023 R1 image.
const DefaultPluginClientDir = "client231"

// desktopPluginSubdir holds the desktop plugin support files inside the client directory.
const desktopPluginSubdir = "PythonFiles/DesktopPlugin"

// PluginLocator resolves the directory holding the desktop plugin support files: <clientDir>/PythonFiles/DesktopPlugin,
// looked up under the working directory first and next to the running executable second.
type PluginLocator struct {
	clientDir string
	workDir   func() (string, error)
	moduleDir func() (string, error)
}

// NewPluginLocator creates a locator for clientDir (empty means DefaultPluginClientDir).
func NewPluginLocator(clientDir string) *PluginLocator {
	if clientDir == "" {
		clientDir = DefaultPluginClientDir
	}
	return &PluginLocator{
		clientDir: clientDir,
		workDir:   os.Getwd,
		moduleDir: executableDir,
	}
}

// DesktopPluginDir returns the plugin directory and true when the client directory exists under one of the base
// directories; ("", false) otherwise. The plugin subdirectory itself is not required to exist yet.
func (l *PluginLocator) DesktopPluginDir() (string, bool) {
	for _, base := range []func() (string, error){l.workDir, l.moduleDir} {
		dir, err := base()
		if err != nil || dir == "" {
			continue
		}
		clientBase := filepath.Join(dir, l.clientDir)
		if isDir(clientBase) {
			return filepath.Join(clientBase, filepath.FromSlash(desktopPluginSubdir)), true
		}
	}
	return "", false
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
