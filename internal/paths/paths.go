// Package paths resolves configuration and data directory locations,
// including best-effort detection of the cloud-sync folders historical
// installs kept their data files in.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".shelf"
	DefaultDataDirName   = "data"
)

// Environment variable names for directory overrides. EnvLegacyDataDir is
// the variable the original installation honored; it is kept as an alias
// so existing deployments keep finding their files.
const (
	EnvConfigDir     = "SHELF_CONFIG_DIR"
	EnvDataDir       = "SHELF_DATA_DIR"
	EnvLegacyDataDir = "LIBRARY_DATA_PATH"
)

// cloudAppDir is the folder name historical installs used inside a
// cloud-sync drive.
const cloudAppDir = "LibraryManagementApp"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/shelf (fallback ~/.config/shelf)
// macOS:   ~/Library/Application Support/shelf
// Windows: %APPDATA%/shelf
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "shelf"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "shelf"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "shelf"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > SHELF_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > SHELF_DATA_DIR env > LIBRARY_DATA_PATH env >
// detected cloud-sync folder > $(CWD)/data.
//
// The CWD-relative data/ default matches the original deployment layout,
// so a binary dropped next to an existing data directory keeps working.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	if env := os.Getenv(EnvLegacyDataDir); env != "" {
		return filepath.Abs(env)
	}
	if cloud := DetectCloudDataDir(); cloud != "" {
		return cloud, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// DetectCloudDataDir probes the well-known cloud-sync locations historical
// installs stored data under and returns the first that exists, or "".
// Purely best-effort: any probe failure means "not found".
func DetectCloudDataDir() string {
	home, err := platformDir.homeDir()
	if err != nil {
		return ""
	}

	var candidates []string

	switch runtime.GOOS {
	case "darwin":
		// Google Drive mounts under ~/Library/CloudStorage/GoogleDrive-<account>.
		if mounts, err := filepath.Glob(filepath.Join(home, "Library", "CloudStorage", "GoogleDrive-*")); err == nil {
			for _, mount := range mounts {
				for _, drive := range []string{"Mi unidad", "My Drive"} {
					candidates = append(candidates, filepath.Join(mount, drive, cloudAppDir, "data"))
				}
			}
		}
		candidates = append(candidates, filepath.Join(home, "Dropbox", cloudAppDir, "data"))
	case "windows":
		for _, base := range []string{
			filepath.Join(home, "Google Drive"),
			filepath.Join(home, "GoogleDrive"),
			`G:\My Drive`,
			`G:\Mi unidad`,
		} {
			candidates = append(candidates, filepath.Join(base, cloudAppDir, "data"))
		}
		candidates = append(candidates,
			filepath.Join(home, "Dropbox", cloudAppDir, "data"),
			filepath.Join(home, "OneDrive", cloudAppDir, "data"),
		)
	default:
		candidates = append(candidates, filepath.Join(home, "Dropbox", cloudAppDir, "data"))
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// Storage type names returned by StorageType.
const (
	StorageGoogleDrive = "Google Drive"
	StorageDropbox     = "Dropbox"
	StorageOneDrive    = "OneDrive"
	StorageLocal       = "Local"
)

// StorageType classifies a data directory by the cloud-sync product its
// path lives under. Used only for startup diagnostics.
func StorageType(dataDir string) string {
	abs, err := filepath.Abs(dataDir)
	if err != nil {
		abs = dataDir
	}
	lower := strings.ToLower(abs)

	switch {
	case strings.Contains(lower, "googledrive"),
		strings.Contains(lower, "google drive"),
		strings.Contains(lower, "shortcut-targets-by-id"):
		return StorageGoogleDrive
	case strings.Contains(lower, "dropbox"):
		return StorageDropbox
	case strings.Contains(lower, "onedrive"):
		return StorageOneDrive
	default:
		return StorageLocal
	}
}
