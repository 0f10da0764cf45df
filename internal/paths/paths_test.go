package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearDataEnv blanks every data-dir override so precedence tests start clean.
func clearDataEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvLegacyDataDir, "")
}

func TestDefaultConfigDir_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}

	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-config/shelf", got)
	})

	t.Run("falls back to ~/.config when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "shelf"), got)
	})
}

func TestResolveConfigDir(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		envVal  string
		wantSub string // substring the result must contain
	}{
		{
			name:    "flag wins over env",
			flag:    "/explicit/config",
			envVal:  "/env/config",
			wantSub: "/explicit/config",
		},
		{
			name:    "env wins when flag empty",
			flag:    "",
			envVal:  "/env/config",
			wantSub: "/env/config",
		},
		{
			name:    "platform default when both empty",
			flag:    "",
			envVal:  "",
			wantSub: "shelf",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.envVal)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Contains(t, got, tt.wantSub)
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	cwdDefault := filepath.Join(cwd, DefaultDataDirName)

	tests := []struct {
		name          string
		flag          string
		configYAMLVal string
		envVal        string
		legacyEnvVal  string
		want          string
	}{
		{
			name:          "flag wins over all",
			flag:          "/flag/data",
			configYAMLVal: "/config/data",
			envVal:        "/env/data",
			legacyEnvVal:  "/legacy/data",
			want:          "/flag/data",
		},
		{
			name:          "config.yaml wins over env",
			configYAMLVal: "/config/data",
			envVal:        "/env/data",
			want:          "/config/data",
		},
		{
			name:   "env wins when flag and config empty",
			envVal: "/env/data",
			want:   "/env/data",
		},
		{
			name:         "legacy LIBRARY_DATA_PATH honored",
			legacyEnvVal: "/legacy/data",
			want:         "/legacy/data",
		},
		{
			name:         "new env wins over legacy env",
			envVal:       "/env/data",
			legacyEnvVal: "/legacy/data",
			want:         "/env/data",
		},
		{
			name: "CWD data default when all empty",
			want: cwdDefault,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.envVal)
			t.Setenv(EnvLegacyDataDir, tt.legacyEnvVal)
			got, err := ResolveDataDir(tt.flag, tt.configYAMLVal)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDataDir_AbsolutePath(t *testing.T) {
	t.Run("relative flag becomes absolute", func(t *testing.T) {
		clearDataEnv(t)
		got, err := ResolveDataDir("relative/path", "")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})

	t.Run("relative config value becomes absolute", func(t *testing.T) {
		clearDataEnv(t)
		got, err := ResolveDataDir("", "relative/config")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})
}

func TestDetectCloudDataDir(t *testing.T) {
	origHome := platformDir.homeDir
	t.Cleanup(func() { platformDir.homeDir = origHome })

	t.Run("finds a Dropbox app folder under home", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("posix layout")
		}
		home := t.TempDir()
		appData := filepath.Join(home, "Dropbox", cloudAppDir, "data")
		require.NoError(t, os.MkdirAll(appData, 0o755))
		platformDir.homeDir = func() (string, error) { return home, nil }

		assert.Equal(t, appData, DetectCloudDataDir())
	})

	t.Run("empty when nothing is mounted", func(t *testing.T) {
		home := t.TempDir()
		platformDir.homeDir = func() (string, error) { return home, nil }

		assert.Empty(t, DetectCloudDataDir())
	})
}

func TestStorageType(t *testing.T) {
	tests := []struct {
		name string
		dir  string
		want string
	}{
		{"google drive mount", "/Users/ana/Library/CloudStorage/GoogleDrive-a@b.c/My Drive/app/data", StorageGoogleDrive},
		{"drive shortcut folder", `G:\.shortcut-targets-by-id\abc\app\data`, StorageGoogleDrive},
		{"dropbox folder", "/home/ana/Dropbox/LibraryManagementApp/data", StorageDropbox},
		{"onedrive folder", `C:\Users\ana\OneDrive\app\data`, StorageOneDrive},
		{"plain local folder", "/var/lib/shelf/data", StorageLocal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StorageType(tt.dir))
		})
	}
}
