package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_StartsWithDefaults(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	settings := store.Settings()

	assert.Equal(t, "sqlite", settings.Storage.Backend)
	assert.Equal(t, 30, settings.API.TimeoutSeconds)
	assert.Empty(t, settings.Rendition.BaseURL)
	assert.Nil(t, settings.Images.Extensions)
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.DirExists(t, filepath.Dir(store.Path()))
}

func TestNewConfigStore_MkdirError(t *testing.T) {
	// A file where the directory should be.
	parent := t.TempDir()
	blocked := filepath.Join(parent, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0600))

	_, err := NewConfigStore(filepath.Join(blocked, "sub"))

	assert.Error(t, err)
}

func TestConfigStore_UpdatePersists(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	err = store.Update(func(s *Settings) {
		s.Storage.Backend = "rest"
		s.API.BaseURL = "https://records.example.com/api"
		s.Rendition.BaseURL = "https://files.example.com"
		s.Images.Extensions = []string{"png", "jpg"}
	})
	require.NoError(t, err)

	// A fresh store over the same directory sees the saved values.
	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	settings := reloaded.Settings()
	assert.Equal(t, "rest", settings.Storage.Backend)
	assert.Equal(t, "https://records.example.com/api", settings.API.BaseURL)
	assert.Equal(t, "https://files.example.com", settings.Rendition.BaseURL)
	assert.Equal(t, []string{"png", "jpg"}, settings.Images.Extensions)
}

func TestConfigStore_Load_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "[rendition]\nbase_url = \"https://files.example.com\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	settings := store.Settings()
	assert.Equal(t, "https://files.example.com", settings.Rendition.BaseURL)
	assert.Equal(t, "sqlite", settings.Storage.Backend)
	assert.Equal(t, 30, settings.API.TimeoutSeconds)
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [valid"), 0600))

	_, err := NewConfigStore(dir)

	assert.Error(t, err)
}

func TestConfigStore_Load_InvalidTOMLKeepsCurrentSettings(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Update(func(s *Settings) {
		s.Storage.Backend = "rest"
	}))

	require.NoError(t, os.WriteFile(store.Path(), []byte("not [valid"), 0600))

	assert.Error(t, store.Load())
	assert.Equal(t, "rest", store.Settings().Storage.Backend)
}

func TestConfigStore_Save_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_SettingsReturnsCopy(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	settings := store.Settings()
	settings.Storage.Backend = "rest"

	assert.Equal(t, "sqlite", store.Settings().Storage.Backend)
}

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	assert.Equal(t, "sqlite", settings.Storage.Backend)
	assert.Equal(t, 30, settings.API.TimeoutSeconds)
}
