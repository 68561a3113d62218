package file

import (
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// Settings is the on-disk configuration for caseview, stored as TOML at
// ~/.caseview/config.toml.
type Settings struct {
	Storage   StorageSettings   `toml:"storage"`
	API       APISettings       `toml:"api"`
	Rendition RenditionSettings `toml:"rendition"`
	Images    ImageSettings     `toml:"images"`
}

// StorageSettings selects and configures the attachment store backend.
type StorageSettings struct {
	// Backend is "sqlite" (local) or "rest" (remote record API).
	Backend string `toml:"backend"`

	// DataDir overrides the local database directory.
	DataDir string `toml:"data_dir,omitempty"`
}

// APISettings configures the remote record API backend.
type APISettings struct {
	BaseURL        string `toml:"base_url,omitempty"`
	TokenURL       string `toml:"token_url,omitempty"`
	ClientID       string `toml:"client_id,omitempty"`
	ClientSecret   string `toml:"client_secret,omitempty"`
	TimeoutSeconds int    `toml:"timeout_seconds,omitempty"`
}

// RenditionSettings configures download URL derivation for images
// without an embedded data URL.
type RenditionSettings struct {
	BaseURL  string `toml:"base_url,omitempty"`
	Template string `toml:"template,omitempty"`
}

// ImageSettings configures image resolution.
type ImageSettings struct {
	// Extensions overrides the displayable-extension whitelist.
	Extensions []string `toml:"extensions,omitempty"`
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		Storage: StorageSettings{Backend: "sqlite"},
		API:     APISettings{TimeoutSeconds: 30},
	}
}

// ConfigStore loads and persists caseview settings as a TOML file.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	settings Settings
}

// NewConfigStore creates a config store rooted at configDir.
// If configDir is empty, defaults to ~/.caseview.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".caseview")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		settings: DefaultSettings(),
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Settings returns a copy of the current settings.
func (s *ConfigStore) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update applies fn to the settings and persists the result.
func (s *ConfigStore) Update(fn func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.settings)
	return s.save()
}

// Save persists the current settings.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.settings)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads settings from disk. Fields absent from the file keep their
// defaults; a missing file leaves the defaults untouched.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	settings := DefaultSettings()
	if err := toml.Unmarshal(data, &settings); err != nil {
		return err
	}
	s.settings = settings
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
