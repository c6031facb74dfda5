package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Service loads and saves the settings document and manages the service
// catalog. All operations are whole-file read-modify-write; the tool is
// explicitly single-operator.
type Service struct {
	path string
}

func NewService(path string) *Service {
	return &Service{path: path}
}

// Load reads the settings file. A missing file is ErrNotConfigured, not an
// empty default: callers must send the user to configuration instead of
// billing with zeroes.
func (s *Service) Load() (*Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotConfigured
		}

		return nil, fmt.Errorf("reading settings: %w", err)
	}

	var cfg Settings
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}

	return &cfg, nil
}

func (s *Service) Save(cfg *Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}

	return nil
}

// AddService appends a catalog entry. Duplicates are allowed; the catalog
// is free text.
func (s *Service) AddService(cfg *Settings, name string) {
	cfg.Services = append(cfg.Services, name)
}

// RenameService replaces the first catalog entry equal to old.
func (s *Service) RenameService(cfg *Settings, old, name string) bool {
	for i, svc := range cfg.Services {
		if svc == old {
			cfg.Services[i] = name
			return true
		}
	}

	return false
}

// RemoveService deletes every catalog entry equal to name, not just the
// first. Duplicate entries all go.
func (s *Service) RemoveService(cfg *Settings, name string) int {
	kept := cfg.Services[:0]
	removed := 0

	for _, svc := range cfg.Services {
		if svc == name {
			removed++
			continue
		}

		kept = append(kept, svc)
	}

	cfg.Services = kept

	return removed
}
