package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/dexteam/internal/config"
)

// CheckExisting checks if dexteam.yml already exists in dir
// Returns an error if it does, nil otherwise
func CheckExisting(dir string) error {
	path := filepath.Join(dir, config.DefaultFileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("dexteam already initialized\n\nFound existing: %s\n\nUse 'dexteam init --force' to reinitialize (this will overwrite existing configuration)", path)
	}
	return nil
}
