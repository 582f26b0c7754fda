package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"grit/internal/constants"
)

func InitRepository(path string) error {
	// Resolves and adds OS specific separator
	gritDir := filepath.Join(path, constants.Grit)

	if err := checkRepositoryDoesNotExist(gritDir); err != nil {
		return err
	}

	// Track if initialization of grit directories and files was successful
	// Default value: false
	var initSuccess bool

	// Defer a func to clean up any directories/files in the case that
	// repository initialization failed (not all directories/files were created successfully).
	// If all resources got created successfully initSuccess is true, and the clean-up
	//  is not executed
	defer func() {
		if !initSuccess {
			cleanupRepository(gritDir)
		}
	}()

	directories := []string{
		gritDir,
		filepath.Join(gritDir, constants.Objects),
		filepath.Join(gritDir, constants.Refs),
		filepath.Join(gritDir, constants.Refs, constants.Heads),
		filepath.Join(gritDir, constants.Refs, constants.Tags),
	}

	// Create all grit directories
	for _, directory := range directories {
		if err := os.MkdirAll(directory, constants.DirPerms); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", directory, err)
		}
	}

	// Create HEAD file pointing to main branch
	headFile := filepath.Join(gritDir, constants.Head)
	headContent := constants.DefaultRefPrefix + constants.DefaultBranch + "\n"

	if err := os.WriteFile(headFile, []byte(headContent), constants.FilePerms); err != nil {
		return fmt.Errorf("failed to create %s file: %w", constants.Head, err)
	}

	initSuccess = true
	return nil
}

// FindRoot locates the repository root by walking up from the current
// directory until it finds the .grit metadata directory.
func FindRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		gritPath := filepath.Join(dir, constants.Grit)
		if info, err := os.Stat(gritPath); err == nil && info.IsDir() {
			return dir, nil
		}

		// Dir returns all but the last element of path
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding .grit
			return "", fmt.Errorf("%s directory not found", constants.Grit)
		}
		dir = parent
	}
}

func checkRepositoryDoesNotExist(path string) error {
	_, err := os.Stat(path)

	// If path doesn't exist there is no error
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to check repository path: %w", err)
	}

	return fmt.Errorf("repository already exists at %s", path)
}

// Removes the entire .grit directory if it exists
func cleanupRepository(gritDir string) {
	if _, err := os.Stat(gritDir); err == nil {
		zap.L().Debug("cleaning up partial repository initialization",
			zap.String("path", gritDir))

		if err := os.RemoveAll(gritDir); err != nil {
			zap.L().Warn("failed to cleanup repository directory",
				zap.String("path", gritDir),
				zap.Error(err))
		}
	}
}
