package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/annotate/pkg/scenario"
	"github.com/dshills/annotate/pkg/validation"
)

// ErrScenarioNotFound is returned when no stored scenario has the name.
var ErrScenarioNotFound = errors.New("scenario not found")

// FilesystemScenarioRepository stores scenario documents as YAML files
// under <base>/scenarios/.
type FilesystemScenarioRepository struct {
	baseDir string
}

// NewFilesystemScenarioRepository creates the repository under baseDir,
// creating the scenarios directory if needed.
func NewFilesystemScenarioRepository(baseDir string) (*FilesystemScenarioRepository, error) {
	scenariosDir := filepath.Join(baseDir, "scenarios")

	if err := os.MkdirAll(scenariosDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scenarios directory: %w", err)
	}

	return &FilesystemScenarioRepository{baseDir: scenariosDir}, nil
}

// Dir returns the directory holding the scenario files.
func (r *FilesystemScenarioRepository) Dir() string {
	return r.baseDir
}

// Save validates a scenario document and stores it under its name.
func (r *FilesystemScenarioRepository) Save(data []byte) (*scenario.Scenario, error) {
	sc, err := scenario.Parse(data)
	if err != nil {
		return nil, err
	}

	filePath := r.scenarioPath(sc.Name)
	tempPath := filePath + ".tmp"

	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write scenario file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, filePath); err != nil {
		_ = os.Remove(tempPath)
		return nil, fmt.Errorf("failed to save scenario file: %w", err)
	}

	sc.Path = filePath
	return sc, nil
}

// Load returns the stored scenario with the given name.
func (r *FilesystemScenarioRepository) Load(name string) (*scenario.Scenario, error) {
	if err := validation.ValidateIdentifier("scenario name", name); err != nil {
		return nil, err
	}

	filePath := r.scenarioPath(name)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrScenarioNotFound, name)
	}

	return scenario.Load(filePath)
}

// Delete removes the stored scenario with the given name.
func (r *FilesystemScenarioRepository) Delete(name string) error {
	if err := validation.ValidateIdentifier("scenario name", name); err != nil {
		return err
	}

	filePath := r.scenarioPath(name)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrScenarioNotFound, name)
	}

	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete scenario file: %w", err)
	}

	return nil
}

// List returns the names of all stored scenarios in directory order.
func (r *FilesystemScenarioRepository) List() ([]string, error) {
	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}

	return names, nil
}

func (r *FilesystemScenarioRepository) scenarioPath(name string) string {
	return filepath.Join(r.baseDir, name+".yaml")
}
