package save

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// filePattern names save files by their UTC capture time; lexicographic order
// matches chronological order.
const filePattern = "save-20060102-150405.000000000.yaml"

// Manager reads and writes save files under a single directory. Write
// failures never touch the in-memory state the caller snapshotted from.
type Manager struct {
	dir         string
	maxRetained int
	log         *zap.Logger
}

// NewManager creates the save directory if needed. maxRetained of zero keeps
// every save.
//
// Precondition: maxRetained >= 0.
func NewManager(dir string, maxRetained int, log *zap.Logger) (*Manager, error) {
	if maxRetained < 0 {
		return nil, fmt.Errorf("NewManager: maxRetained must be >= 0, got %d", maxRetained)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("NewManager: creating save directory %q: %w", dir, err)
	}
	return &Manager{dir: dir, maxRetained: maxRetained, log: log}, nil
}

// Save writes the state as a timestamp-named YAML file and prunes old saves
// past the retention limit. Returns the path written.
func (m *Manager) Save(st *State) (string, error) {
	data, err := yaml.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("Save: marshaling state: %w", err)
	}

	path := filepath.Join(m.dir, st.SavedAt.UTC().Format(filePattern))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("Save: writing %q: %w", path, err)
	}
	m.log.Info("game saved", zap.String("path", path))

	m.prune()
	return path, nil
}

// List returns the save file paths, newest first.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("List: reading save directory %q: %w", m.dir, err)
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "save-") || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		paths = append(paths, filepath.Join(m.dir, name))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	return paths, nil
}

// Load reads one save file.
func (m *Manager) Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Load: reading %q: %w", path, err)
	}
	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("Load: parsing %q: %w", path, err)
	}
	return &st, nil
}

// LoadLatest loads the newest save, if any exists.
//
// Postcondition: returns (nil, false, nil) when the directory holds no saves.
func (m *Manager) LoadLatest() (*State, bool, error) {
	paths, err := m.List()
	if err != nil {
		return nil, false, err
	}
	if len(paths) == 0 {
		return nil, false, nil
	}
	st, err := m.Load(paths[0])
	if err != nil {
		return nil, false, err
	}
	return st, true, nil
}

// prune removes saves beyond the retention limit. Removal failures are
// logged and skipped; the new save is already on disk.
func (m *Manager) prune() {
	if m.maxRetained == 0 {
		return
	}
	paths, err := m.List()
	if err != nil {
		m.log.Warn("pruning saves", zap.Error(err))
		return
	}
	for _, path := range paths[min(len(paths), m.maxRetained):] {
		if err := os.Remove(path); err != nil {
			m.log.Warn("removing old save", zap.String("path", path), zap.Error(err))
			continue
		}
		m.log.Debug("pruned old save", zap.String("path", path))
	}
}
