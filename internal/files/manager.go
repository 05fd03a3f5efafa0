package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"reporttable/internal/config"
)

// Manager reads report inputs and writes rendered documents
type Manager struct {
	logger *slog.Logger
}

// NewManager creates a new file manager instance
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{logger: logger.With(slog.String("component", "files"))}
}

// ResolveInputPath resolves a relative path against the working directory
// when it does not exist as given
func (m *Manager) ResolveInputPath(path string) string {
	return config.ResolveInputPath(path)
}

// ReadText reads the entire content of a file
func (m *Manager) ReadText(path string) ([]byte, error) {
	fullPath := m.ResolveInputPath(path)

	m.logger.Debug("Reading file",
		slog.String("path", path),
		slog.String("full_path", fullPath))

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// ReadOptional reads path, returning no content for an empty path
func (m *Manager) ReadOptional(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	return m.ReadText(path)
}

// WriteDocument writes prepend, body and appendix verbatim and in order.
// The file is written to a temporary sibling and renamed into place, so a
// failed write never leaves a partial document behind.
func (m *Manager) WriteDocument(path string, prepend, body, appendix []byte) (int, error) {
	m.logger.Info("Writing file",
		slog.String("path", path),
		slog.Int("prepend_bytes", len(prepend)),
		slog.Int("body_bytes", len(body)),
		slog.Int("append_bytes", len(appendix)))

	if err := config.EnsureParentDir(path); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	written := 0
	for _, part := range [][]byte{prepend, body, appendix} {
		n, err := tmp.Write(part)
		written += n
		if err != nil {
			tmp.Close()
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return written, fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return written, fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return written, fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return written, fmt.Errorf("failed to move output into place: %w", err)
	}
	return written, nil
}
