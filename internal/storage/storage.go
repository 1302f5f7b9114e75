package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	appDir     = ".clientdesk"
	configFile = "config.yaml"
	exportsDir = "exports"
	logsDir    = "logs"
	auditDir   = "audit"
)

// Storage owns the local data directory. Records themselves are never
// stored here; the backend is their only home.
type Storage struct {
	dataDir   string
	exportDir string
}

func NewStorage() (*Storage, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return NewStorageAt(filepath.Join(homeDir, appDir))
}

func NewStorageAt(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &Storage{
		dataDir:   dataDir,
		exportDir: filepath.Join(dataDir, exportsDir),
	}, nil
}

// SetExportDir overrides where exports are written; empty keeps the default.
func (s *Storage) SetExportDir(dir string) {
	if strings.TrimSpace(dir) != "" {
		s.exportDir = dir
	}
}

func (s *Storage) DataDir() string {
	return s.dataDir
}

func (s *Storage) ConfigPath() string {
	return filepath.Join(s.dataDir, configFile)
}

func (s *Storage) LogDir() string {
	return filepath.Join(s.dataDir, logsDir)
}

func (s *Storage) AuditDir() string {
	return filepath.Join(s.dataDir, auditDir)
}

func (s *Storage) ExportDir() string {
	return s.exportDir
}

// WriteExport writes an export file into the export directory and returns
// its full path. name must be a bare file name.
func (s *Storage) WriteExport(name string, data []byte) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid export file name: %q", name)
	}

	if err := os.MkdirAll(s.exportDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(s.exportDir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
