// Package storage persists rendered invoices. Saving is best-effort: the
// pipeline reports an UploadResult instead of failing on storage errors.
package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UploadResult describes one save attempt.
type UploadResult struct {
	OK       bool   `json:"ok"`
	Path     string `json:"path,omitempty"`
	Filename string `json:"filename"`
	Size     int64  `json:"size,omitempty"`
	Error    string `json:"error,omitempty"`
}

// LocalStore writes invoices under a single directory.
type LocalStore struct {
	dir string
	log *slog.Logger
}

func NewLocalStore(dir string, log *slog.Logger) *LocalStore {
	if log == nil {
		log = slog.Default()
	}
	return &LocalStore{dir: dir, log: log}
}

// Save writes content under the store directory. An empty filename gets a
// generated uuid name. Errors are folded into the result.
func (s *LocalStore) Save(filename string, content []byte) UploadResult {
	if filename == "" {
		filename = fmt.Sprintf("invoice-%s.xlsx", uuid.NewString())
	}
	filename = filepath.Base(filename)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.log.Error("storage.save.failed", "filename", filename, "err", err)
		return UploadResult{Filename: filename, Error: err.Error()}
	}
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		s.log.Error("storage.save.failed", "filename", filename, "err", err)
		return UploadResult{Filename: filename, Error: err.Error()}
	}
	s.log.Info("storage.saved", "path", path, "size", len(content))
	return UploadResult{OK: true, Path: path, Filename: filename, Size: int64(len(content))}
}

// FileInfo is one stored invoice.
type FileInfo struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// List returns stored invoices, newest first. A missing directory is an
// empty store, not an error.
func (s *LocalStore) List() ([]FileInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing store: %w", err)
	}
	var out []FileInfo
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, FileInfo{Name: e.Name(), Size: info.Size(), Modified: info.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Modified.After(out[j].Modified) })
	return out, nil
}

// Delete removes a stored invoice by name.
func (s *LocalStore) Delete(filename string) error {
	filename = filepath.Base(filename)
	if err := os.Remove(filepath.Join(s.dir, filename)); err != nil {
		return fmt.Errorf("deleting %s: %w", filename, err)
	}
	s.log.Info("storage.deleted", "filename", filename)
	return nil
}
