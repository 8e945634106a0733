package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"PaperHarvest/internal/domain"
	"PaperHarvest/internal/ports"
)

// FileStore persists daily documents as <dir>/<date>.json with stable field
// ordering and UTF-8 text left unescaped.
type FileStore struct {
	dir string
}

var _ ports.DocumentStore = (*FileStore)(nil)

// New points the store at an output directory; it is created on first write.
func New(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// PathFor returns the file path for a crawl date.
func (s *FileStore) PathFor(date string) string {
	return filepath.Join(s.dir, date+".json")
}

// Write stores the document under its date, creating the directory if
// needed, and returns the written path.
func (s *FileStore) Write(doc domain.DailyDocument) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", s.dir, err)
	}
	path := s.PathFor(doc.Date)
	if err := s.Save(path, doc); err != nil {
		return "", err
	}
	return path, nil
}

// Save serializes the document to path.
func (s *FileStore) Save(path string, doc domain.DailyDocument) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Load reads a document back; a missing file surfaces as os.ErrNotExist.
func (s *FileStore) Load(path string) (domain.DailyDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.DailyDocument{}, fmt.Errorf("read %s: %w", path, err)
	}
	var doc domain.DailyDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.DailyDocument{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// Select resolves which documents a backfill run should touch: an explicit
// date, every document, or the latest one by default. Date-named files sort
// lexicographically, so the last name is the newest date.
func (s *FileStore) Select(date string, all bool) ([]string, error) {
	if date != "" && !all {
		return []string{s.PathFor(date)}, nil
	}

	paths, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	sort.Strings(paths)

	if all || len(paths) == 0 {
		return paths, nil
	}
	return paths[len(paths)-1:], nil
}
