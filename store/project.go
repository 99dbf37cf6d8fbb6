// Package store holds the on-disk JSON stores: style profile, per-project
// conversation/schematic records, and standalone blueprint files. Files are
// read-modify-written under a process-local mutex; cross-process writers are
// not coordinated.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gearwright/copilot"
)

// ErrBadProjectName is returned when a project name slugs down to nothing.
var ErrBadProjectName = errors.New("project name has no usable characters")

// ProjectStore keeps one <slug>.json per project. Writes create the project
// if absent.
type ProjectStore struct {
	dir string
	mu  sync.Mutex
}

func NewProjectStore(dir string) *ProjectStore {
	return &ProjectStore{dir: dir}
}

// LoadProject returns the project's record, or an empty record for an
// unknown name.
func (s *ProjectStore) LoadProject(name string) (copilot.ProjectRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(name)
}

// AppendConversation adds one turn to the project's history, creating the
// project on first write.
func (s *ProjectStore) AppendConversation(name, role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, err := s.loadLocked(name)
	if err != nil {
		return err
	}
	record.Conversation = append(record.Conversation, copilot.ConversationTurn{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	return s.saveLocked(name, record)
}

// SaveSchematic appends a blueprint to the project's schematic list,
// creating the project on first write.
func (s *ProjectStore) SaveSchematic(name string, bp copilot.Blueprint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, err := s.loadLocked(name)
	if err != nil {
		return err
	}
	record.Schematics = append(record.Schematics, bp)
	return s.saveLocked(name, record)
}

func (s *ProjectStore) loadLocked(name string) (copilot.ProjectRecord, error) {
	path, err := s.path(name)
	if err != nil {
		return copilot.ProjectRecord{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return copilot.ProjectRecord{}, nil
		}
		return copilot.ProjectRecord{}, fmt.Errorf("read project %q: %w", name, err)
	}
	var record copilot.ProjectRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return copilot.ProjectRecord{}, fmt.Errorf("parse project %q: %w", name, err)
	}
	return record, nil
}

func (s *ProjectStore) saveLocked(name string, record copilot.ProjectRecord) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	return writeJSONFile(path, record)
}

func (s *ProjectStore) path(name string) (string, error) {
	slug := Slugify(name)
	if slug == "" {
		return "", fmt.Errorf("%w: %q", ErrBadProjectName, name)
	}
	return filepath.Join(s.dir, slug+".json"), nil
}

// Slugify lowercases a name and keeps only [a-z0-9-_], mapping whitespace to
// dashes, so project names are safe as file names.
func Slugify(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		case r == ' ' || r == '\t':
			sb.WriteRune('-')
		}
	}
	return sb.String()
}

func writeJSONFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
