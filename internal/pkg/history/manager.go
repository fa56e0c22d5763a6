// Package history provides local storage of generated standup summaries.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultMaxEntries is the default maximum number of history entries.
	DefaultMaxEntries = 1000
)

// ErrCorrupt reports that the history file exists but cannot be parsed.
var ErrCorrupt = errors.New("history file is corrupt")

// Entry represents a single recorded summary.
type Entry struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Summary     string    `json:"summary"`
	CommitCount int       `json:"commit_count"`
	Window      string    `json:"window"`
	Provider    string    `json:"provider"`
	Model       string    `json:"model"`
}

// Manager defines the interface for history management.
// List returns entries newest first.
type Manager interface {
	Save(entry *Entry) error
	List(limit int) ([]*Entry, error)
	Clear() error
}

// FileManager implements Manager using a JSON file for storage.
// Entries are stored in append order and rotated once they exceed maxEntries.
type FileManager struct {
	filePath   string
	maxEntries int
	mu         sync.Mutex
}

// NewFileManager creates a new FileManager with the specified file path and max entries.
func NewFileManager(filePath string, maxEntries int) *FileManager {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &FileManager{
		filePath:   filePath,
		maxEntries: maxEntries,
	}
}

// Save appends a new entry to the history file, filling in the ID and
// creation time when missing and dropping the oldest entries once the
// file exceeds maxEntries. A corrupt history file is discarded rather
// than blocking the save.
func (m *FileManager) Save(entry *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	entries, err := m.load()
	if err != nil {
		if !errors.Is(err, ErrCorrupt) {
			return fmt.Errorf("failed to load history: %w", err)
		}
		// A damaged file should not block new summaries; start over.
		entries = nil
	}

	entries = append(entries, entry)
	if excess := len(entries) - m.maxEntries; excess > 0 {
		entries = entries[excess:]
	}

	return m.persist(entries)
}

// List returns recorded summaries, newest first. A positive limit caps
// the result to the most recent entries; zero or negative returns all.
func (m *FileManager) List(limit int) ([]*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := m.load()
	if err != nil {
		return nil, err
	}

	n := len(entries)
	if limit > 0 && limit < n {
		n = limit
	}

	// Entries are stored in append order, so walk backwards.
	out := make([]*Entry, 0, n)
	for i := len(entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}

// Clear removes all recorded summaries.
func (m *FileManager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.persist([]*Entry{})
}

// load reads the history file. A missing file yields an empty history;
// an unparseable one yields an error wrapping ErrCorrupt.
func (m *FileManager) load() ([]*Entry, error) {
	data, err := os.ReadFile(m.filePath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var entries []*Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return entries, nil
}

// persist writes the full entry list back to disk.
func (m *FileManager) persist(entries []*Entry) error {
	if err := os.MkdirAll(filepath.Dir(m.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	// Summaries may quote private commit subjects, keep the file user-only.
	if err := os.WriteFile(m.filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}
