// Package history keeps the list of previously entered command lines and
// persists it between sessions.
package history

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// DefaultLimit is the number of entries kept when no limit is configured.
const DefaultLimit = 1000

// Store is an in-memory history list backed by a file.
type Store struct {
	fs    afero.Fs
	path  string
	limit int

	mu      sync.Mutex
	entries []string
}

// New creates an empty store on fs keeping at most limit entries. Non-positive
// limits use DefaultLimit.
func New(fs afero.Fs, limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{fs: fs, limit: limit}
}

// Init sets the history file and loads any entries already in it. A missing
// file is not an error.
func (s *Store) Init(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.path = path
	s.entries = nil

	data, err := afero.ReadFile(s.fs, path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return err
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		s.appendLocked(scanner.Text())
	}
	return scanner.Err()
}

// Path returns the history file, empty before Init.
func (s *Store) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Add records line. Blank lines and repeats of the latest entry are skipped.
// It reports whether the line was recorded.
func (s *Store) Add(line string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(line)
}

func (s *Store) appendLocked(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	if n := len(s.entries); n > 0 && s.entries[n-1] == line {
		return false
	}

	s.entries = append(s.entries, line)
	if over := len(s.entries) - s.limit; over > 0 {
		s.entries = append([]string(nil), s.entries[over:]...)
	}
	return true
}

// Entries returns a copy of the history, oldest first.
func (s *Store) Entries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.entries...)
}

// Clear drops every entry. The file is rewritten on the next Save.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// Save writes the history to its file, one entry per line. It does nothing
// before Init.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return nil
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	for _, entry := range s.entries {
		buf.WriteString(entry)
		buf.WriteByte('\n')
	}

	return afero.WriteFile(s.fs, s.path, buf.Bytes(), 0600)
}

// DefaultPath returns the history file used when none is configured.
func DefaultPath() string {
	const name = ".minishell_history"
	home, ok := os.LookupEnv("HOME")
	if !ok || home == "" {
		return name
	}
	return filepath.Join(home, name)
}
