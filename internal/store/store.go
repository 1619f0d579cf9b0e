// Package store persists named macros, one JSON file per macro, mirrored in
// memory for reads.
package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cody-why/mouse-pilot/internal/event"
)

// SavedMacro is a named, ordered sequence of timestamped events.
type SavedMacro struct {
	Name      string        `json:"name"`
	Events    []event.Event `json:"events"`
	CreatedAt int64         `json:"created_at"`
}

// Manager owns the on-disk macro files and an in-memory mirror. Disk errors
// are returned to the caller with the mirror unchanged.
type Manager struct {
	mu     sync.RWMutex
	macros map[string]SavedMacro
	dir    string
}

// NewManager loads all macros from dir eagerly. Files that fail to parse are
// logged and skipped; a missing directory is created.
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create macros directory: %w", err)
	}

	m := &Manager{macros: make(map[string]SavedMacro), dir: dir}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read macros directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("skip macro file %s: %v", path, err)
			continue
		}
		var saved SavedMacro
		if err := json.Unmarshal(data, &saved); err != nil {
			log.Printf("skip macro file %s: %v", path, err)
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		saved.Name = name
		m.macros[name] = saved
	}

	return m, nil
}

// Dir returns the storage directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Save stores a macro under name, overwriting any previous macro of the same
// name. The in-memory mirror is updated only after the file write succeeds.
func (m *Manager) Save(name string, events []event.Event) error {
	saved := SavedMacro{
		Name:      name,
		Events:    events,
		CreatedAt: time.Now().Unix(),
	}

	data, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.path(name), data, 0644); err != nil {
		return err
	}

	m.mu.Lock()
	m.macros[name] = saved
	m.mu.Unlock()
	return nil
}

// Delete removes a macro and its file. Deleting an unknown name is a no-op.
func (m *Manager) Delete(name string) error {
	path := m.path(name)
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return err
		}
	}

	m.mu.Lock()
	delete(m.macros, name)
	m.mu.Unlock()
	return nil
}

// Rename moves a macro to a new name. On any error nothing changes: the new
// file is written first, then the old one removed, then the mirror swapped.
func (m *Manager) Rename(oldName, newName string) error {
	m.mu.RLock()
	saved, ok := m.macros[oldName]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("macro %q not found", oldName)
	}

	renamed := saved
	renamed.Name = newName
	data, err := json.Marshal(renamed)
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.path(newName), data, 0644); err != nil {
		return err
	}
	if err := os.Remove(m.path(oldName)); err != nil {
		os.Remove(m.path(newName))
		return err
	}

	m.mu.Lock()
	delete(m.macros, oldName)
	m.macros[newName] = renamed
	m.mu.Unlock()
	return nil
}

// Get resolves names to macros, preserving the requested order and skipping
// unknown names.
func (m *Manager) Get(names []string) []SavedMacro {
	m.mu.RLock()
	defer m.mu.RUnlock()

	macros := make([]SavedMacro, 0, len(names))
	for _, name := range names {
		if saved, ok := m.macros[name]; ok {
			macros = append(macros, saved)
		}
	}
	return macros
}

// Names returns all macro names, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.macros))
	for name := range m.macros {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exists reports whether a macro is stored under name.
func (m *Manager) Exists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.macros[name]
	return ok
}

// Count returns the number of stored macros.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.macros)
}

func (m *Manager) path(name string) string {
	return filepath.Join(m.dir, name+".json")
}
