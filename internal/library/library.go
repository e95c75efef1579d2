// Package library persists creator-saved props to a JSON file and
// replays them into the catalog at startup.
//
// The registries themselves own no durable state; the library is the
// external collaborator that rebuilds mod-sourced registrations after a
// restart. Saved props register under the reserved mod id "library".
package library

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/EKINSOL-DEV/crewhub-sub011/internal/errors"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/content"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/registry"
)

// ModID is the provenance id for library-saved props.
const ModID = "library"

// fileVersion is the library file schema version.
const fileVersion = 1

type libraryFile struct {
	Version int            `json:"version"`
	Props   []content.Prop `json:"props"`
}

// Library is a JSON-file-backed store of saved props.
type Library struct {
	path   string
	logger *slog.Logger

	mu    sync.Mutex
	props []content.Prop
}

// Open loads the library at path. A missing file is an empty library,
// not an error; the file appears on first save.
func Open(path string, logger *slog.Logger) (*Library, error) {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Library{path: path, logger: logger}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, errors.Newf(errors.CategoryContent, "read library %s: %v", path, err)
	}

	var f libraryFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Newf(errors.CategoryContent, "parse library %s: %v", path, err)
	}
	l.props = f.Props
	return l, nil
}

// Props returns a copy of the saved props.
func (l *Library) Props() []content.Prop {
	l.mu.Lock()
	defer l.mu.Unlock()
	props := make([]content.Prop, len(l.props))
	copy(props, l.props)
	return props
}

// Add validates and saves a prop, replacing any saved prop with the same
// id, and writes the file.
func (l *Library) Add(p content.Prop) error {
	if err := p.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	replaced := false
	for i := range l.props {
		if l.props[i].ID == p.ID {
			l.props[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		l.props = append(l.props, p)
	}
	return l.save()
}

// Remove deletes the saved prop with the given id and writes the file.
// Returns false if no such prop was saved.
func (l *Library) Remove(id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.props {
		if l.props[i].ID == id {
			l.props = append(l.props[:i:i], l.props[i+1:]...)
			return true, l.save()
		}
	}
	return false, nil
}

// Len returns the number of saved props.
func (l *Library) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.props)
}

// Seed registers every saved prop in the catalog with library provenance
// and returns the count.
func (l *Library) Seed(c *content.Catalog) int {
	props := l.Props()
	for _, p := range props {
		c.Props.Register(p.ID, p, registry.AsMod(ModID))
	}
	if len(props) > 0 {
		l.logger.Info("library seeded", "props", len(props))
	}
	return len(props)
}

// save writes the library file. Caller holds l.mu.
func (l *Library) save() error {
	data, err := json.MarshalIndent(libraryFile{Version: fileVersion, Props: l.props}, "", "  ")
	if err != nil {
		return errors.Newf(errors.CategoryContent, "encode library: %v", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return errors.Newf(errors.CategoryContent, "create library dir: %v", err)
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return errors.Newf(errors.CategoryContent, "write library %s: %v", l.path, err)
	}
	return nil
}
