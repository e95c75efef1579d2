package modkit

import (
	"log/slog"
	"sync"
	"time"

	"github.com/EKINSOL-DEV/crewhub-sub011/internal/errors"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/content"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/registry"
)

// ModInfo describes one loaded mod.
type ModInfo struct {
	ModID    string    `json:"modId"`
	Name     string    `json:"name,omitempty"`
	Version  string    `json:"version,omitempty"`
	Entries  int       `json:"entries"`
	LoadedAt time.Time `json:"loadedAt"`
}

// Loader tracks loaded mods and moves their content in and out of a
// catalog.
type Loader struct {
	catalog *content.Catalog
	logger  *slog.Logger

	mu     sync.Mutex
	loaded map[string]ModInfo
	order  []string
}

// NewLoader creates a loader over the given catalog.
func NewLoader(catalog *content.Catalog, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		catalog: catalog,
		logger:  logger,
		loaded:  make(map[string]ModInfo),
	}
}

// Load validates the manifest and registers all of its content with the
// mod's provenance. Validation runs before any registration, so a
// rejected manifest leaves the catalog untouched. Returns the loaded mod
// info and any validation warnings.
func (l *Loader) Load(m *Manifest) (ModInfo, []string, error) {
	warnings, err := m.Validate(l.catalog)
	if err != nil {
		return ModInfo{}, nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.loaded[m.ModID]; exists {
		return ModInfo{}, nil, errors.New("E302").WithDetail("Mod " + m.ModID + " is already loaded").
			WithSuggestion("Unload it first, then load the new version")
	}

	tag := registry.AsMod(m.ModID)
	for _, p := range m.Props {
		l.catalog.Props.Register(p.ID, p, tag)
	}
	for _, e := range m.Environments {
		l.catalog.Environments.Register(e.ID, e, tag)
	}
	for _, bp := range m.Blueprints {
		l.catalog.Blueprints.Register(bp.ID, bp, tag)
	}

	info := ModInfo{
		ModID:    m.ModID,
		Name:     m.Name,
		Version:  m.Version,
		Entries:  m.EntryCount(),
		LoadedAt: time.Now(),
	}
	l.loaded[m.ModID] = info
	l.order = append(l.order, m.ModID)

	l.logger.Info("mod loaded",
		"mod", m.ModID, "version", m.Version, "entries", info.Entries, "warnings", len(warnings))
	return info, warnings, nil
}

// Unload removes every entry the mod contributed and forgets it. Entries
// the mod registered but that were since overwritten by another source
// are not touched; removal goes by current provenance.
func (l *Loader) Unload(modID string) (int, error) {
	l.mu.Lock()
	_, exists := l.loaded[modID]
	if !exists {
		l.mu.Unlock()
		return 0, errors.New("E303").WithDetail("Mod " + modID + " is not loaded")
	}
	delete(l.loaded, modID)
	for i, id := range l.order {
		if id == modID {
			l.order = append(l.order[:i:i], l.order[i+1:]...)
			break
		}
	}
	l.mu.Unlock()

	removed := l.catalog.RemoveMod(modID)
	l.logger.Info("mod unloaded", "mod", modID, "removed", removed)
	return removed, nil
}

// Installed returns the loaded mods in load order.
func (l *Loader) Installed() []ModInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	infos := make([]ModInfo, 0, len(l.order))
	for _, id := range l.order {
		infos = append(infos, l.loaded[id])
	}
	return infos
}

// IsLoaded reports whether modID is currently loaded.
func (l *Loader) IsLoaded(modID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.loaded[modID]
	return ok
}
