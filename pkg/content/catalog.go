package content

import (
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/registry"
)

// Kind names one content registry inside a Catalog.
type Kind string

const (
	KindProps        Kind = "props"
	KindEnvironments Kind = "environments"
	KindBlueprints   Kind = "blueprints"
)

// Kinds returns all content kinds in a stable order.
func Kinds() []Kind {
	return []Kind{KindProps, KindEnvironments, KindBlueprints}
}

// ValidKind reports whether kind names a catalog registry.
func ValidKind(kind Kind) bool {
	switch kind {
	case KindProps, KindEnvironments, KindBlueprints:
		return true
	}
	return false
}

// Catalog owns one registry per content kind. A single catalog instance
// is shared by the bootstrap code, the API layer, and the mod loader.
type Catalog struct {
	Props        *registry.Registry[Prop]
	Environments *registry.Registry[Environment]
	Blueprints   *registry.Registry[Blueprint]
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		Props:        registry.New[Prop](),
		Environments: registry.New[Environment](),
		Blueprints:   registry.New[Blueprint](),
	}
}

// Len returns the entry count for the given kind, or 0 for an unknown kind.
func (c *Catalog) Len(kind Kind) int {
	switch kind {
	case KindProps:
		return c.Props.Len()
	case KindEnvironments:
		return c.Environments.Len()
	case KindBlueprints:
		return c.Blueprints.Len()
	}
	return 0
}

// Subscribe attaches fn to every registry in the catalog. The returned
// function detaches it from all of them.
func (c *Catalog) Subscribe(fn func()) func() {
	unsubs := []func(){
		c.Props.Subscribe(fn),
		c.Environments.Subscribe(fn),
		c.Blueprints.Subscribe(fn),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

// RemoveMod removes every entry contributed by modID across all kinds and
// returns the total removed.
func (c *Catalog) RemoveMod(modID string) int {
	return c.Props.RemoveMod(modID) +
		c.Environments.RemoveMod(modID) +
		c.Blueprints.RemoveMod(modID)
}
