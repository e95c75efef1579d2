package content

import (
	"testing"

	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/registry"
)

func TestRegisterBuiltins(t *testing.T) {
	c := NewCatalog()
	RegisterBuiltins(c)

	if c.Props.Len() == 0 || c.Environments.Len() == 0 || c.Blueprints.Len() == 0 {
		t.Fatalf("builtins should seed every kind: props=%d envs=%d blueprints=%d",
			c.Props.Len(), c.Environments.Len(), c.Blueprints.Len())
	}

	for _, id := range []string{"desk-with-monitor", "coffee-machine", "work-point", "server-rack"} {
		if !c.Props.Has(id) {
			t.Errorf("expected builtin prop %q", id)
		}
	}

	// Everything seeded by builtins carries builtin provenance.
	if mods := c.Props.ListBySource(registry.SourceMod); len(mods) != 0 {
		t.Errorf("builtin seeding should not produce mod entries, got %d", len(mods))
	}
}

func TestBuiltinContentIsValid(t *testing.T) {
	c := NewCatalog()
	RegisterBuiltins(c)

	for _, e := range c.Props.List() {
		if err := e.Data.Validate(); err != nil {
			t.Errorf("builtin prop %s invalid: %v", e.ID, err)
		}
	}
	for _, e := range c.Environments.List() {
		if err := e.Data.Validate(); err != nil {
			t.Errorf("builtin environment %s invalid: %v", e.ID, err)
		}
	}
	for _, e := range c.Blueprints.List() {
		warnings, err := ValidateBlueprint(c, e.Data)
		if err != nil {
			t.Errorf("builtin blueprint %s invalid: %v", e.ID, err)
		}
		if len(warnings) != 0 {
			t.Errorf("builtin blueprint %s references unknown props: %v", e.ID, warnings)
		}
	}
}

func TestValidKind(t *testing.T) {
	for _, kind := range Kinds() {
		if !ValidKind(kind) {
			t.Errorf("kind %q should be valid", kind)
		}
	}
	if ValidKind("avatars") {
		t.Error("unknown kind should be invalid")
	}
}

func TestCatalogLen(t *testing.T) {
	c := NewCatalog()
	c.Props.Register("p", Prop{ID: "p"})
	c.Environments.Register("e", Environment{ID: "e"})

	if c.Len(KindProps) != 1 || c.Len(KindEnvironments) != 1 || c.Len(KindBlueprints) != 0 {
		t.Errorf("unexpected counts: %d/%d/%d",
			c.Len(KindProps), c.Len(KindEnvironments), c.Len(KindBlueprints))
	}
	if c.Len("avatars") != 0 {
		t.Error("unknown kind should count 0")
	}
}

func TestCatalogSubscribeSpansAllKinds(t *testing.T) {
	c := NewCatalog()

	calls := 0
	unsub := c.Subscribe(func() { calls++ })

	c.Props.Register("p", Prop{ID: "p"})
	c.Environments.Register("e", Environment{ID: "e"})
	c.Blueprints.Register("b", Blueprint{ID: "b", Name: "B", Width: 4, Height: 4})
	if calls != 3 {
		t.Errorf("expected 3 notifications, got %d", calls)
	}

	unsub()
	c.Props.Register("p2", Prop{ID: "p2"})
	if calls != 3 {
		t.Errorf("unsubscribe should cover all kinds, got %d calls", calls)
	}
}

func TestCatalogRemoveMod(t *testing.T) {
	c := NewCatalog()
	c.Props.Register("p1", Prop{ID: "p1"}, registry.AsMod("pack"))
	c.Props.Register("p2", Prop{ID: "p2"}, registry.AsMod("pack"))
	c.Environments.Register("e1", Environment{ID: "e1"}, registry.AsMod("pack"))
	c.Blueprints.Register("b1", Blueprint{ID: "b1"}, registry.AsMod("other"))

	if n := c.RemoveMod("pack"); n != 3 {
		t.Errorf("expected 3 removals, got %d", n)
	}
	if !c.Blueprints.Has("b1") {
		t.Error("other mod's content should survive")
	}
}
