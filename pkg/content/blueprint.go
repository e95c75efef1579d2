package content

import (
	"fmt"

	"github.com/EKINSOL-DEV/crewhub-sub011/internal/errors"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/registry"
)

// Grid size limits for room blueprints, in cells.
const (
	MinGridSize = 4
	MaxGridSize = 40
)

// Placement puts one prop instance on a blueprint's floor grid.
type Placement struct {
	PropID string `json:"propId"`
	X      int    `json:"x"`
	Y      int    `json:"y"`

	// Rotation is in degrees: 0, 90, 180, or 270.
	Rotation int `json:"rotation"`
}

// Blueprint describes one room layout: a floor grid plus prop placements.
type Blueprint struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	RoomID     string      `json:"roomId,omitempty"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Placements []Placement `json:"placements,omitempty"`
}

// ValidateBlueprint checks bp against the catalog. Structural problems
// (bad grid, out-of-bounds placements, bad rotations) are errors. A
// placement referencing a prop id the catalog does not know yields a
// warning, not an error: custom props may be registered by mods after the
// blueprint.
func ValidateBlueprint(c *Catalog, bp Blueprint) ([]string, error) {
	if bp.ID == "" || bp.Name == "" {
		return nil, errors.New("E203").WithDetail("Blueprint id and name are required")
	}
	if bp.Width < MinGridSize || bp.Width > MaxGridSize ||
		bp.Height < MinGridSize || bp.Height > MaxGridSize {
		return nil, errors.New("E200").WithDetail(fmt.Sprintf(
			"Blueprint %s grid is %dx%d, allowed range is %d..%d",
			bp.ID, bp.Width, bp.Height, MinGridSize, MaxGridSize))
	}

	var warnings []string
	for i, pl := range bp.Placements {
		if pl.X < 0 || pl.X >= bp.Width || pl.Y < 0 || pl.Y >= bp.Height {
			return nil, errors.New("E201").WithDetail(fmt.Sprintf(
				"Placement %d (%s) at (%d,%d) is outside the %dx%d grid",
				i, pl.PropID, pl.X, pl.Y, bp.Width, bp.Height))
		}
		switch pl.Rotation {
		case 0, 90, 180, 270:
		default:
			return nil, errors.New("E202").WithDetail(fmt.Sprintf(
				"Placement %d (%s) has rotation %d", i, pl.PropID, pl.Rotation))
		}
		if !c.Props.Has(pl.PropID) {
			warnings = append(warnings, fmt.Sprintf("unknown prop id %q", pl.PropID))
		}
	}
	return warnings, nil
}

// PropUsage summarizes placements of one prop inside one blueprint.
type PropUsage struct {
	BlueprintID   string `json:"blueprintId"`
	BlueprintName string `json:"blueprintName"`
	RoomID        string `json:"roomId,omitempty"`
	InstanceCount int    `json:"instanceCount"`
}

// FindPropUsage returns the blueprints that place propID, with instance
// counts, in blueprint registration order.
func (c *Catalog) FindPropUsage(propID string) []PropUsage {
	var usages []PropUsage
	for _, entry := range c.Blueprints.List() {
		count := 0
		for _, pl := range entry.Data.Placements {
			if pl.PropID == propID {
				count++
			}
		}
		if count > 0 {
			usages = append(usages, PropUsage{
				BlueprintID:   entry.Data.ID,
				BlueprintName: entry.Data.Name,
				RoomID:        entry.Data.RoomID,
				InstanceCount: count,
			})
		}
	}
	return usages
}

// CascadeDeleteProp unregisters propID and strips its placements from
// every blueprint that referenced it. Modified blueprints are
// re-registered with their existing provenance, so subscribers observe
// each change. It returns the number of placement instances removed and
// whether the prop itself existed.
func (c *Catalog) CascadeDeleteProp(propID string) (int, bool) {
	removed := 0
	for _, entry := range c.Blueprints.List() {
		kept := entry.Data.Placements[:0:0]
		for _, pl := range entry.Data.Placements {
			if pl.PropID == propID {
				removed++
				continue
			}
			kept = append(kept, pl)
		}
		if len(kept) == len(entry.Data.Placements) {
			continue
		}
		bp := entry.Data
		bp.Placements = kept
		opts := []registry.Option{registry.WithSource(entry.Source)}
		if entry.Source == registry.SourceMod {
			opts = []registry.Option{registry.AsMod(entry.ModID)}
		}
		c.Blueprints.Register(entry.ID, bp, opts...)
	}
	return removed, c.Props.Unregister(propID)
}
