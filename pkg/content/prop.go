package content

import (
	"github.com/EKINSOL-DEV/crewhub-sub011/internal/errors"
)

// Category groups props for the world editor palette.
type Category string

const (
	CategoryFurniture   Category = "furniture"
	CategoryTech        Category = "tech"
	CategoryDecoration  Category = "decoration"
	CategoryKitchen     Category = "kitchen"
	CategoryInteraction Category = "interaction"
)

// Part is one primitive shape in a prop's model.
type Part struct {
	// Shape is the primitive kind: "box", "cylinder", "sphere", "cone".
	Shape string `json:"shape"`

	// Color is a CSS-style color string, e.g. "#8b5a2b".
	Color string `json:"color"`

	// Offset is the part's position relative to the prop origin.
	Offset [3]float64 `json:"offset"`

	// Size is the part's extent per axis.
	Size [3]float64 `json:"size"`
}

// Footprint is the floor area a prop occupies, in grid cells.
type Footprint struct {
	Width int `json:"width"`
	Depth int `json:"depth"`
}

// Prop describes one placeable office object.
type Prop struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	Footprint Footprint `json:"footprint"`
	Parts     []Part    `json:"parts,omitempty"`
}

// Validate checks the fields the registry itself never inspects.
func (p Prop) Validate() error {
	if p.ID == "" {
		return errors.New("E103").WithDetail("Prop id must not be empty")
	}
	if p.Name == "" {
		return errors.New("E103").WithDetail("Prop " + p.ID + " has no display name")
	}
	switch p.Category {
	case CategoryFurniture, CategoryTech, CategoryDecoration, CategoryKitchen, CategoryInteraction:
	default:
		return errors.New("E103").WithDetail("Prop " + p.ID + " has unknown category " + string(p.Category))
	}
	if p.Footprint.Width < 1 || p.Footprint.Depth < 1 {
		return errors.New("E103").WithDetail("Prop " + p.ID + " footprint must be at least 1x1")
	}
	return nil
}

// RemapColors returns a copy of the prop with part colors replaced per the
// {old: new} mapping. Parts whose color has no mapping are untouched. The
// caller must re-register the result; mutating a registered prop in place
// would bypass change notification.
func (p Prop) RemapColors(changes map[string]string) Prop {
	if len(changes) == 0 || len(p.Parts) == 0 {
		return p
	}
	parts := make([]Part, len(p.Parts))
	copy(parts, p.Parts)
	for i := range parts {
		if next, ok := changes[parts[i].Color]; ok {
			parts[i].Color = next
		}
	}
	p.Parts = parts
	return p
}
