package content

import (
	"github.com/EKINSOL-DEV/crewhub-sub011/internal/errors"
)

// Environment describes a world background: sky, floor, and lighting.
type Environment struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// SkyColor and FloorColor are CSS-style color strings.
	SkyColor   string `json:"skyColor"`
	FloorColor string `json:"floorColor"`

	// AmbientIntensity scales the ambient light, 0..1.
	AmbientIntensity float64 `json:"ambientIntensity"`
}

// Validate checks required fields and value ranges.
func (e Environment) Validate() error {
	if e.ID == "" {
		return errors.New("E103").WithDetail("Environment id must not be empty")
	}
	if e.Name == "" {
		return errors.New("E103").WithDetail("Environment " + e.ID + " has no display name")
	}
	if e.AmbientIntensity < 0 || e.AmbientIntensity > 1 {
		return errors.New("E103").WithDetail("Environment " + e.ID + " ambient intensity must be within 0..1")
	}
	return nil
}
