package modkit

import (
	"encoding/json"
	"fmt"

	"github.com/EKINSOL-DEV/crewhub-sub011/internal/errors"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/content"
)

// SupportedManifestVersion is the manifest schema version this build reads.
const SupportedManifestVersion = 1

// Manifest is a mod pack descriptor.
type Manifest struct {
	ManifestVersion int    `json:"manifestVersion"`
	ModID           string `json:"modId"`
	Name            string `json:"name,omitempty"`
	Version         string `json:"version,omitempty"`

	Props        []content.Prop        `json:"props,omitempty"`
	Environments []content.Environment `json:"environments,omitempty"`
	Blueprints   []content.Blueprint   `json:"blueprints,omitempty"`
}

// ParseManifest decodes a manifest from JSON.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.New("E301").Wrap(err)
	}
	if m.ManifestVersion != SupportedManifestVersion {
		return nil, errors.New("E301").WithDetail(fmt.Sprintf(
			"Manifest version %d is not supported (expected %d)",
			m.ManifestVersion, SupportedManifestVersion))
	}
	return &m, nil
}

// EntryCount returns how many registry entries the manifest contributes.
func (m *Manifest) EntryCount() int {
	return len(m.Props) + len(m.Environments) + len(m.Blueprints)
}

// Validate checks the manifest against the catalog without registering
// anything. It returns validation warnings (unknown prop references in
// blueprints, excluding props the manifest itself supplies) and the first
// hard error found.
func (m *Manifest) Validate(c *content.Catalog) ([]string, error) {
	if m.ModID == "" {
		return nil, errors.New("E301").WithDetail("Manifest has no modId")
	}
	if m.EntryCount() == 0 {
		return nil, errors.New("E301").WithDetail("Manifest " + m.ModID + " contributes no content")
	}

	seen := make(map[string]bool)
	dup := func(kind content.Kind, id string) error {
		key := string(kind) + "/" + id
		if seen[key] {
			return errors.New("E301").WithDetail(fmt.Sprintf(
				"Manifest %s declares %s %q twice", m.ModID, kind, id))
		}
		seen[key] = true
		return nil
	}

	ownProps := make(map[string]bool, len(m.Props))
	for _, p := range m.Props {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if err := dup(content.KindProps, p.ID); err != nil {
			return nil, err
		}
		ownProps[p.ID] = true
	}
	for _, e := range m.Environments {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if err := dup(content.KindEnvironments, e.ID); err != nil {
			return nil, err
		}
	}

	var warnings []string
	for _, bp := range m.Blueprints {
		if err := dup(content.KindBlueprints, bp.ID); err != nil {
			return nil, err
		}
		bpWarnings, err := content.ValidateBlueprint(c, bp)
		if err != nil {
			return nil, err
		}
		for _, w := range bpWarnings {
			// A blueprint may reference props shipped in this same
			// manifest; those resolve once the mod is loaded.
			if resolvedByManifest(w, ownProps) {
				continue
			}
			warnings = append(warnings, bp.ID+": "+w)
		}
	}
	return warnings, nil
}

// resolvedByManifest reports whether the unknown-prop warning names a prop
// the manifest itself supplies.
func resolvedByManifest(warning string, ownProps map[string]bool) bool {
	for id := range ownProps {
		if warning == fmt.Sprintf("unknown prop id %q", id) {
			return true
		}
	}
	return false
}
