package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/EKINSOL-DEV/crewhub-sub011/internal/errors"
	"github.com/EKINSOL-DEV/crewhub-sub011/internal/library"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/content"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/registry"
)

// creatorModID tags API registrations that have no library to persist to.
const creatorModID = "creator"

func (s *Server) contentKind(r *http.Request) (content.Kind, error) {
	kind := content.Kind(chi.URLParam(r, "kind"))
	if !content.ValidKind(kind) {
		return "", errors.New("E100").WithDetail(fmt.Sprintf("No registry for kind %q", kind))
	}
	return kind, nil
}

func (s *Server) handleListContent(w http.ResponseWriter, r *http.Request) {
	kind, err := s.contentKind(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	source := registry.Source(r.URL.Query().Get("source"))
	switch source {
	case "", registry.SourceBuiltin, registry.SourceMod:
	default:
		respondJSON(w, http.StatusBadRequest, errorBody{Error: `source must be "builtin" or "mod"`})
		return
	}

	switch kind {
	case content.KindProps:
		respondJSON(w, http.StatusOK, listEntries(s.catalog.Props, source))
	case content.KindEnvironments:
		respondJSON(w, http.StatusOK, listEntries(s.catalog.Environments, source))
	case content.KindBlueprints:
		respondJSON(w, http.StatusOK, listEntries(s.catalog.Blueprints, source))
	}
}

// listEntries applies the optional source filter on one registry.
func listEntries[T any](r *registry.Registry[T], source registry.Source) []registry.Entry[T] {
	if source == "" {
		return r.List()
	}
	return r.ListBySource(source)
}

func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	kind, err := s.contentKind(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	id := chi.URLParam(r, "id")

	var (
		entry any
		ok    bool
	)
	switch kind {
	case content.KindProps:
		entry, ok = s.catalog.Props.GetEntry(id)
	case content.KindEnvironments:
		entry, ok = s.catalog.Environments.GetEntry(id)
	case content.KindBlueprints:
		entry, ok = s.catalog.Blueprints.GetEntry(id)
	}
	if !ok {
		s.respondError(w, errors.New("E101").WithDetail(fmt.Sprintf("No %s entry %q", kind, id)))
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// handleRegisterContent registers creator content. Everything arriving
// through the API is mod-sourced; builtin provenance is reserved for the
// startup seed.
func (s *Server) handleRegisterContent(w http.ResponseWriter, r *http.Request) {
	kind, err := s.contentKind(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	modID := r.URL.Query().Get("mod")

	switch kind {
	case content.KindProps:
		var p content.Prop
		if err := decodeBody(r, &p); err != nil {
			s.respondError(w, err)
			return
		}
		if err := p.Validate(); err != nil {
			s.respondError(w, err)
			return
		}
		if modID == "" {
			modID = creatorModID
			if s.lib != nil {
				modID = library.ModID
			}
		}
		if s.lib != nil && modID == library.ModID {
			if err := s.lib.Add(p); err != nil {
				s.respondError(w, err)
				return
			}
		}
		s.catalog.Props.Register(p.ID, p, registry.AsMod(modID))
		respondJSON(w, http.StatusCreated, map[string]any{"id": p.ID, "modId": modID})

	case content.KindEnvironments:
		var e content.Environment
		if err := decodeBody(r, &e); err != nil {
			s.respondError(w, err)
			return
		}
		if err := e.Validate(); err != nil {
			s.respondError(w, err)
			return
		}
		if modID == "" {
			modID = creatorModID
		}
		s.catalog.Environments.Register(e.ID, e, registry.AsMod(modID))
		respondJSON(w, http.StatusCreated, map[string]any{"id": e.ID, "modId": modID})

	case content.KindBlueprints:
		var bp content.Blueprint
		if err := decodeBody(r, &bp); err != nil {
			s.respondError(w, err)
			return
		}
		warnings, err := content.ValidateBlueprint(s.catalog, bp)
		if err != nil {
			s.respondError(w, err)
			return
		}
		if modID == "" {
			modID = creatorModID
		}
		s.catalog.Blueprints.Register(bp.ID, bp, registry.AsMod(modID))
		respondJSON(w, http.StatusCreated, map[string]any{
			"id": bp.ID, "modId": modID, "warnings": warnings,
		})
	}
}

func (s *Server) handleDeleteContent(w http.ResponseWriter, r *http.Request) {
	kind, err := s.contentKind(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	id := chi.URLParam(r, "id")

	var (
		entrySource registry.Source
		entryModID  string
		found       bool
	)
	switch kind {
	case content.KindProps:
		if e, ok := s.catalog.Props.GetEntry(id); ok {
			entrySource, entryModID, found = e.Source, e.ModID, true
		}
	case content.KindEnvironments:
		if e, ok := s.catalog.Environments.GetEntry(id); ok {
			entrySource, entryModID, found = e.Source, e.ModID, true
		}
	case content.KindBlueprints:
		if e, ok := s.catalog.Blueprints.GetEntry(id); ok {
			entrySource, entryModID, found = e.Source, e.ModID, true
		}
	}
	if !found {
		s.respondError(w, errors.New("E101").WithDetail(fmt.Sprintf("No %s entry %q", kind, id)))
		return
	}
	if entrySource == registry.SourceBuiltin {
		s.respondError(w, errors.New("E102").WithDetail(fmt.Sprintf("%s/%s is built-in content", kind, id)))
		return
	}

	if kind == content.KindProps {
		s.deleteProp(w, r, id, entryModID)
		return
	}

	switch kind {
	case content.KindEnvironments:
		s.catalog.Environments.Unregister(id)
	case content.KindBlueprints:
		s.catalog.Blueprints.Unregister(id)
	}
	respondJSON(w, http.StatusOK, map[string]any{"removed": true})
}

// deleteProp refuses to delete a prop still placed in blueprints unless
// the caller asks for a cascade, which strips the placements too.
func (s *Server) deleteProp(w http.ResponseWriter, r *http.Request, id, modID string) {
	cascade := r.URL.Query().Get("cascade") == "1" || r.URL.Query().Get("cascade") == "true"

	usage := s.catalog.FindPropUsage(id)
	if len(usage) > 0 && !cascade {
		s.respondError(w, errors.New("E104").
			WithDetail(fmt.Sprintf("Prop %q is placed in %d blueprint(s)", id, len(usage))).
			WithSuggestion("Retry with ?cascade=1 to strip the placements"))
		return
	}

	instances := 0
	if cascade {
		instances, _ = s.catalog.CascadeDeleteProp(id)
	} else {
		s.catalog.Props.Unregister(id)
	}

	if s.lib != nil && modID == library.ModID {
		if _, err := s.lib.Remove(id); err != nil {
			s.logger.Error("library removal failed", "prop", id, "error", err)
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"removed":            true,
		"instancesRemoved":   instances,
		"affectedBlueprints": len(usage),
	})
}

func (s *Server) handlePropUsage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	usage := s.catalog.FindPropUsage(id)
	if usage == nil {
		usage = []content.PropUsage{}
	}
	respondJSON(w, http.StatusOK, usage)
}
