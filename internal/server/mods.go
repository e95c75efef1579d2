package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/EKINSOL-DEV/crewhub-sub011/internal/errors"
)

type installRequest struct {
	Source   string `json:"source"`
	Checksum string `json:"checksum,omitempty"`
}

func (s *Server) handleListMods(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.loader.Installed())
}

func (s *Server) handleInstallMod(w http.ResponseWriter, r *http.Request) {
	if s.fetcher == nil {
		s.respondError(w, errors.New("E305").WithDetail("Mod installation is disabled on this server"))
		return
	}

	var req installRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	if req.Source == "" {
		s.respondError(w, errors.New("E500").WithDetail("source is required"))
		return
	}

	manifest, err := s.fetcher.FetchManifest(r.Context(), req.Source, req.Checksum)
	if err != nil {
		s.respondError(w, err)
		return
	}
	info, warnings, err := s.loader.Load(manifest)
	if err != nil {
		s.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"mod":      info,
		"warnings": warnings,
	})
}

func (s *Server) handleRemoveMod(w http.ResponseWriter, r *http.Request) {
	modID := chi.URLParam(r, "modID")
	removed, err := s.loader.Unload(modID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"modId": modID, "entriesRemoved": removed})
}
