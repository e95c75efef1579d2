package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/EKINSOL-DEV/crewhub-sub011/internal/library"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/content"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/modkit"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/registry"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) (*Server, *content.Catalog) {
	t.Helper()

	c := content.NewCatalog()
	content.RegisterBuiltins(c)

	lib, err := library.Open(filepath.Join(t.TempDir(), "library.json"), testLogger())
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}

	s := New(Options{
		Catalog:  c,
		Loader:   modkit.NewLoader(c, testLogger()),
		Library:  lib,
		Logger:   testLogger(),
		Registry: prometheus.NewRegistry(),
		Metrics:  true,
	})
	t.Cleanup(s.Close)
	return s, c
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResponse[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestListContent(t *testing.T) {
	s, c := newTestServer(t)
	h := s.Handler()

	rec := doJSON(t, h, http.MethodGet, "/api/content/props", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	entries := decodeResponse[[]registry.Entry[content.Prop]](t, rec)
	if len(entries) != c.Props.Len() {
		t.Errorf("listed %d props, registry has %d", len(entries), c.Props.Len())
	}
}

func TestListContentUnknownKind(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/content/vehicles", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := decodeResponse[errorBody](t, rec)
	if body.Code != "E100" {
		t.Errorf("code = %q, want E100", body.Code)
	}
}

func TestListContentSourceFilter(t *testing.T) {
	s, c := newTestServer(t)
	h := s.Handler()

	c.Props.Register("mod-lamp", content.Prop{ID: "mod-lamp", Name: "Lamp", Category: content.CategoryDecoration}, registry.AsMod("pack"))

	rec := doJSON(t, h, http.MethodGet, "/api/content/props?source=mod", nil)
	entries := decodeResponse[[]registry.Entry[content.Prop]](t, rec)
	if len(entries) != 1 || entries[0].ID != "mod-lamp" {
		t.Fatalf("mod entries = %+v, want just mod-lamp", entries)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/content/props?source=bogus", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bogus source status = %d, want 400", rec.Code)
	}
}

func TestGetContent(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := doJSON(t, h, http.MethodGet, "/api/content/props/desk-small", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	entry := decodeResponse[registry.Entry[content.Prop]](t, rec)
	if entry.ID != "desk-small" || entry.Source != registry.SourceBuiltin {
		t.Errorf("entry = %+v, want builtin desk-small", entry)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/content/props/no-such", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing prop status = %d, want 404", rec.Code)
	}
	if body := decodeResponse[errorBody](t, rec); body.Code != "E101" {
		t.Errorf("code = %q, want E101", body.Code)
	}
}

func TestRegisterProp(t *testing.T) {
	s, c := newTestServer(t)
	h := s.Handler()

	p := content.Prop{ID: "neon-desk", Name: "Neon Desk", Category: content.CategoryFurniture,
		Footprint: content.Footprint{Width: 2, Depth: 1}}
	rec := doJSON(t, h, http.MethodPost, "/api/content/props", p)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	entry, ok := c.Props.GetEntry("neon-desk")
	if !ok {
		t.Fatal("prop not in registry after POST")
	}
	if entry.Source != registry.SourceMod || entry.ModID != library.ModID {
		t.Errorf("provenance = %s/%s, want mod/%s", entry.Source, entry.ModID, library.ModID)
	}
	// A configured library persists API-registered props.
	if s.lib.Len() != 1 {
		t.Errorf("library has %d props, want 1", s.lib.Len())
	}
}

func TestRegisterPropInvalid(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/content/props",
		content.Prop{Name: "No ID"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeResponse[errorBody](t, rec); body.Code != "E103" {
		t.Errorf("code = %q, want E103", body.Code)
	}
}

func TestRegisterBlueprintReportsWarnings(t *testing.T) {
	s, _ := newTestServer(t)

	bp := content.Blueprint{
		ID: "wip-room", Name: "WIP", RoomID: "r1", Width: 10, Height: 10,
		Placements: []content.Placement{{PropID: "prop-from-future-mod", X: 1, Y: 1}},
	}
	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/content/blueprints", bp)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse[struct {
		Warnings []string `json:"warnings"`
	}](t, rec)
	if len(resp.Warnings) != 1 {
		t.Errorf("warnings = %v, want one unknown-prop warning", resp.Warnings)
	}
}

func TestDeleteBuiltinForbidden(t *testing.T) {
	s, c := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodDelete, "/api/content/props/desk-small", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if body := decodeResponse[errorBody](t, rec); body.Code != "E102" {
		t.Errorf("code = %q, want E102", body.Code)
	}
	if !c.Props.Has("desk-small") {
		t.Error("builtin prop removed despite 403")
	}
}

func TestDeletePlacedPropNeedsCascade(t *testing.T) {
	s, c := newTestServer(t)
	h := s.Handler()

	c.Props.Register("mod-chair", content.Prop{ID: "mod-chair", Name: "Chair", Category: content.CategoryFurniture}, registry.AsMod("pack"))
	c.Blueprints.Register("mod-room", content.Blueprint{
		ID: "mod-room", Name: "Room", RoomID: "r1", Width: 10, Height: 10,
		Placements: []content.Placement{
			{PropID: "mod-chair", X: 1, Y: 1},
			{PropID: "mod-chair", X: 2, Y: 1},
		},
	}, registry.AsMod("pack"))

	rec := doJSON(t, h, http.MethodDelete, "/api/content/props/mod-chair", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if body := decodeResponse[errorBody](t, rec); body.Code != "E104" {
		t.Errorf("code = %q, want E104", body.Code)
	}
	if !c.Props.Has("mod-chair") {
		t.Fatal("prop removed without cascade")
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/content/props/mod-chair?cascade=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cascade status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse[struct {
		InstancesRemoved int `json:"instancesRemoved"`
	}](t, rec)
	if resp.InstancesRemoved != 2 {
		t.Errorf("instancesRemoved = %d, want 2", resp.InstancesRemoved)
	}
	if c.Props.Has("mod-chair") {
		t.Error("prop still registered after cascade delete")
	}
	bp, _ := c.Blueprints.Get("mod-room")
	if len(bp.Placements) != 0 {
		t.Errorf("blueprint still has %d placements", len(bp.Placements))
	}
}

func TestPropUsage(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/content/props/chair/usage", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	usage := decodeResponse[[]content.PropUsage](t, rec)
	if len(usage) == 0 {
		t.Fatal("chair should be placed in builtin blueprints")
	}

	rec = doJSON(t, s.Handler(), http.MethodGet, "/api/content/props/unused/usage", nil)
	if got := decodeResponse[[]content.PropUsage](t, rec); len(got) != 0 {
		t.Errorf("usage for unknown prop = %v, want empty", got)
	}
}

func TestModsEndpoints(t *testing.T) {
	s, c := newTestServer(t)
	h := s.Handler()

	manifest := &modkit.Manifest{
		ManifestVersion: modkit.SupportedManifestVersion,
		ModID:           "test-pack",
		Name:            "Test Pack",
		Props: []content.Prop{
			{ID: "tp-plant", Name: "Plant", Category: content.CategoryDecoration,
				Footprint: content.Footprint{Width: 1, Depth: 1}},
		},
	}
	if _, _, err := s.loader.Load(manifest); err != nil {
		t.Fatalf("Load: %v", err)
	}

	rec := doJSON(t, h, http.MethodGet, "/api/mods/", nil)
	mods := decodeResponse[[]modkit.ModInfo](t, rec)
	if len(mods) != 1 || mods[0].ModID != "test-pack" {
		t.Fatalf("mods = %+v, want test-pack", mods)
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/mods/test-pack", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unload status = %d", rec.Code)
	}
	if c.Props.Has("tp-plant") {
		t.Error("mod prop survives unload")
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/mods/test-pack", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("double unload status = %d, want 404", rec.Code)
	}
}

func TestInstallModWithoutFetcher(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/mods/",
		installRequest{Source: "https://example.com/pack.json"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeResponse[errorBody](t, rec); body.Code != "E305" {
		t.Errorf("code = %q, want E305", body.Code)
	}
}

func TestHealthz(t *testing.T) {
	s, c := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	health := decodeResponse[map[string]any](t, rec)
	if health["status"] != "ok" {
		t.Errorf("status = %v", health["status"])
	}
	if int(health["props"].(float64)) != c.Props.Len() {
		t.Errorf("props = %v, want %d", health["props"], c.Props.Len())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, c := newTestServer(t)
	h := s.Handler()

	c.Props.Register("metric-prop", content.Prop{ID: "metric-prop", Name: "P", Category: content.CategoryTech}, registry.AsMod("pack"))

	rec := doJSON(t, h, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"crewhub_registry_entries",
		"crewhub_registry_mutations_total",
		`crewhub_registry_entries{kind="props",source="mod"} 1`,
	} {
		if !bytes.Contains([]byte(body), []byte(want)) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
