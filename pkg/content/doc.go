// Package content defines the per-kind content registries for the CrewHub
// virtual office: decorative props, environment backgrounds, and room
// blueprints.
//
// A Catalog bundles one registry per content kind. Construct it during
// application initialization and pass it to the consumers that need it
// (bootstrap code, API layer, creator tooling); there are no package-level
// singletons, so tests can build a fresh catalog each time:
//
//	catalog := content.NewCatalog()
//	content.RegisterBuiltins(catalog)
//
// Built-in content is seeded before first use with provenance
// registry.SourceBuiltin. Mods and creator tooling add entries through the
// same registries with registry.AsMod(modID); nothing about the write path
// is privileged.
package content
