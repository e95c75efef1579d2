// Package modkit loads and unloads content mods.
//
// A mod is a JSON manifest bundling props, environments, and blueprints.
// Loading a mod registers every entry in the catalog through the same
// Register API builtins use, tagged with the mod's id; unloading removes
// exactly those entries again. Content from a mod may overwrite existing
// ids (last-write-wins, like any other Register call) — provenance, not
// privilege, is what distinguishes mod content.
//
//	manifest, err := modkit.ParseManifest(data)
//	loader := modkit.NewLoader(catalog, logger)
//	info, warnings, err := loader.Load(manifest)
//	...
//	loader.Unload(manifest.ModID)
package modkit
