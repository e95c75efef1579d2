package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Content Errors (E100-E199)
	// ============================================

	"E100": {
		Category: CategoryContent,
		Message:  "Unknown content kind",
		Detail:   "The catalog has no registry for this content kind. Valid kinds are props, environments, and blueprints.",
		DocURL:   "https://crewhub.dev/docs/errors/E100",
	},
	"E101": {
		Category: CategoryContent,
		Message:  "Content entry not found",
		Detail:   "No entry with this id is registered for the requested content kind.",
		DocURL:   "https://crewhub.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryContent,
		Message:  "Built-in content cannot be removed",
		Detail:   "Only mod-contributed entries may be unregistered through the API. Built-in content lives for the process lifetime.",
		DocURL:   "https://crewhub.dev/docs/errors/E102",
	},
	"E103": {
		Category: CategoryContent,
		Message:  "Invalid content payload",
		Detail:   "The submitted content entry is malformed or missing required fields.",
		DocURL:   "https://crewhub.dev/docs/errors/E103",
	},
	"E104": {
		Category: CategoryContent,
		Message:  "Prop still referenced by blueprints",
		Detail:   "The prop is placed in one or more blueprints. Remove the placements first or request a cascade delete.",
		DocURL:   "https://crewhub.dev/docs/errors/E104",
	},

	// ============================================
	// Blueprint Errors (E200-E299)
	// ============================================

	"E200": {
		Category: CategoryBlueprint,
		Message:  "Blueprint grid size out of range",
		Detail:   "Blueprint grids must be between 4x4 and 40x40 cells.",
		DocURL:   "https://crewhub.dev/docs/errors/E200",
	},
	"E201": {
		Category: CategoryBlueprint,
		Message:  "Placement outside blueprint grid",
		Detail:   "A prop placement references a cell outside the blueprint's grid bounds.",
		DocURL:   "https://crewhub.dev/docs/errors/E201",
	},
	"E202": {
		Category: CategoryBlueprint,
		Message:  "Invalid placement rotation",
		Detail:   "Placement rotations must be one of 0, 90, 180, or 270 degrees.",
		DocURL:   "https://crewhub.dev/docs/errors/E202",
	},
	"E203": {
		Category: CategoryBlueprint,
		Message:  "Malformed blueprint",
		Detail:   "The blueprint is missing required fields (id, name, or grid dimensions).",
		DocURL:   "https://crewhub.dev/docs/errors/E203",
	},

	// ============================================
	// Mod Errors (E300-E399)
	// ============================================

	"E300": {
		Category: CategoryMod,
		Message:  "Mod manifest fetch failed",
		Detail:   "The mod manifest could not be downloaded from its source.",
		DocURL:   "https://crewhub.dev/docs/errors/E300",
	},
	"E301": {
		Category: CategoryMod,
		Message:  "Invalid mod manifest",
		Detail:   "The mod manifest is malformed or fails validation.",
		DocURL:   "https://crewhub.dev/docs/errors/E301",
	},
	"E302": {
		Category: CategoryMod,
		Message:  "Mod already loaded",
		Detail:   "A mod with this id is already loaded. Unload it before loading a new version.",
		DocURL:   "https://crewhub.dev/docs/errors/E302",
	},
	"E303": {
		Category: CategoryMod,
		Message:  "Mod not loaded",
		Detail:   "No mod with this id is currently loaded.",
		DocURL:   "https://crewhub.dev/docs/errors/E303",
	},
	"E304": {
		Category: CategoryMod,
		Message:  "Mod pack checksum mismatch",
		Detail:   "The downloaded mod pack does not match its expected sha256 checksum.",
		DocURL:   "https://crewhub.dev/docs/errors/E304",
	},
	"E305": {
		Category: CategoryMod,
		Message:  "Unsupported mod source",
		Detail:   "Mod packs can be fetched from http(s) URLs, s3:// URLs, or local files.",
		DocURL:   "https://crewhub.dev/docs/errors/E305",
	},

	// ============================================
	// Config Errors (E400-E499)
	// ============================================

	"E400": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No crewhub.json was found in the current directory or any parent.",
		DocURL:   "https://crewhub.dev/docs/errors/E400",
	},
	"E401": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "crewhub.json could not be parsed or contains invalid values.",
		DocURL:   "https://crewhub.dev/docs/errors/E401",
	},
	"E402": {
		Category: CategoryConfig,
		Message:  "Configuration write failed",
		Detail:   "crewhub.json could not be written to disk.",
		DocURL:   "https://crewhub.dev/docs/errors/E402",
	},

	// ============================================
	// API Errors (E500-E599)
	// ============================================

	"E500": {
		Category: CategoryAPI,
		Message:  "Invalid request body",
		Detail:   "The request body could not be decoded as JSON.",
		DocURL:   "https://crewhub.dev/docs/errors/E500",
	},
	"E501": {
		Category: CategoryAPI,
		Message:  "WebSocket upgrade failed",
		Detail:   "The connection could not be upgraded to a WebSocket.",
		DocURL:   "https://crewhub.dev/docs/errors/E501",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
