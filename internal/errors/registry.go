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
	// Composition Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryComposition,
		Message:  "Attribute capacity exceeded",
		Detail:   "More directives were composed through a typed boundary than the boundary's capacity allows. The bound is a single configurable constant; either split the composition across nested components or raise the capacity for this path.",
		DocURL:   "https://attrmerge.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryComposition,
		Message:  "Class list applied to non-leaf target",
		Detail:   "A class-list toggle expands into one class toggle per entry, which is only possible on a concrete leaf element. A component boundary exposes a fixed set of typed slots and cannot absorb an arbitrary-length list.",
		DocURL:   "https://attrmerge.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryComposition,
		Message:  "Interceptor handle already spread",
		Detail:   "An interceptor handle is single-use: its captured bundle transfers ownership to the first Spread call. Spreading it again would alias directives that have already been merged.",
		DocURL:   "https://attrmerge.dev/docs/errors/E003",
	},
	"E004": {
		Category: CategoryComposition,
		Message:  "Bundle already consumed",
		Detail:   "A bundle is owned by exactly one composition target. It was already handed to a composition step; clone it explicitly (via a Spread directive) if it must reach more than one destination.",
		DocURL:   "https://attrmerge.dev/docs/errors/E004",
	},

	// ============================================
	// Protocol Errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryProtocol,
		Message:  "Invalid patch frame",
		Detail:   "The received frame could not be decoded. The inspector client and server may be running different versions.",
		DocURL:   "https://attrmerge.dev/docs/errors/E060",
	},
	"E061": {
		Category: CategoryProtocol,
		Message:  "Unknown patch operation",
		Detail:   "The patch operation code is not recognized.",
		DocURL:   "https://attrmerge.dev/docs/errors/E061",
	},

	// ============================================
	// Configuration Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid inspector configuration",
		Detail:   "The inspector server configuration is invalid. Check the listen address and capacity settings.",
		DocURL:   "https://attrmerge.dev/docs/errors/E120",
	},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Unknown scenario",
		Detail:   "The requested playground scenario is not registered. Run with no arguments to list available scenarios.",
		DocURL:   "https://attrmerge.dev/docs/errors/E140",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
