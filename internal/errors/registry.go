package errors

// Template defines a registered error type.
type Template struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Description Errors (E100-E199)
	// ============================================

	"E101": {
		Category:   CategoryDescription,
		Message:    "Unsupported descriptor kind",
		Suggestion: "Build descriptors with the vdom helpers; raw values other than strings and numbers are not children.",
	},
	"E102": {
		Category:   CategoryDescription,
		Message:    "Slot descriptors are not supported",
		Suggestion: "Pass slot content as component children instead of a slot marker.",
	},
	"E103": {
		Category: CategoryDescription,
		Message:  "Component descriptor has no render source",
	},
	"E199": {
		Category: CategoryInvariant,
		Message:  "Reconciler invariant violated",
	},

	// ============================================
	// Expansion Errors (E200-E299)
	// ============================================

	"E201": {
		Category: CategoryExpansion,
		Message:  "Component expansion failed",
	},
	"E202": {
		Category:   CategoryExpansion,
		Message:    "Component nesting too deep",
		Suggestion: "Check for a component that renders itself unconditionally.",
	},

	// ============================================
	// Journal Errors (E300-E399)
	// ============================================

	"E301": {
		Category: CategoryJournal,
		Message:  "Unknown journal opcode",
	},
	"E302": {
		Category: CategoryJournal,
		Message:  "Malformed journal entry",
	},
	"E303": {
		Category: CategoryJournal,
		Message:  "Malformed binary journal frame",
	},

	// ============================================
	// Config / CLI Errors (E400-E499)
	// ============================================

	"E401": {
		Category: CategoryConfig,
		Message:  "Failed to load configuration",
	},
	"E402": {
		Category: CategoryCLI,
		Message:  "Failed to parse input document",
	},
	"E403": {
		Category:   CategoryCLI,
		Message:    "Unknown output format",
		Suggestion: "Use one of: text, json, yaml.",
	},
}

// Codes returns all registered error codes.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// Lookup returns the template for an error code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
