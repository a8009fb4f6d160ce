package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the schema pipeline.
type RenderOptions struct {
	// Values pre-populates rendered controls using dotted field paths (e.g.
	// "notifications.includeCommentsFromBots"), overriding schema defaults.
	Values map[string]any
	// Errors surfaces validation feedback keyed by field path, typically the
	// "Required" messages from a rejected submit. Renderers map these into
	// inline chrome next to the offending control.
	Errors map[string][]string
}
