package tui

import "github.com/skyportal/prefsgen/pkg/dialog"

// OutputFormat selects how Render serialises the collected payload.
type OutputFormat string

const (
	OutputFormatJSON           OutputFormat = "json"
	OutputFormatFormURLEncoded OutputFormat = "form"
	OutputFormatPrettyText     OutputFormat = "pretty"
)

// Option customises the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver swaps the survey-backed driver, mainly for tests.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the serialization format for the payload.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		switch format {
		case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
			r.outputFormat = format
		}
	}
}

// WithSubmitFunc forwards the submission payload to the supplied callback in
// addition to serialising it, so a session can feed a preferences store
// directly.
func WithSubmitFunc(fn dialog.SubmitFunc) Option {
	return func(r *Renderer) {
		r.onSubmit = fn
	}
}
