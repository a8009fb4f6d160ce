package vanilla

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// themeConfig is the resolved subset of a go-theme renderer configuration the
// dialog markup consumes: name/variant for data attributes and tokens folded
// into CSS custom properties.
type themeConfig struct {
	name       string
	variant    string
	cssVars    map[string]string
	stylesheet string
}

// WithTheme threads a resolved go-theme configuration into the renderer.
// Tokens become --prefs-* CSS variables on the dialog wrapper; when the
// configuration carries an asset resolver, the theme stylesheet is linked.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		if cfg == nil {
			return
		}
		resolved := &themeConfig{
			name:    cfg.Theme,
			variant: cfg.Variant,
			cssVars: make(map[string]string, len(cfg.Tokens)+len(cfg.CSSVars)),
		}
		for key, value := range cfg.Tokens {
			resolved.cssVars["--prefs-"+key] = value
		}
		for key, value := range cfg.CSSVars {
			resolved.cssVars[key] = value
		}
		if cfg.AssetURL != nil {
			resolved.stylesheet = cfg.AssetURL("prefs.css")
		}
		c.theme = resolved
	}
}

func (r *Renderer) themeContext() map[string]any {
	if r.theme == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":         r.theme.name,
		"variant":      r.theme.variant,
		"cssVarsStyle": cssVarsStyle(r.theme.cssVars),
		"stylesheet":   r.theme.stylesheet,
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";")
	}
	return b.String()
}
