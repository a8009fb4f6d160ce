// Package uischema loads presentation overlays for preference forms. Overlay
// documents are JSON or YAML files keyed by brand; they carry labels,
// tooltips, placeholders, and entry ordering that the schema itself does not
// express. A Decorator folds a loaded store into a form before rendering.
package uischema
