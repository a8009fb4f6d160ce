// Package orchestrator wires schema conversion, overlay decoration, and
// renderer selection into a single Generate call.
package orchestrator
