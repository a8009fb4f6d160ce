package tui

import "errors"

// ErrAborted is returned when the user interrupts the session (Ctrl-C). It is
// the cancel path of the dialog: edits are discarded and nothing is
// submitted.
var ErrAborted = errors.New("tui: session aborted")
