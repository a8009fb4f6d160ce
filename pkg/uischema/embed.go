package uischema

import (
	"embed"
	"io/fs"
)

//go:embed schemas/*.yaml
var embeddedSchemas embed.FS

// EmbeddedFS returns the bundled overlay documents. Callers may pass this
// filesystem to LoadFS to pick up the default annotations.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedSchemas, "schemas")
	if err != nil {
		// The embed directive guarantees the subpath exists, so panic is
		// acceptable here.
		panic(err)
	}
	return sub
}

// Defaults loads the bundled overlay documents into a store.
func Defaults() (*Store, error) {
	return LoadFS(EmbeddedFS())
}
