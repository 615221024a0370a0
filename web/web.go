// Package web carries the embedded browser client: the room picker and the
// conference view, built on the LiveKit browser SDK.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFS embed.FS

// Static returns the client files rooted at the directory that should be
// served at /.
func Static() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
