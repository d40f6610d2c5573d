package staticfiles

import (
	"embed"
	"io/fs"
)

//go:embed css/*
var embedded embed.FS

// EmbeddedFS is rooted at the static directory, so "css/app.css" resolves.
func EmbeddedFS() fs.FS {
	return embedded
}
