package server

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed web
var webFS embed.FS

func (s *Server) staticHandler() http.Handler {
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		// The embed is part of the binary; a missing subdirectory is a build
		// mistake, not a runtime condition.
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
