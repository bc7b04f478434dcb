package handlers

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"
	"net/http"
	"path"
)

//go:embed openapi.json
var openAPISpec []byte

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <title>{{.Title}} {{.Version}}</title>
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <style>
      body { margin: 0; padding: 0; }
      redoc { display: block; height: 100vh; }
    </style>
  </head>
  <body>
    <redoc spec-url="{{.SpecURL}}"></redoc>
    <script src="https://cdn.jsdelivr.net/npm/redoc@2.2.0/bundles/redoc.standalone.js"></script>
  </body>
</html>`))

type docsView struct {
	Title   string
	Version string
	SpecURL string
}

// docsInfo reads the title and version out of the embedded document once.
var docsInfo = func() docsView {
	var doc struct {
		Info struct {
			Title   string `json:"title"`
			Version string `json:"version"`
		} `json:"info"`
	}
	_ = json.Unmarshal(openAPISpec, &doc)
	if doc.Info.Title == "" {
		doc.Info.Title = "API"
	}
	return docsView{Title: doc.Info.Title, Version: doc.Info.Version}
}()

func (a *App) OpenAPIJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openAPISpec)
}

// OpenAPIDocs serves a Redoc page pointing at the openapi.json mounted next
// to it, so the page follows whatever prefix the router uses.
func (a *App) OpenAPIDocs(w http.ResponseWriter, r *http.Request) {
	view := docsInfo
	view.SpecURL = path.Join(path.Dir(r.URL.Path), "openapi.json")

	var buf bytes.Buffer
	if err := docsPage.Execute(&buf, view); err != nil {
		a.Logger.Error().Err(err).Msg("render docs page")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
