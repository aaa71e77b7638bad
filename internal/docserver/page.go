package docserver

import (
	"bytes"
	"html/template"
	"net/http"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}} {{.Version}}</title>
  <link rel="stylesheet" href="https://unpkg.com/@asyncapi/react-component@latest/styles/default.min.css">
</head>
<body>
  <div id="asyncapi"></div>
  <script src="https://unpkg.com/@asyncapi/react-component@latest/browser/standalone/index.js"></script>
  <script>
    AsyncApiStandalone.render({
      schema: { url: {{.SchemaURL}}, options: { method: "GET", mode: "cors" } },
      config: { show: { sidebar: true } },
    }, document.getElementById("asyncapi"));
  </script>
</body>
</html>
`))

type indexData struct {
	Title     string
	Version   string
	SchemaURL string
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	snap := s.holder.Get()
	data := indexData{SchemaURL: "asyncapi.json"}
	if info := snap.Document.Info; info != nil {
		data.Title, data.Version = info.Title, info.Version
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		s.logger.Error().Err(err).Msg("render index")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
