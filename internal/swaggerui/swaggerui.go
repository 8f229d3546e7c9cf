package swaggerui

import (
	"net/http"
	"strings"

	"github.com/swaggest/swgui/v5emb"
)

// Handler returns a Swagger UI handler (assets embedded, no CDN) mounted
// at basePath and reading the document from specPath.
func Handler(specPath, basePath string) http.Handler {
	return v5emb.New("Folio API", specPath, strings.TrimSuffix(basePath, "/")+"/")
}
