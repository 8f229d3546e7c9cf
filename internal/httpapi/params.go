package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// pathID binds the {id} path parameter, writing a 400 when it is not an
// integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid id", map[string]any{"param": "id"})
		return 0, false
	}
	return id, true
}

// queryBool binds an optional boolean query parameter.
func queryBool(w http.ResponseWriter, r *http.Request, name string) (*bool, bool) {
	var v *bool
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid query parameter", map[string]any{"param": name, "error": err.Error()})
		return nil, false
	}
	return v, true
}
