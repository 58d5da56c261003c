package host

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Router is the endpoint registration surface the host hands to addons.
// Patterns are relative to the addon's mount point and may use Go 1.22
// ServeMux wildcards (e.g. "get-random-folder/{project}").
type Router interface {
	Handle(method, pattern string, handler http.Handler)
}

// MuxRouter mounts addon routes on an http.ServeMux under a path prefix.
type MuxRouter struct {
	mux    *http.ServeMux
	prefix string
}

// NewMuxRouter creates a router mounting patterns under the given prefix.
func NewMuxRouter(mux *http.ServeMux, prefix string) *MuxRouter {
	return &MuxRouter{mux: mux, prefix: strings.TrimSuffix(prefix, "/")}
}

// Handle registers a handler for method+pattern under the router's prefix.
func (r *MuxRouter) Handle(method, pattern string, handler http.Handler) {
	pattern = strings.TrimPrefix(pattern, "/")
	r.mux.Handle(method+" "+r.prefix+"/"+pattern, handler)
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes err as a JSON error response, mapping *Error values to
// their status and everything else to 500.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Internal details stay in logs.
		msg = "internal server error"
	}
	WriteJSON(w, status, map[string]any{
		"status": status,
		"detail": msg,
	})
}
