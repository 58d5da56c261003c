package schema

import (
	"encoding/json"
	"net/http"
)

// RegisterRoutes registers the schema rendering endpoints for one addon on
// the given mux. The settings UI fetches these to build its forms.
func RegisterRoutes(mux *http.ServeMux, registry *Registry, addon, prefix string) {
	mux.Handle("GET "+prefix+"/schema/settings", renderHandler(registry, addon, KindSettings))
	mux.Handle("GET "+prefix+"/schema/site-settings", renderHandler(registry, addon, KindSiteSettings))
}

func renderHandler(registry *Registry, addon string, kind Kind) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc := ResolveContext{
			Project: r.URL.Query().Get("project"),
			Variant: r.URL.Query().Get("variant"),
		}
		if rc.Variant == "" {
			rc.Variant = "production"
		}
		rendered, err := registry.Resolve(r.Context(), addon, kind, rc)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/schema+json")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rendered); err != nil {
			http.Error(w, "failed to encode schema", http.StatusInternalServerError)
		}
	})
}
