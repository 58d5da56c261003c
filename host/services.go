package host

import (
	"context"
	"encoding/json"
)

// Settings variants the host resolves for addons.
const (
	VariantProduction = "production"
	VariantStaging    = "staging"
)

// Well-known service names addons resolve from the application's service
// registry. The host registers implementations under these names before
// addon modules are initialized.
const (
	ServiceRouter   = "host.router"
	ServiceEntities = "host.entities"
	ServiceSettings = "host.settings"
	ServiceSchemas  = "host.settings.schemas"
)

// SettingsService resolves stored settings documents. Persistence, overrides
// and variant layering are host concerns; addons receive the merged raw
// document and decode it into their own model.
type SettingsService interface {
	// StudioSettings returns the studio-level settings document for the
	// given addon name+version, or nil when nothing is stored.
	StudioSettings(ctx context.Context, addon, version, variant string) (json.RawMessage, error)

	// ProjectSettings returns the project-level settings document with
	// studio values already merged underneath.
	ProjectSettings(ctx context.Context, addon, version, project, variant string) (json.RawMessage, error)
}
