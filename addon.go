// Package exampleaddon is the reference addon for the production-tracking
// platform. It shows everything a server addon can contribute: settings and
// site-settings models with dynamic enums, a REST endpoint, an event bus
// subscription, and a catalog of UI actions. Every behaviour is a thin call
// into host-provided services; the addon owns no platform logic.
package exampleaddon

import (
	"context"
	"fmt"
	"net/http"

	"github.com/CrisisTextLine/modular"
	"github.com/CrisisTextLine/modular/modules/eventbus"

	"github.com/GoCodeAlone/prodtrack-example-addon/host"
	"github.com/GoCodeAlone/prodtrack-example-addon/schema"
	"github.com/GoCodeAlone/prodtrack-example-addon/store"
)

// Addon identity.
const (
	AddonName    = "example"
	AddonVersion = "1.0.0"

	// ModuleName is the addon's name in the modular application.
	ModuleName = "addon.example"

	// ServiceActions is the service name the addon's action provider is
	// registered under.
	ServiceActions = "addon.example.actions"
)

// Addon is the example addon's registration object. It implements
// modular.Module plus the Startable/Stoppable lifecycle.
type Addon struct {
	app     modular.Application
	logger  modular.Logger
	metrics *Metrics

	schemas     *schema.Registry
	entities    host.EntityService
	settingsSvc host.SettingsService
	folders     store.FolderStore
	projects    store.ProjectStore

	eventBus *eventbus.EventBusModule
	sub      eventbus.Subscription

	cache settingsCache
}

// New creates the example addon.
func New() *Addon {
	return &Addon{metrics: NewMetrics()}
}

// Name returns the addon's module name.
func (a *Addon) Name() string { return ModuleName }

// Manifest returns the addon's descriptor for the host.
func (a *Addon) Manifest() Manifest {
	return Manifest{
		Name:        AddonName,
		Version:     AddonVersion,
		Author:      "GoCodeAlone",
		Description: "Reference addon demonstrating settings models, endpoints, events, and actions",
		AddonType:   "server",
		FrontendScopes: map[string]map[string]string{
			"project": {"sidebar": "hierarchy"},
		},
		Services: map[string]SidecarService{
			"SplinesReticulator": {Image: "bfirsh/reticulate-splines"},
		},
	}
}

// Metrics returns the addon's metrics collector.
func (a *Addon) Metrics() *Metrics { return a.metrics }

// Init resolves host services, registers the settings models, the REST
// endpoints, and the action provider.
func (a *Addon) Init(app modular.Application) error {
	a.app = app
	a.logger = app.Logger()

	if err := app.GetService(host.ServiceSchemas, &a.schemas); err != nil {
		return fmt.Errorf("example addon: resolving schema registry: %w", err)
	}
	if err := app.GetService(host.ServiceEntities, &a.entities); err != nil {
		return fmt.Errorf("example addon: resolving entity service: %w", err)
	}
	if err := app.GetService(host.ServiceSettings, &a.settingsSvc); err != nil {
		return fmt.Errorf("example addon: resolving settings service: %w", err)
	}

	var router host.Router
	if err := app.GetService(host.ServiceRouter, &router); err != nil {
		return fmt.Errorf("example addon: resolving router: %w", err)
	}

	// Store services are optional; without them the store-backed enum
	// resolvers fall back to static choices.
	_ = app.GetService(store.ServiceFolders, &a.folders)
	_ = app.GetService(store.ServiceProjects, &a.projects)

	if err := a.registerResolvers(); err != nil {
		return fmt.Errorf("example addon: registering enum resolvers: %w", err)
	}
	if err := a.schemas.RegisterModel(AddonName, schema.KindSettings, SettingsModel()); err != nil {
		return fmt.Errorf("example addon: registering settings model: %w", err)
	}
	if err := a.schemas.RegisterModel(AddonName, schema.KindSiteSettings, SiteSettingsModel()); err != nil {
		return fmt.Errorf("example addon: registering site settings model: %w", err)
	}

	a.registerRoutes(router)

	a.logger.Info("example addon initialized", "addon", AddonName, "version", AddonVersion)
	return nil
}

// Start subscribes to the task status topic and primes the cached setting.
// Implements modular.Startable.
func (a *Addon) Start(ctx context.Context) error {
	var eb *eventbus.EventBusModule
	if err := a.app.GetService(eventbus.ServiceName, &eb); err != nil || eb == nil {
		// No event bus configured; the addon still serves its endpoint and
		// actions.
		a.logger.Warn("example addon: event bus unavailable, skipping subscriptions")
		return nil
	}
	a.eventBus = eb

	sub, err := eb.Subscribe(ctx, host.TopicTaskStatusChanged, a.onTaskStatusChanged)
	if err != nil {
		return fmt.Errorf("example addon: subscribing to %s: %w", host.TopicTaskStatusChanged, err)
	}
	a.sub = sub

	if color, err := a.cachedFavoriteColor(ctx); err == nil {
		a.logger.Debug("example addon ready", "favorite_color", color)
	}
	return nil
}

// Stop cancels the event subscription. Implements modular.Stoppable.
func (a *Addon) Stop(_ context.Context) error {
	if a.sub != nil {
		if err := a.sub.Cancel(); err != nil {
			return fmt.Errorf("example addon: cancelling subscription: %w", err)
		}
		a.sub = nil
	}
	return nil
}

// ProvidesServices declares the services this addon contributes. The
// framework registers them after Init.
func (a *Addon) ProvidesServices() []modular.ServiceProvider {
	return []modular.ServiceProvider{
		{
			Name:        ServiceActions,
			Description: "Example addon UI actions",
			Instance:    host.ActionProvider(a),
		},
	}
}

// RequiresServices declares the host services the addon needs.
func (a *Addon) RequiresServices() []modular.ServiceDependency {
	return []modular.ServiceDependency{
		{Name: host.ServiceSchemas, Required: true},
		{Name: host.ServiceEntities, Required: true},
		{Name: host.ServiceSettings, Required: true},
		{Name: host.ServiceRouter, Required: true},
		{Name: store.ServiceFolders, Required: false},
		{Name: store.ServiceProjects, Required: false},
		{Name: eventbus.ServiceName, Required: false},
	}
}

// studioSettings loads and decodes the addon's studio settings.
func (a *Addon) studioSettings(ctx context.Context, variant string) (ExampleSettings, error) {
	raw, err := a.settingsSvc.StudioSettings(ctx, AddonName, AddonVersion, variant)
	if err != nil {
		return ExampleSettings{}, fmt.Errorf("loading studio settings: %w", err)
	}
	return DecodeExampleSettings(raw)
}

// projectSettings loads and decodes the addon's settings for a project.
func (a *Addon) projectSettings(ctx context.Context, project, variant string) (ExampleSettings, error) {
	raw, err := a.settingsSvc.ProjectSettings(ctx, AddonName, AddonVersion, project, variant)
	if err != nil {
		return ExampleSettings{}, fmt.Errorf("loading settings for project %q: %w", project, err)
	}
	return DecodeExampleSettings(raw)
}

// variantFromRequest returns the settings variant a request asks for.
func variantFromRequest(r *http.Request) string {
	if v := r.URL.Query().Get("variant"); v != "" {
		return v
	}
	return host.VariantProduction
}
