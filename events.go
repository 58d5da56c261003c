package exampleaddon

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/CrisisTextLine/modular/modules/eventbus"

	"github.com/GoCodeAlone/prodtrack-example-addon/host"
)

// settingsCache holds derived settings values the event handlers read
// often. Invalidated when the host signals a settings change.
type settingsCache struct {
	mu sync.RWMutex

	favoriteColor string
	loaded        bool
}

func (c *settingsCache) get() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.favoriteColor, c.loaded
}

func (c *settingsCache) set(color string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.favoriteColor = color
	c.loaded = true
}

func (c *settingsCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.favoriteColor = ""
	c.loaded = false
}

// cachedFavoriteColor returns the favorite color from the studio settings,
// loading it on first use.
func (a *Addon) cachedFavoriteColor(ctx context.Context) (string, error) {
	if color, ok := a.cache.get(); ok {
		return color, nil
	}
	settings, err := a.studioSettings(ctx, host.VariantProduction)
	if err != nil {
		return "", err
	}
	a.cache.set(settings.GroupedSettings.FavoriteColor)
	return settings.GroupedSettings.FavoriteColor, nil
}

// OnSettingsChanged drops cached settings state and re-primes it from the
// new document. The host calls this with the previous and the saved
// settings documents whenever the addon's settings change.
func (a *Addon) OnSettingsChanged(_ context.Context, oldDoc, newDoc json.RawMessage) error {
	a.cache.invalidate()
	if len(newDoc) > 0 {
		settings, err := DecodeExampleSettings(newDoc)
		if err != nil {
			return err
		}
		a.cache.set(settings.GroupedSettings.FavoriteColor)
	}
	a.logger.Info("settings changed, cache invalidated",
		"addon", AddonName,
		"had_previous", len(oldDoc) > 0,
	)
	return nil
}

// onTaskStatusChanged reacts to task status transitions. It demonstrates
// the event subscription contract: decode the envelope, consult settings,
// and act without blocking the bus.
func (a *Addon) onTaskStatusChanged(ctx context.Context, event eventbus.Event) error {
	ev, err := host.EventFromPayload(event.Payload)
	if err != nil {
		a.metrics.RecordEvent(event.Topic, "decode_error")
		a.logger.Error("decoding task status event", "topic", event.Topic, "error", err)
		return err
	}

	color, err := a.cachedFavoriteColor(ctx)
	if err != nil {
		a.metrics.RecordEvent(ev.Topic, "settings_error")
		a.logger.Error("loading settings for event", "topic", ev.Topic, "error", err)
		return err
	}

	newStatus, _ := ev.Summary["newStatus"].(string)
	a.logger.Info("task status changed",
		"project", ev.Project,
		"user", ev.User,
		"status", newStatus,
		"favorite_color", color,
	)
	a.metrics.RecordEvent(ev.Topic, "ok")
	return nil
}
