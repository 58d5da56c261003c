// Command addon-host runs the example addon inside a minimal development
// host: an in-memory (or PostgreSQL-backed) entity and settings layer, an
// HTTP mux mounting the addon under its versioned prefix, and the event
// bus. It exists so the addon can be exercised without a full platform
// deployment.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CrisisTextLine/modular"
	"github.com/CrisisTextLine/modular/modules/eventbus"
	"gopkg.in/yaml.v3"

	exampleaddon "github.com/GoCodeAlone/prodtrack-example-addon"
	"github.com/GoCodeAlone/prodtrack-example-addon/config"
	"github.com/GoCodeAlone/prodtrack-example-addon/host"
	"github.com/GoCodeAlone/prodtrack-example-addon/mock"
	"github.com/GoCodeAlone/prodtrack-example-addon/schema"
	"github.com/GoCodeAlone/prodtrack-example-addon/store"
)

func main() {
	configPath := flag.String("config", "", "path to harness config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("addon-host failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := modular.NewStdApplication(modular.NewStdConfigProvider(cfg), logger)

	// Host-side services the addon resolves during Init.
	schemas := schema.NewRegistry()
	if err := app.RegisterService(host.ServiceSchemas, schemas); err != nil {
		return err
	}

	memHost := mock.NewHost()
	seedDemoData(memHost)
	if err := app.RegisterService(host.ServiceEntities, host.EntityService(memHost)); err != nil {
		return err
	}
	if err := app.RegisterService(host.ServiceSettings, host.SettingsService(memHost)); err != nil {
		return err
	}

	// Store services come from PostgreSQL when configured, otherwise the
	// in-memory host doubles as the store.
	var pg *store.PGStore
	if cfg.Postgres.URL != "" {
		var err error
		pg, err = store.NewPGStore(ctx, cfg.Postgres)
		if err != nil {
			return fmt.Errorf("connecting postgres: %w", err)
		}
		defer pg.Close()
		if err := app.RegisterService(store.ServiceFolders, pg.Folders()); err != nil {
			return err
		}
		if err := app.RegisterService(store.ServiceProjects, pg.Projects()); err != nil {
			return err
		}
		logger.Info("store backed by postgres")
	} else {
		if err := app.RegisterService(store.ServiceFolders, store.FolderStore(memHost)); err != nil {
			return err
		}
		if err := app.RegisterService(store.ServiceProjects, store.ProjectStore(memHost)); err != nil {
			return err
		}
		logger.Info("store backed by in-memory host")
	}

	mux := http.NewServeMux()
	prefix := fmt.Sprintf("/addons/%s/%s", exampleaddon.AddonName, exampleaddon.AddonVersion)
	router := host.NewMuxRouter(mux, prefix)
	if err := app.RegisterService(host.ServiceRouter, host.Router(router)); err != nil {
		return err
	}

	eb, ok := eventbus.NewModule().(*eventbus.EventBusModule)
	if !ok {
		return errors.New("unexpected eventbus module type")
	}
	app.RegisterModule(eb)

	addon := exampleaddon.New()
	app.RegisterModule(addon)

	if err := app.Init(); err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}

	schema.RegisterRoutes(mux, schemas, exampleaddon.AddonName, prefix)
	mux.Handle("GET /metrics", addon.Metrics().Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	if err := app.Start(); err != nil {
		return fmt.Errorf("starting application: %w", err)
	}

	var watcher *config.SettingsWatcher
	if cfg.SettingsFile != "" {
		overrides := &settingsApplier{
			logger: logger,
			host:   memHost,
			addon:  addon,
		}
		watcher = config.NewSettingsWatcher(cfg.SettingsFile, func(data []byte) {
			overrides.apply(ctx, data)
		}, config.WithWatchLogger(logger))
		if err := watcher.Start(); err != nil {
			return fmt.Errorf("watching settings file: %w", err)
		}
		// Apply the initial content as well.
		if data, err := os.ReadFile(cfg.SettingsFile); err == nil {
			overrides.apply(ctx, data)
		}
	}

	if cfg.DemoEventInterval > 0 {
		go publishDemoEvents(ctx, logger, eb, cfg.DemoEventInterval)
	}

	server := &http.Server{
		Addr:              cfg.Listen,
		Handler:           withDemoUser(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("addon-host listening", "addr", cfg.Listen, "prefix", prefix)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	if watcher != nil {
		if err := watcher.Stop(); err != nil {
			logger.Error("stopping settings watcher", "error", err)
		}
	}
	if err := app.Stop(); err != nil {
		return fmt.Errorf("stopping application: %w", err)
	}
	return nil
}

// withDemoUser injects a fixed admin user into every request. A real host
// runs its authentication middleware here instead.
func withDemoUser(next http.Handler) http.Handler {
	user := host.User{Name: "admin", FullName: "Demo Admin", IsAdmin: true}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(host.ContextWithUser(r.Context(), user)))
	})
}

// settingsApplier stores YAML or JSON settings documents as the studio
// overrides and notifies the addon, remembering the previous document.
type settingsApplier struct {
	logger *slog.Logger
	host   *mock.Host
	addon  *exampleaddon.Addon

	previous json.RawMessage
}

func (s *settingsApplier) apply(ctx context.Context, data []byte) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		s.logger.Error("parsing settings overrides", "error", err)
		return
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		s.logger.Error("encoding settings overrides", "error", err)
		return
	}
	if _, err := exampleaddon.DecodeExampleSettings(raw); err != nil {
		s.logger.Error("invalid settings overrides", "error", err)
		return
	}
	s.host.SetStudioSettings(exampleaddon.AddonName, exampleaddon.AddonVersion, host.VariantProduction, raw)
	if err := s.addon.OnSettingsChanged(ctx, s.previous, raw); err != nil {
		s.logger.Error("applying settings change", "error", err)
		return
	}
	s.previous = raw
}

// publishDemoEvents emits a synthetic task status event on each tick so the
// addon's subscription can be observed locally.
func publishDemoEvents(ctx context.Context, logger *slog.Logger, eb *eventbus.EventBusModule, interval time.Duration) {
	statuses := []string{"In progress", "Pending review", "Approved"}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		ev := host.NewEvent(host.TopicTaskStatusChanged, "demo", "admin", "demo status change")
		ev.Summary = map[string]any{"newStatus": statuses[i%len(statuses)]}
		if err := eb.Publish(ctx, host.TopicTaskStatusChanged, ev); err != nil {
			logger.Error("publishing demo event", "error", err)
		}
	}
}

func seedDemoData(h *mock.Host) {
	h.AddFolder("demo", &host.Folder{
		FolderID:   "f-assets",
		FolderName: "assets",
		FolderType: "Asset",
	})
	h.AddFolder("demo", &host.Folder{
		FolderID:   "f-sh010",
		FolderName: "sh010",
		FolderType: "Shot",
		Attrib:     map[string]any{"frameStart": 1001, "frameEnd": 1096},
	})
	h.AddTask("demo", &host.Task{
		TaskID:    "t-comp",
		TaskName:  "comp",
		TaskType:  "Compositing",
		FolderID:  "f-sh010",
		Status:    "In progress",
		Assignees: []string{"artist1"},
	})
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
