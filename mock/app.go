// Package mock provides test doubles for the modular application and the
// host services the addon consumes. The dev harness reuses the in-memory
// host services when no database is configured.
package mock

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/CrisisTextLine/modular"
)

// Application satisfies modular.Application for addon tests without pulling
// in the full framework lifecycle.
type Application struct {
	configSections map[string]modular.ConfigProvider
	services       map[string]any
	modules        map[string]modular.Module
	logger         modular.Logger
}

// NewApplication creates an empty mock application with a recording logger.
func NewApplication() *Application {
	return &Application{
		configSections: make(map[string]modular.ConfigProvider),
		services:       make(map[string]any),
		modules:        make(map[string]modular.Module),
		logger:         NewLogger(),
	}
}

func (a *Application) RegisterConfigSection(name string, cp modular.ConfigProvider) {
	a.configSections[name] = cp
}

func (a *Application) GetConfigSection(name string) (modular.ConfigProvider, error) {
	return a.configSections[name], nil
}

func (a *Application) ConfigSections() map[string]modular.ConfigProvider {
	return a.configSections
}

func (a *Application) Logger() modular.Logger                 { return a.logger }
func (a *Application) SetLogger(l modular.Logger)             { a.logger = l }
func (a *Application) ConfigProvider() modular.ConfigProvider { return nil }

func (a *Application) SvcRegistry() modular.ServiceRegistry { return a.services }

func (a *Application) RegisterModule(m modular.Module) {
	a.modules[m.Name()] = m
}

func (a *Application) RegisterService(name string, svc any) error {
	a.services[name] = svc
	return nil
}

// GetService copies the registered service into target, which must be a
// pointer to a compatible type. Mirrors the framework's semantics closely
// enough for the addon's lookups.
func (a *Application) GetService(name string, target any) error {
	svc, ok := a.services[name]
	if !ok {
		return fmt.Errorf("service %q not found", name)
	}
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Ptr || tv.IsNil() {
		return fmt.Errorf("service %q: target must be a non-nil pointer", name)
	}
	sv := reflect.ValueOf(svc)
	if !sv.Type().AssignableTo(tv.Elem().Type()) {
		return fmt.Errorf("service %q: %s is not assignable to %s", name, sv.Type(), tv.Elem().Type())
	}
	tv.Elem().Set(sv)
	return nil
}

func (a *Application) Init() error  { return nil }
func (a *Application) Start() error { return nil }
func (a *Application) Stop() error  { return nil }
func (a *Application) Run() error   { return nil }

func (a *Application) IsVerboseConfig() bool    { return false }
func (a *Application) SetVerboseConfig(bool)    {}
func (a *Application) Context() context.Context { return context.Background() }

func (a *Application) GetServicesByModule(string) []string { return nil }
func (a *Application) GetServiceEntry(string) (*modular.ServiceRegistryEntry, bool) {
	return nil, false
}
func (a *Application) GetServicesByInterface(_ reflect.Type) []*modular.ServiceRegistryEntry {
	return nil
}
func (a *Application) GetModule(name string) modular.Module     { return a.modules[name] }
func (a *Application) GetAllModules() map[string]modular.Module { return a.modules }
func (a *Application) StartTime() time.Time                     { return time.Time{} }
func (a *Application) OnConfigLoaded(func(modular.Application) error) {}
