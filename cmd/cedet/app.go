// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/yyr/cedet/internal/config"
	"github.com/yyr/cedet/internal/loader"
	"github.com/yyr/cedet/internal/probe"
	"github.com/yyr/cedet/internal/project"
	"github.com/yyr/cedet/internal/projtype"
)

type (
	// App wires CLI services and shared dependencies. It is the
	// composition root for the CLI layer — command handlers receive an
	// App reference and delegate through its fields.
	App struct {
		Config   config.Provider
		Registry *projtype.Registry
		Projects *project.List
		Cache    *probe.Cache

		stdout io.Writer
		stderr io.Writer

		seedOnce sync.Once
		seedErr  error
	}

	// Dependencies defines the injection points for building an App.
	// Nil fields are replaced with production defaults by NewApp; tests
	// supply their own registries and writers.
	Dependencies struct {
		Config   config.Provider
		Registry *projtype.Registry
		Projects *project.List
		Cache    *probe.Cache
		Stdout   io.Writer
		Stderr   io.Writer
	}
)

// NewApp builds an App, substituting production defaults for nil fields.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:   deps.Config,
		Registry: deps.Registry,
		Projects: deps.Projects,
		Cache:    deps.Cache,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.Registry == nil {
		app.Registry = projtype.Live
	}
	if app.Projects == nil {
		app.Projects = project.Live
	}
	if app.Cache == nil {
		app.Cache = probe.Default
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// seededRegistry returns the registry with the built-in project types
// installed. Seeding happens once per App, lazily, so flag parsing and
// help output never pay for it.
func (a *App) seededRegistry() (*projtype.Registry, error) {
	a.seedOnce.Do(func() {
		a.seedErr = projtype.Seed(a.Registry)
	})
	if a.seedErr != nil {
		return nil, a.seedErr
	}
	return a.Registry, nil
}

// newLoader builds a project loader backed by the on-disk trust store.
func (a *App) newLoader() (*loader.Loader, error) {
	store, err := config.LoadTrustStore()
	if err != nil {
		return nil, err
	}
	return loader.New(store, a.Projects), nil
}

// loadConfig reads the effective configuration.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	return a.Config.Load(ctx, config.LoadOptions{})
}

// runSetup executes the probe pipeline for the effective configuration.
func (a *App) runSetup(ctx context.Context) (*probe.Setup, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	s := probe.NewSetup(cfg, a.Cache)
	if err := s.Run(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
