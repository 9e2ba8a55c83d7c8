package goadmin

import (
	"context"
	"errors"

	consolepkg "github.com/goliatone/go-supplychain/pkg/console"
)

// MenuBuilder ensures console entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures console link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the console controller + feature flags into an admin shell.
type Config struct {
	EnableConsole   bool
	MenuCode        string
	MenuBuilder     MenuBuilder
	Controller      *consolepkg.Controller
	DefaultMenuItem MenuItem
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed console menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableConsole && cfg.Controller == nil {
		return nil, errors.New("goadmin: console controller is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.DefaultMenuItem.Label == "" {
		cfg.DefaultMenuItem.Label = "Supply Chain Console"
	}
	if cfg.DefaultMenuItem.Route == "" {
		cfg.DefaultMenuItem.Route = "admin.console"
	}
	if cfg.DefaultMenuItem.Icon == "" {
		cfg.DefaultMenuItem.Icon = "sitemap"
	}
	return &Admin{cfg: cfg}, nil
}

// Console exposes the configured console controller when enabled.
func (a *Admin) Console() *consolepkg.Controller {
	if !a.cfg.EnableConsole {
		return nil
	}
	return a.cfg.Controller
}

// Bootstrap seeds menu entries when console support is enabled.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableConsole || a.cfg.MenuBuilder == nil {
		return nil
	}
	return a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, a.cfg.DefaultMenuItem)
}
