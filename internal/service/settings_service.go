package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	app_errors "flow-ai/threadview/internal/errors"
	"flow-ai/threadview/internal/render"
	"flow-ai/threadview/internal/toolview"
)

const (
	keyStreamDedup     = "dedup_streaming"
	keyToolViewAliases = "tool_view_aliases"
)

// Settings holds the runtime-tunable rendering settings stored in the
// settings table.
type Settings struct {
	StreamDedup bool `json:"dedup_streaming" example:"true"`
	// ToolViewAliases maps a tool name to the name whose view it should use.
	ToolViewAliases map[string]string `json:"tool_view_aliases" validate:"dive,keys,required,max=100,endkeys,required,max=100"`
}

// SettingsService persists Settings and applies them to the view
// registry. The last loaded or saved settings are kept in memory so that
// renders never touch the database.
type SettingsService struct {
	db       *sql.DB
	registry *toolview.Registry
	defaults Settings

	mu         sync.RWMutex
	current    Settings
	generation uint64
}

func NewSettingsService(db *sql.DB, registry *toolview.Registry, defaultDedup bool) *SettingsService {
	defaults := Settings{StreamDedup: defaultDedup, ToolViewAliases: map[string]string{}}
	return &SettingsService{db: db, registry: registry, defaults: defaults, current: defaults}
}

// InitAndGet loads stored settings and installs their aliases. Aliases
// whose target no longer exists are skipped with a warning.
func (s *SettingsService) InitAndGet(ctx context.Context) (*Settings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	for name, target := range settings.ToolViewAliases {
		if !s.registry.IsView(target) {
			slog.Warn("Skipping stored tool view alias", "tool", name, "target", target)
			delete(settings.ToolViewAliases, name)
		}
	}
	if err := s.registry.SetAliases(settings.ToolViewAliases); err != nil {
		return nil, fmt.Errorf("failed to apply tool view aliases: %w", err)
	}
	s.remember(*settings)
	return settings, nil
}

// Get reads the stored settings, filling unset keys from the defaults.
func (s *SettingsService) Get(ctx context.Context) (*Settings, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	settings := Settings{StreamDedup: s.defaults.StreamDedup, ToolViewAliases: map[string]string{}}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		switch key {
		case keyStreamDedup:
			b, err := strconv.ParseBool(value)
			if err != nil {
				slog.Warn("Ignoring malformed setting", "key", key, "value", value)
				continue
			}
			settings.StreamDedup = b
		case keyToolViewAliases:
			if err := json.Unmarshal([]byte(value), &settings.ToolViewAliases); err != nil {
				slog.Warn("Ignoring malformed setting", "key", key, "error", err)
				settings.ToolViewAliases = map[string]string{}
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return &settings, nil
}

// Save validates alias targets against the registry, stores the settings
// and applies them.
func (s *SettingsService) Save(ctx context.Context, settings *Settings) error {
	if settings.ToolViewAliases == nil {
		settings.ToolViewAliases = map[string]string{}
	}
	for name, target := range settings.ToolViewAliases {
		if !s.registry.IsView(target) {
			return fmt.Errorf("%w: tool view alias %q targets unknown view %q", app_errors.ErrValidation, name, target)
		}
	}

	aliases, err := json.Marshal(settings.ToolViewAliases)
	if err != nil {
		return fmt.Errorf("failed to marshal tool view aliases: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value")
	if err != nil {
		return fmt.Errorf("could not prepare settings statement: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, keyStreamDedup, strconv.FormatBool(settings.StreamDedup)); err != nil {
		return fmt.Errorf("could not save %s: %w", keyStreamDedup, err)
	}
	if _, err := stmt.ExecContext(ctx, keyToolViewAliases, string(aliases)); err != nil {
		return fmt.Errorf("could not save %s: %w", keyToolViewAliases, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit settings: %w", err)
	}

	// Aliases missing from settings are dropped from the registry.
	if err := s.registry.SetAliases(settings.ToolViewAliases); err != nil {
		// Targets were checked above; only a concurrent registry change gets here.
		return errors.Join(app_errors.ErrConflict, err)
	}
	s.remember(*settings)
	return nil
}

// RenderOptions returns the render options implied by the current settings.
func (s *SettingsService) RenderOptions() render.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return render.Options{Dedup: s.current.StreamDedup}
}

// Generation increases every time settings are loaded or saved. Cached
// views carry it in their version.
func (s *SettingsService) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

func (s *SettingsService) remember(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = settings
	s.generation++
}
