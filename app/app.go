package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"planillas/app/dashboard"
	"planillas/app/fileloader"
	"planillas/app/record"
	"planillas/app/settings"
	"planillas/app/variant"
)

// ErrNoDataset is returned when the settings name neither a file nor a glob
var ErrNoDataset = errors.New("no dataset configured: set dataset.path or dataset.glob")

// Session is one open dashboard over one dataset
type Session struct {
	Dashboard *dashboard.Dashboard
	Source    string
	OpenedAt  time.Time

	order uint64
}

// ID returns the dashboard identifier
func (s *Session) ID() string { return s.Dashboard.ID() }

// SessionInfo describes an open session
type SessionInfo struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Variant     string `json:"variant"`
	Rows        int    `json:"rows"`
	Fingerprint string `json:"fingerprint"`
	Active      bool   `json:"active"`
}

// App keeps the open dashboards, keyed by dashboard id
type App struct {
	settings settings.Settings
	logger   zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
	activeID string
	opened   uint64
}

// NewApp creates an application using s for every session it opens
func NewApp(s settings.Settings, logger zerolog.Logger) *App {
	return &App{
		settings: s,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Settings returns the effective settings
func (a *App) Settings() settings.Settings { return a.settings }

// LoadDataset loads the dataset named by the settings. The load either
// completes or fails as a whole.
func (a *App) LoadDataset(ctx context.Context, ds settings.DatasetSettings) (*record.Dataset, error) {
	opts := fileloader.DefaultLoadOptions()
	opts.RowsPath = ds.RowsPath
	opts.Logger = a.logger

	switch {
	case ds.Path != "":
		return fileloader.LoadFile(ctx, ds.Path, opts)
	case ds.Glob != "":
		root := ds.Root
		if root == "" {
			root = "."
		}
		return fileloader.LoadGlob(ctx, root, ds.Glob, opts)
	default:
		return nil, ErrNoDataset
	}
}

// Open loads the configured dataset and opens a dashboard over it
func (a *App) Open(ctx context.Context) (*Session, error) {
	ds, err := a.LoadDataset(ctx, a.settings.Dataset)
	if err != nil {
		return nil, err
	}
	return a.OpenDataset(ctx, ds, a.settings.Variant)
}

// OpenDataset opens a dashboard over an already loaded dataset. An empty
// variant name uses the configured variant. The new session becomes the
// active one.
func (a *App) OpenDataset(ctx context.Context, ds *record.Dataset, variantName string) (*Session, error) {
	if variantName == "" {
		variantName = a.settings.Variant
	}
	v, err := variant.Load(variantName)
	if err != nil {
		return nil, err
	}

	d, err := dashboard.New(ds, v,
		dashboard.WithContext(ctx),
		dashboard.WithLogger(a.logger),
		dashboard.WithSettings(a.settings),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open dashboard: %w", err)
	}

	s := &Session{Dashboard: d, Source: ds.Source(), OpenedAt: time.Now()}
	a.mu.Lock()
	a.opened++
	s.order = a.opened
	a.sessions[s.ID()] = s
	a.activeID = s.ID()
	a.mu.Unlock()

	a.logger.Info().
		Str("dashboard", s.ID()).
		Str("source", s.Source).
		Str("variant", v.Name).
		Msg("[OPEN_SESSION] dashboard opened")
	return s, nil
}

// Get returns a session by id
func (a *App) Get(id string) (*Session, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s, ok := a.sessions[id]
	return s, ok
}

// Active returns the active session, or nil when none is open
func (a *App) Active() *Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sessions[a.activeID]
}

// SetActive makes a session the active one
func (a *App) SetActive(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.sessions[id]; !ok {
		return fmt.Errorf("session not found: %s", id)
	}
	a.activeID = id
	return nil
}

// Sessions lists the open sessions in opening order
func (a *App) Sessions() []SessionInfo {
	a.mu.RLock()
	defer a.mu.RUnlock()

	list := make([]*Session, 0, len(a.sessions))
	for _, s := range a.sessions {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].order < list[j].order })

	out := make([]SessionInfo, len(list))
	for i, s := range list {
		ds := s.Dashboard.Dataset()
		out[i] = SessionInfo{
			ID:          s.ID(),
			Source:      s.Source,
			Variant:     s.Dashboard.Variant().Name,
			Rows:        ds.Len(),
			Fingerprint: ds.Fingerprint(),
			Active:      s.ID() == a.activeID,
		}
	}
	return out
}

// CloseSession closes a dashboard. When it was active, the most recently
// opened remaining session becomes active.
func (a *App) CloseSession(id string) error {
	a.mu.Lock()
	s, ok := a.sessions[id]
	if !ok {
		a.mu.Unlock()
		return fmt.Errorf("session not found: %s", id)
	}
	delete(a.sessions, id)
	if a.activeID == id {
		a.activeID = ""
		var latest uint64
		for sid, other := range a.sessions {
			if other.order > latest {
				latest = other.order
				a.activeID = sid
			}
		}
	}
	a.mu.Unlock()

	a.logger.Info().Str("dashboard", id).Msg("[CLOSE_SESSION] dashboard closed")
	return s.Dashboard.Close()
}

// Shutdown closes every session
func (a *App) Shutdown() error {
	a.mu.Lock()
	sessions := a.sessions
	a.sessions = make(map[string]*Session)
	a.activeID = ""
	a.mu.Unlock()

	var errs []error
	for _, s := range sessions {
		if err := s.Dashboard.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
