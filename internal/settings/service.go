package settings

import (
	"context"
	"fmt"
	"strings"
	"sync"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// Settings holds the merchant configuration fetched once at startup.
type Settings struct {
	ContactPhone string  `json:"contact_phone"`
	LogoURL      *string `json:"logo_url,omitempty"`
}

// HasContact reports whether a usable contact channel is configured.
func (s Settings) HasContact() bool {
	return strings.TrimSpace(s.ContactPhone) != ""
}

type settingsStore interface {
	GetSettings(ctx context.Context) (Settings, error)
	Upsert(ctx context.Context, input UpsertInput) error
}

// Service owns the in-memory settings copy and the admin write path.
type Service interface {
	Load(ctx context.Context) (Settings, error)
	Current() Settings
	Update(ctx context.Context, input UpsertInput) (Settings, error)
}

type service struct {
	repo settingsStore

	mu      sync.RWMutex
	current Settings
}

// NewService builds a settings service backed by the provided repository.
func NewService(repo settingsStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo}, nil
}

// Load fetches the settings document and caches it for the session. A failed
// load leaves any prior copy untouched.
func (s *service) Load(ctx context.Context) (Settings, error) {
	loaded, err := s.repo.GetSettings(ctx)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return Settings{}, err
		}
		return Settings{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
	return loaded, nil
}

// Current returns the cached settings copy.
func (s *service) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update merges the provided fields into the settings document and refreshes
// the cached copy so a running process sees its own writes.
func (s *service) Update(ctx context.Context, input UpsertInput) (Settings, error) {
	if err := s.repo.Upsert(ctx, input); err != nil {
		return Settings{}, err
	}
	return s.Load(ctx)
}
