package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	domrepo "StockLens/internal/domain/repository"
	"StockLens/pkg/cache"
)

const themeKeyPrefix = "theme"

// ThemeStore keeps the light/dark preference under theme:<session>.
type ThemeStore struct {
	cache cache.Service
	ttl   time.Duration
}

// NewThemeStore stores themes in c. A zero ttl keeps them indefinitely.
func NewThemeStore(c cache.Service, ttl time.Duration) *ThemeStore {
	return &ThemeStore{cache: c, ttl: ttl}
}

var _ domrepo.ThemeStore = (*ThemeStore)(nil)

// GetTheme returns the stored theme. Only an explicit light preference
// switches away from dark.
func (s *ThemeStore) GetTheme(ctx context.Context, session string) (domrepo.Theme, error) {
	var v string
	err := s.cache.Get(ctx, cache.GenerateKey(themeKeyPrefix, session), &v)
	switch {
	case errors.Is(err, cache.ErrCacheMiss):
		return domrepo.ThemeDark, nil
	case err != nil:
		return "", fmt.Errorf("get theme: %w", err)
	}
	if t := domrepo.Theme(v); t == domrepo.ThemeDark || t == domrepo.ThemeLight {
		return t, nil
	}
	return domrepo.ThemeDark, nil
}

func (s *ThemeStore) SetTheme(ctx context.Context, session string, theme domrepo.Theme) error {
	if theme != domrepo.ThemeDark && theme != domrepo.ThemeLight {
		return fmt.Errorf("unknown theme %q", theme)
	}
	if err := s.cache.Set(ctx, cache.GenerateKey(themeKeyPrefix, session), string(theme), s.ttl); err != nil {
		return fmt.Errorf("set theme: %w", err)
	}
	return nil
}
