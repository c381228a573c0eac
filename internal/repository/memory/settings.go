package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
)

type settingsRepository struct {
	mu       sync.RWMutex
	settings settings.WorkSettings
}

func NewSettingsRepository(initial settings.WorkSettings) settings.SettingsRepository {
	return &settingsRepository{settings: initial}
}

// Get implements settings.SettingsRepository.
func (r *settingsRepository) Get(ctx context.Context) (settings.WorkSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings, nil
}

// Update implements settings.SettingsRepository.
func (r *settingsRepository) Update(ctx context.Context, s settings.WorkSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = s
	return nil
}
