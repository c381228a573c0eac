package settings

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/store"
)

type SettingsServiceImpl struct {
	settingsRepo settings.SettingsRepository
	committer    store.Committer
	mu           sync.Locker
}

func NewSettingsService(settingsRepo settings.SettingsRepository, committer store.Committer, mu sync.Locker) settings.SettingsService {
	return &SettingsServiceImpl{
		settingsRepo: settingsRepo,
		committer:    committer,
		mu:           mu,
	}
}

// Get implements settings.SettingsService.
func (s *SettingsServiceImpl) Get(ctx context.Context) (settings.WorkSettings, error) {
	return s.settingsRepo.Get(ctx)
}

// Update implements settings.SettingsService.
func (s *SettingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.WorkSettings, error) {
	if err := req.Validate(); err != nil {
		return settings.WorkSettings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return settings.WorkSettings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	updated := req.Apply(current)
	if err := updated.Check(); err != nil {
		return settings.WorkSettings{}, err
	}

	if err := s.settingsRepo.Update(ctx, updated); err != nil {
		return settings.WorkSettings{}, fmt.Errorf("failed to update settings: %w", err)
	}
	if err := s.committer.Commit(ctx); err != nil {
		return settings.WorkSettings{}, fmt.Errorf("failed to persist settings: %w", err)
	}

	slog.Info("Work settings updated",
		"work_hours_per_day", updated.WorkHoursPerDay,
		"tolerance_minutes", updated.ToleranceMinutes,
		"work_start_time", updated.WorkStartTime,
	)
	return updated, nil
}
