package settings

import "context"

type SettingsRepository interface {
	Get(ctx context.Context) (WorkSettings, error)
	Update(ctx context.Context, s WorkSettings) error
}
