package settings

import "context"

type SettingsService interface {
	Get(ctx context.Context) (WorkSettings, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (WorkSettings, error)
}
