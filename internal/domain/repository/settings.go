package repository

import (
	"context"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// SettingsRepository stores the bot configuration record.
type SettingsRepository interface {
	Load(ctx context.Context) (*model.Settings, error)
	Save(ctx context.Context, settings model.Settings) error
}
