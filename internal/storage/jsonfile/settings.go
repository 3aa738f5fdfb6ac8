package jsonfile

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

type settingsRepository struct {
	file   *File
	logger *slog.Logger
	mu     sync.Mutex
}

// Load returns the stored settings; an absent or unreadable file means nothing is configured yet.
func (r *settingsRepository) Load(ctx context.Context) (*model.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var settings model.Settings
	err := r.file.Load(ctx, &settings)
	switch {
	case err == nil:
		return &settings, nil
	case errors.Is(err, errMissing):
		return &model.Settings{}, nil
	case errors.Is(err, errMalformed):
		r.logger.Warn("settings file unreadable, treating as unset",
			slog.String("path", r.file.Path()),
			slog.String("error", err.Error()),
		)
		return &model.Settings{}, nil
	default:
		return nil, err
	}
}

// Save creates or replaces the settings file.
func (r *settingsRepository) Save(ctx context.Context, settings model.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file.Save(ctx, settings)
}
