package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/domain/repository"
)

// ChannelHint tells the owner how to configure the notification channel.
const ChannelHint = "run the setchannel command with a channel id, or PUT /api/owner/channel"

// SettingsUseCase manages the persisted bot configuration.
type SettingsUseCase struct {
	settings repository.SettingsRepository
}

// NewSettingsUseCase constructs SettingsUseCase.
func NewSettingsUseCase(settings repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{settings: settings}
}

// Channel returns the notification channel or a ConfigurationError when none is set.
func (u *SettingsUseCase) Channel(ctx context.Context) (string, error) {
	settings, err := u.settings.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load settings: %w", domainErrors.ErrStorage)
	}
	channel, ok := settings.ChannelID()
	if !ok {
		return "", &domainErrors.ConfigurationError{Setting: "notification channel", Hint: ChannelHint}
	}
	return channel, nil
}

// SetChannel stores the notification channel, creating the record on first use.
func (u *SettingsUseCase) SetChannel(ctx context.Context, channelID string) error {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return domainErrors.NewMissingField("channelId")
	}
	if !ValidateSnowflake(channelID) {
		return domainErrors.NewInvalidIdentifier("channelId")
	}
	if err := u.settings.Save(ctx, model.Settings{NotifyChannelID: &channelID}); err != nil {
		return fmt.Errorf("save settings: %w", domainErrors.ErrStorage)
	}
	return nil
}
