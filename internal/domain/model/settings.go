package model

// Settings is the persisted bot configuration record.
type Settings struct {
	NotifyChannelID *string `json:"notifyChannelId"`
}

// ChannelID returns the configured notification channel if any.
func (s Settings) ChannelID() (string, bool) {
	if s.NotifyChannelID == nil || *s.NotifyChannelID == "" {
		return "", false
	}
	return *s.NotifyChannelID, true
}
