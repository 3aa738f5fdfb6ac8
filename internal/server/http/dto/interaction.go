package dto

// Interaction types delivered by the chat platform webhook.
const (
	InteractionPing      = "ping"
	InteractionComponent = "component"
	InteractionCommand   = "command"
)

// InteractionRequest is a button click or slash command forwarded by the chat platform.
type InteractionRequest struct {
	Type     string            `json:"type"`
	UserID   string            `json:"userId"`
	CustomID string            `json:"customId,omitempty"`
	Name     string            `json:"name,omitempty"`
	Options  map[string]string `json:"options,omitempty"`
}

// InteractionResponse is the reply shown in the chat client.
type InteractionResponse struct {
	Type      string `json:"type,omitempty"`
	Content   string `json:"content,omitempty"`
	Ephemeral bool   `json:"ephemeral,omitempty"`
}
