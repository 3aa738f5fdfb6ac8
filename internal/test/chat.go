package test

import (
	"context"
	"sync"

	"github.com/polkiloo/orderdesk/internal/adapter/chat"
)

// SentMessage records a single delivery attempt.
type SentMessage struct {
	Direct      bool
	RecipientID string
	Message     chat.Message
}

// SenderStub records outgoing chat messages.
type SenderStub struct {
	ChannelFn func(context.Context, string, chat.Message) error
	DirectFn  func(context.Context, string, chat.Message) error

	mu   sync.Mutex
	Sent []SentMessage
}

// SendChannelMessage records the message and applies override when provided.
func (s *SenderStub) SendChannelMessage(ctx context.Context, channelID string, msg chat.Message) error {
	s.record(SentMessage{RecipientID: channelID, Message: msg})
	if s.ChannelFn != nil {
		return s.ChannelFn(ctx, channelID, msg)
	}
	return nil
}

// SendDirectMessage records the message and applies override when provided.
func (s *SenderStub) SendDirectMessage(ctx context.Context, userID string, msg chat.Message) error {
	s.record(SentMessage{Direct: true, RecipientID: userID, Message: msg})
	if s.DirectFn != nil {
		return s.DirectFn(ctx, userID, msg)
	}
	return nil
}

// Messages returns a snapshot of recorded deliveries.
func (s *SenderStub) Messages() []SentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SentMessage(nil), s.Sent...)
}

func (s *SenderStub) record(m SentMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, m)
}

var _ chat.Sender = (*SenderStub)(nil)
