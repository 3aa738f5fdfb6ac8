package handlers

import (
	"context"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// IntakeFacade covers the public form operations.
type IntakeFacade interface {
	SubmitOrder(ctx context.Context, submission model.OrderSubmission) (*model.Order, error)
	SubmitMessage(ctx context.Context, msg model.ContactMessage) error
	Availability() model.Availability
}

// OwnerAuthFacade describes owner authentication capabilities required by handlers.
type OwnerAuthFacade interface {
	Login(ctx context.Context, password string) (string, error)
	Authorize(token string) (string, error)
	IsOwner(userID string) bool
}

// ManagementFacade encapsulates owner-only order and settings operations.
type ManagementFacade interface {
	Orders(ctx context.Context, status string) ([]model.Order, error)
	Order(ctx context.Context, ref string) (*model.Order, error)
	UpdateStatus(ctx context.Context, ref, status string) (*model.Order, error)
	SetPayment(ctx context.Context, ref string, paid bool) (*model.Order, error)
	SetNote(ctx context.Context, ref, note string) (*model.Order, error)
	Channel(ctx context.Context) (string, error)
	SetChannel(ctx context.Context, channelID string) error
	Availability() model.Availability
	SetAvailability(state string) (model.Availability, error)
}

// DecisionFacade applies accept and decline actions.
type DecisionFacade interface {
	Decide(ctx context.Context, submitterID string, decision model.Decision) (*model.Order, error)
}

// InteractionFacade is what chat interactions need: owner commands and decisions.
type InteractionFacade interface {
	ManagementFacade
	DecisionFacade
	IsOwner(userID string) bool
}

// OrderDeskFacade aggregates the full set of operations used across handlers.
type OrderDeskFacade interface {
	IntakeFacade
	OwnerAuthFacade
	ManagementFacade
	DecisionFacade
}
