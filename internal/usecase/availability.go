package usecase

import (
	"sync"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// AvailabilityRegister holds the process-wide intake state. It starts open on
// every process start and is never persisted.
type AvailabilityRegister struct {
	mu    sync.RWMutex
	state model.Availability
}

// NewAvailabilityRegister returns a register in the open state.
func NewAvailabilityRegister() *AvailabilityRegister {
	return &AvailabilityRegister{state: model.AvailabilityOpen}
}

// Get returns the current state.
func (r *AvailabilityRegister) Get() model.Availability {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Set moves to any of the known states.
func (r *AvailabilityRegister) Set(value string) (model.Availability, error) {
	state, ok := model.ParseAvailability(value)
	if !ok {
		return "", domainErrors.ErrInvalidAvailability
	}
	r.mu.Lock()
	r.state = state
	r.mu.Unlock()
	return state, nil
}
