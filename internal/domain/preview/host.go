package preview

import (
	"sync"

	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

// Sender delivers host messages to a preview
type Sender interface {
	Send(Message) error
}

// SenderFunc adapts a function to Sender
type SenderFunc func(Message) error

// Send calls f(m)
func (f SenderFunc) Send(m Message) error {
	return f(m)
}

// Host owns the theme state of a detail page and pushes it to previews
type Host struct {
	mu     sync.Mutex
	state  types.ThemeState
	sender Sender
}

// NewHost creates a host with an initial state
func NewHost(state types.ThemeState, sender Sender) *Host {
	return &Host{state: state, sender: sender}
}

// State returns the current theme state
func (h *Host) State() types.ThemeState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// SetMode changes the mode and pushes one theme-change
func (h *Host) SetMode(mode types.ThemeMode) error {
	if !mode.Valid() {
		return ErrInvalidTheme
	}
	h.mu.Lock()
	h.state.Mode = mode
	h.mu.Unlock()
	return h.send(ThemeChange(mode))
}

// SetPreset changes the preset and pushes one theme-preset-change
func (h *Host) SetPreset(preset types.Preset) error {
	if preset.Name == "" {
		return ErrMissingPreset
	}
	h.mu.Lock()
	h.state.Preset = preset
	h.mu.Unlock()
	return h.send(PresetChange(preset))
}

// Handle reacts to a message from a preview. preview-ready is answered with
// the full current state; other messages are ignored.
func (h *Host) Handle(m Message) error {
	if m.Type != TypePreviewReady {
		return nil
	}
	return h.Sync(h.sender)
}

// Sync sends exactly one theme-change then one theme-preset-change to s
func (h *Host) Sync(s Sender) error {
	if s == nil {
		return nil
	}
	state := h.State()
	if err := s.Send(ThemeChange(state.Mode)); err != nil {
		return err
	}
	return s.Send(PresetChange(state.Preset))
}

// Detach drops the sender so later changes go nowhere
func (h *Host) Detach() {
	h.mu.Lock()
	h.sender = nil
	h.mu.Unlock()
}

func (h *Host) send(m Message) error {
	h.mu.Lock()
	s := h.sender
	h.mu.Unlock()
	if s == nil {
		return nil
	}
	return s.Send(m)
}
