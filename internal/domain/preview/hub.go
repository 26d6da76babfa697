package preview

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/blockhub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/blockhub/internal/shared/id"
	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

// Role identifies which side of a channel a connection is
type Role string

const (
	RoleHost    Role = "host"
	RolePreview Role = "preview"
)

// Hub errors
var (
	ErrInvalidChannel = errors.New("invalid channel id")
	ErrInvalidRole    = errors.New("invalid role")
	ErrNotAllowed     = errors.New("message not allowed for role")
)

// ParseRole validates a role string
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleHost, RolePreview:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// Client is one connection on a channel
type Client interface {
	Send(Message) error
}

// Observer receives hub activity, typically metrics
type Observer interface {
	RecordPreviewMessage(direction, msgType string)
	SetPreviewChannels(count int)
}

type channel struct {
	host       *Host
	hostClient Client
	previews   map[Client]struct{}
}

// Hub relays the preview protocol between a host and the previews of each channel
type Hub struct {
	mu       sync.Mutex
	channels map[id.ChannelID]*channel
	defaults types.ThemeState
	logger   *logging.Logger
	observer Observer
}

// NewHub creates a hub. defaults seeds the state of every new host.
func NewHub(defaults types.ThemeState, logger *logging.Logger, observer Observer) *Hub {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Hub{
		channels: make(map[id.ChannelID]*channel),
		defaults: defaults,
		logger:   logger.Named("preview"),
		observer: observer,
	}
}

// Join subscribes a client to a channel. A new host replaces any previous
// host of the channel and starts from the default state.
func (h *Hub) Join(ch id.ChannelID, role Role, c Client) error {
	if !id.IsValidPrefixed(ch.String(), id.ChannelPrefix) {
		return ErrInvalidChannel
	}
	if role != RoleHost && role != RolePreview {
		return ErrInvalidRole
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	chn := h.channels[ch]
	if chn == nil {
		chn = &channel{previews: make(map[Client]struct{})}
		h.channels[ch] = chn
		h.reportLocked()
	}

	switch role {
	case RoleHost:
		if chn.host != nil {
			chn.host.Detach()
			h.logger.Debug("Host replaced", zap.String("channel", ch.String()))
		}
		chn.hostClient = c
		chn.host = NewHost(h.defaults, h.fanout(ch))
	case RolePreview:
		chn.previews[c] = struct{}{}
	}

	h.logger.Debug("Client joined",
		zap.String("channel", ch.String()),
		zap.String("role", string(role)),
		zap.Int("previews", len(chn.previews)))
	return nil
}

// Leave unsubscribes a client. When the host leaves its state is dropped;
// the channel goes away once nobody is left on it.
func (h *Hub) Leave(ch id.ChannelID, role Role, c Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	chn := h.channels[ch]
	if chn == nil {
		return
	}

	switch role {
	case RoleHost:
		if chn.hostClient == c {
			chn.host.Detach()
			chn.host = nil
			chn.hostClient = nil
		}
	case RolePreview:
		delete(chn.previews, c)
	}

	if chn.host == nil && len(chn.previews) == 0 {
		delete(h.channels, ch)
		h.reportLocked()
	}
}

// Dispatch routes a message received from a client
func (h *Hub) Dispatch(ch id.ChannelID, role Role, c Client, m Message) error {
	if err := m.Validate(); err != nil {
		return err
	}
	h.observe("in", m.Type)

	h.mu.Lock()
	var host *Host
	var hostClient Client
	if chn := h.channels[ch]; chn != nil {
		host = chn.host
		hostClient = chn.hostClient
	}
	h.mu.Unlock()

	switch role {
	case RolePreview:
		if m.Type != TypePreviewReady {
			return fmt.Errorf("%w: %s", ErrNotAllowed, m.Type)
		}
		if host == nil {
			// No host yet; the preview keeps its own defaults
			return nil
		}
		return host.Sync(h.observed(c))

	case RoleHost:
		if host == nil || hostClient != c {
			return nil
		}
		switch m.Type {
		case TypeThemeChange:
			return host.SetMode(m.Theme)
		case TypePresetChange:
			preset, ok := ResolvePreset(*m.Preset)
			if !ok {
				return fmt.Errorf("unknown preset %q", m.Preset.Name)
			}
			return host.SetPreset(preset)
		default:
			return fmt.Errorf("%w: %s", ErrNotAllowed, m.Type)
		}
	}

	return ErrInvalidRole
}

// State returns the host state of a channel
func (h *Hub) State(ch id.ChannelID) (types.ThemeState, bool) {
	h.mu.Lock()
	var host *Host
	if chn := h.channels[ch]; chn != nil {
		host = chn.host
	}
	h.mu.Unlock()

	if host == nil {
		return types.ThemeState{}, false
	}
	return host.State(), true
}

// Channels returns the number of live channels
func (h *Hub) Channels() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.channels)
}

// fanout sends a host message to every preview on the channel
func (h *Hub) fanout(ch id.ChannelID) Sender {
	return SenderFunc(func(m Message) error {
		h.mu.Lock()
		chn := h.channels[ch]
		var targets []Client
		if chn != nil {
			targets = make([]Client, 0, len(chn.previews))
			for c := range chn.previews {
				targets = append(targets, c)
			}
		}
		h.mu.Unlock()

		var errs []error
		for _, c := range targets {
			if err := c.Send(m); err != nil {
				errs = append(errs, err)
				continue
			}
			h.observe("out", m.Type)
		}
		return errors.Join(errs...)
	})
}

func (h *Hub) observed(c Client) Sender {
	return SenderFunc(func(m Message) error {
		if err := c.Send(m); err != nil {
			return err
		}
		h.observe("out", m.Type)
		return nil
	})
}

func (h *Hub) observe(direction string, t MessageType) {
	if h.observer != nil {
		h.observer.RecordPreviewMessage(direction, string(t))
	}
}

func (h *Hub) reportLocked() {
	if h.observer != nil {
		h.observer.SetPreviewChannels(len(h.channels))
	}
}
