package preview

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

// MessageType tags a protocol message
type MessageType string

const (
	TypePreviewReady MessageType = "preview-ready"
	TypeThemeChange  MessageType = "theme-change"
	TypePresetChange MessageType = "theme-preset-change"
)

// Protocol errors
var (
	ErrUnknownType   = errors.New("unknown message type")
	ErrInvalidTheme  = errors.New("invalid theme mode")
	ErrMissingPreset = errors.New("missing preset")
)

// Message is one protocol message
type Message struct {
	Type   MessageType     `json:"type"`
	Theme  types.ThemeMode `json:"theme,omitempty"`
	Preset *types.Preset   `json:"preset,omitempty"`
}

// Ready is sent by a preview once it listens for theme messages
func Ready() Message {
	return Message{Type: TypePreviewReady}
}

// ThemeChange carries the host's mode
func ThemeChange(mode types.ThemeMode) Message {
	return Message{Type: TypeThemeChange, Theme: mode}
}

// PresetChange carries the host's preset
func PresetChange(preset types.Preset) Message {
	p := preset
	return Message{Type: TypePresetChange, Preset: &p}
}

// Validate checks the tag and its payload
func (m Message) Validate() error {
	switch m.Type {
	case TypePreviewReady:
		return nil
	case TypeThemeChange:
		if !m.Theme.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidTheme, m.Theme)
		}
		return nil
	case TypePresetChange:
		if m.Preset == nil || m.Preset.Name == "" {
			return ErrMissingPreset
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, m.Type)
	}
}

// Decode parses and validates a message
func Decode(data []byte) (Message, error) {
	var m Message
	if err := sonic.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("failed to decode message: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Message{}, err
	}
	return m, nil
}

// Encode serializes a message
func Encode(m Message) ([]byte, error) {
	return sonic.Marshal(m)
}
