package keyboard

import (
	"fmt"
	"strings"
)

// Telegram rejects buttons whose callback data exceeds 64 bytes
const maxCallbackData = 64

// CallbackData is a parsed "<action>:<value>" button payload
type CallbackData struct {
	Action string
	Value  string
}

// Split returns the value up to the first ':' and the remainder
func (d *CallbackData) Split() (string, string) {
	head, rest, _ := strings.Cut(d.Value, ":")
	return head, rest
}

func ParseCallback(data string) (*CallbackData, error) {
	if len(data) > maxCallbackData {
		return nil, fmt.Errorf("callback data too long: %d bytes", len(data))
	}

	action, value, ok := strings.Cut(data, ":")
	if !ok || action == "" || value == "" {
		return nil, fmt.Errorf("invalid callback format: %q", data)
	}

	return &CallbackData{Action: action, Value: value}, nil
}

// EncodeCallback joins the action and its value parts with ':'
func EncodeCallback(action string, parts ...string) string {
	return action + ":" + strings.Join(parts, ":")
}
