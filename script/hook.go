// Package script runs map-authored tengo hooks when items emit signals.
//
// A hook sees the globals item_id, signal and state (the signal payload as a
// map) and may assign a string to message, which the client shows above the
// item.
package script

import (
	"encoding/json"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

type Hook struct {
	name     string
	compiled *tengo.Compiled
}

// Compile prepares a hook. name is only used in errors.
func Compile(name string, src []byte) (*Hook, error) {
	script := tengo.NewScript(src)
	_ = script.Add("item_id", 0)
	_ = script.Add("signal", "")
	_ = script.Add("state", map[string]any{})
	_ = script.Add("message", "")

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Hook{name: name, compiled: compiled}, nil
}

func (h *Hook) Name() string { return h.name }

// Run executes the hook for one signal and returns the message it set.
func (h *Hook) Run(itemID int, signal string, state any) (string, error) {
	if h == nil || h.compiled == nil {
		return "", nil
	}
	stateMap, err := toMap(state)
	if err != nil {
		return "", fmt.Errorf("script: %s: %w", h.name, err)
	}

	c := h.compiled.Clone()
	if err := c.Set("item_id", itemID); err != nil {
		return "", fmt.Errorf("script: %s: %w", h.name, err)
	}
	if err := c.Set("signal", signal); err != nil {
		return "", fmt.Errorf("script: %s: %w", h.name, err)
	}
	if err := c.Set("state", stateMap); err != nil {
		return "", fmt.Errorf("script: %s: %w", h.name, err)
	}
	if err := c.Set("message", ""); err != nil {
		return "", fmt.Errorf("script: %s: %w", h.name, err)
	}
	if err := c.Run(); err != nil {
		return "", fmt.Errorf("script: run %s: %w", h.name, err)
	}
	return c.Get("message").String(), nil
}

// toMap flattens a signal payload into the generic form tengo understands.
func toMap(state any) (map[string]any, error) {
	if state == nil {
		return map[string]any{}, nil
	}
	if m, ok := state.(map[string]any); ok {
		return m, nil
	}
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("state is not an object: %w", err)
	}
	return out, nil
}
