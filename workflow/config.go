package workflow

import (
	"errors"
	"fmt"
)

// DefaultButtonLabel is the label of a freshly created workflow.
const DefaultButtonLabel = "Click Me"

// ErrActionNotFound is returned by editing operations for an unknown id.
var ErrActionNotFound = errors.New("action not found")

// Config is the persisted description of what the button does.
type Config struct {
	ButtonLabel string   `json:"buttonLabel" yaml:"buttonLabel"`
	Actions     []Action `json:"actions" yaml:"actions"`
}

// DefaultConfig returns the configuration used when nothing is stored.
func DefaultConfig() *Config {
	return &Config{
		ButtonLabel: DefaultButtonLabel,
		Actions:     []Action{},
	}
}

// Index returns the position of the action with the given id, or -1.
func (c *Config) Index(id string) int {
	for i, a := range c.Actions {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// Add appends an action. An empty id is filled in.
func (c *Config) Add(action Action) Action {
	if action.ID == "" {
		action.ID = NewAction(action.Kind, nil).ID
	}
	if action.Params == nil {
		action.Params = Params{}
	}
	c.Actions = append(c.Actions, action)
	return action
}

// Update replaces the action with the given id, keeping its id and position.
func (c *Config) Update(id string, action Action) error {
	i := c.Index(id)
	if i < 0 {
		return fmt.Errorf("update %s: %w", id, ErrActionNotFound)
	}
	action.ID = id
	if action.Params == nil {
		action.Params = Params{}
	}
	c.Actions[i] = action
	return nil
}

// Remove deletes the action with the given id.
func (c *Config) Remove(id string) error {
	i := c.Index(id)
	if i < 0 {
		return fmt.Errorf("remove %s: %w", id, ErrActionNotFound)
	}
	c.Actions = append(c.Actions[:i], c.Actions[i+1:]...)
	return nil
}

// Move relocates the action with the given id to position to, shifting the
// actions in between. Positions outside the list are clamped.
func (c *Config) Move(id string, to int) error {
	from := c.Index(id)
	if from < 0 {
		return fmt.Errorf("move %s: %w", id, ErrActionNotFound)
	}
	if to < 0 {
		to = 0
	}
	if to >= len(c.Actions) {
		to = len(c.Actions) - 1
	}
	if from == to {
		return nil
	}

	moved := c.Actions[from]
	c.Actions = append(c.Actions[:from], c.Actions[from+1:]...)
	c.Actions = append(c.Actions[:to], append([]Action{moved}, c.Actions[to:]...)...)
	return nil
}

// Resolve finds an action by id, by unique id prefix, or by 1-based
// position written as "#n".
func (c *Config) Resolve(ref string) (int, error) {
	if len(ref) > 1 && ref[0] == '#' {
		var n int
		if _, err := fmt.Sscanf(ref[1:], "%d", &n); err == nil && n >= 1 && n <= len(c.Actions) {
			return n - 1, nil
		}
		return -1, fmt.Errorf("position %s: %w", ref, ErrActionNotFound)
	}

	if i := c.Index(ref); i >= 0 {
		return i, nil
	}

	match := -1
	for i, a := range c.Actions {
		if ref != "" && len(a.ID) >= len(ref) && a.ID[:len(ref)] == ref {
			if match >= 0 {
				return -1, fmt.Errorf("id prefix %q is ambiguous", ref)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%s: %w", ref, ErrActionNotFound)
	}
	return match, nil
}
