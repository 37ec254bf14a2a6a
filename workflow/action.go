package workflow

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Params maps parameter names to string or number values.
type Params map[string]any

// Action is one step of a workflow.
type Action struct {
	ID     string `json:"id" yaml:"id"`
	Kind   string `json:"type" yaml:"type"`
	Params Params `json:"params" yaml:"params,omitempty"`
}

// NewAction creates an action with a fresh id.
func NewAction(kind string, params Params) Action {
	if params == nil {
		params = Params{}
	}
	return Action{
		ID:     uuid.New().String(),
		Kind:   kind,
		Params: params,
	}
}

// String returns the named parameter as text. Numbers are formatted without
// a trailing zero fraction. A missing, nil or empty value yields def.
func (p Params) String(name, def string) string {
	v, ok := p[name]
	if !ok || v == nil {
		return def
	}

	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	case json.Number:
		s = t.String()
	default:
		s = fmt.Sprint(t)
	}
	if s == "" {
		return def
	}
	return s
}

// Float returns the named parameter as a number. Strings are parsed; a
// missing, zero, or unparsable value yields def.
func (p Params) Float(name string, def float64) float64 {
	v, ok := p[name]
	if !ok || v == nil {
		return def
	}

	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return def
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return def
		}
		f = parsed
	default:
		return def
	}
	if f == 0 {
		return def
	}
	return f
}

// Has reports whether the named parameter is present and non-empty.
func (p Params) Has(name string) bool {
	return p.String(name, "") != ""
}

// Clone returns a shallow copy of the parameters.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
