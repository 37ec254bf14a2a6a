package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Action kind identifiers.
const (
	Alert              = "alert"
	ShowText           = "showText"
	ShowImage          = "showImage"
	RefreshPage        = "refreshPage"
	SetLocalStorage    = "setLocalStorage"
	GetLocalStorage    = "getLocalStorage"
	IncreaseButtonSize = "increaseButtonSize"
	CloseWindow        = "closeWindow"
	PromptAndShow      = "promptAndShow"
	ChangeButtonColor  = "changeButtonColor"
	DisableButton      = "disableButton"
)

var (
	// ErrUnknownKind is returned for a kind that is not in the catalog.
	ErrUnknownKind = errors.New("unknown action kind")
	// ErrMissingParam is returned when a required field has no value.
	ErrMissingParam = errors.New("missing required parameter")
	// ErrInvalidParam is returned when a number field does not hold a number.
	ErrInvalidParam = errors.New("invalid parameter")
)

// FieldType is the input type of a parameter field.
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldColor  FieldType = "color"
	FieldNumber FieldType = "number"
)

// Field describes one parameter of an action kind.
type Field struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required"`
}

// Definition describes an action kind.
type Definition struct {
	Kind        string  `json:"type"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Fields      []Field `json:"paramFields"`
}

// Field returns the field with the given name.
func (d Definition) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// StopsRun reports whether the kind ends the current run by tearing down
// the host.
func (d Definition) StopsRun() bool {
	return d.Kind == RefreshPage || d.Kind == CloseWindow
}

var definitions = []Definition{
	{
		Kind:        Alert,
		Label:       "Alert",
		Description: "Show an alert message",
		Fields: []Field{
			{Name: "message", Label: "Message", Type: FieldText, Placeholder: "Enter alert message", Required: true},
		},
	},
	{
		Kind:        ShowText,
		Label:       "Show Text",
		Description: "Render text below the button",
		Fields: []Field{
			{Name: "text", Label: "Text", Type: FieldText, Placeholder: "Enter text to display", Required: true},
		},
	},
	{
		Kind:        ShowImage,
		Label:       "Show Image",
		Description: "Show an image",
		Fields: []Field{
			{Name: "url", Label: "Image URL", Type: FieldText, Placeholder: "Enter image URL", Required: true},
			{Name: "altText", Label: "Alt Text", Type: FieldText, Placeholder: "Enter image alt text"},
		},
	},
	{
		Kind:        RefreshPage,
		Label:       "Refresh Page",
		Description: "Reload the window",
	},
	{
		Kind:        SetLocalStorage,
		Label:       "Set LocalStorage",
		Description: "Save a key-value pair in localStorage",
		Fields: []Field{
			{Name: "key", Label: "Key", Type: FieldText, Placeholder: "Enter key", Required: true},
			{Name: "value", Label: "Value", Type: FieldText, Placeholder: "Enter value", Required: true},
		},
	},
	{
		Kind:        GetLocalStorage,
		Label:       "Get LocalStorage",
		Description: "Fetch a key and show it as text",
		Fields: []Field{
			{Name: "key", Label: "Key", Type: FieldText, Placeholder: "Enter key to fetch", Required: true},
		},
	},
	{
		Kind:        IncreaseButtonSize,
		Label:       "Increase Button Size",
		Description: "Make the button grow on click",
		Fields: []Field{
			{Name: "scale", Label: "Scale Factor", Type: FieldNumber, Placeholder: "Enter scale factor (e.g. 1.2)"},
		},
	},
	{
		Kind:        CloseWindow,
		Label:       "Close Window",
		Description: "Try to close the window (may not work depending on browser permissions)",
	},
	{
		Kind:        PromptAndShow,
		Label:       "Prompt and Show",
		Description: "Ask user for input and show their response",
		Fields: []Field{
			{Name: "promptMessage", Label: "Prompt Message", Type: FieldText, Placeholder: "Enter prompt message", Required: true},
		},
	},
	{
		Kind:        ChangeButtonColor,
		Label:       "Change Button Color",
		Description: "Change the button's color",
		Fields: []Field{
			{Name: "color", Label: "Color", Type: FieldColor, Placeholder: "#000000"},
		},
	},
	{
		Kind:        DisableButton,
		Label:       "Disable Button",
		Description: "Disable the button after the action is triggered",
	},
}

var byKind = func() map[string]int {
	m := make(map[string]int, len(definitions))
	for i, d := range definitions {
		m[d.Kind] = i
	}
	return m
}()

// Lookup returns the definition of kind.
func Lookup(kind string) (Definition, bool) {
	i, ok := byKind[kind]
	if !ok {
		return Definition{}, false
	}
	return clone(definitions[i]), true
}

// All returns every definition in catalog order.
func All() []Definition {
	out := make([]Definition, len(definitions))
	for i, d := range definitions {
		out[i] = clone(d)
	}
	return out
}

// Kinds returns every kind identifier in catalog order.
func Kinds() []string {
	out := make([]string, len(definitions))
	for i, d := range definitions {
		out[i] = d.Kind
	}
	return out
}

// Validate checks params against the fields of kind. Required fields must be
// non-empty and number fields must parse as numbers. Parameters the kind
// does not declare are ignored.
func Validate(kind string, params map[string]any) error {
	def, ok := Lookup(kind)
	if !ok {
		return fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}

	var errs []error
	for _, f := range def.Fields {
		raw, present := params[f.Name]
		text := ""
		if present && raw != nil {
			text = strings.TrimSpace(fmt.Sprint(raw))
		}
		if text == "" {
			if f.Required {
				errs = append(errs, fmt.Errorf("%s: %s: %w", kind, f.Name, ErrMissingParam))
			}
			continue
		}
		if f.Type == FieldNumber {
			if _, err := strconv.ParseFloat(text, 64); err != nil {
				errs = append(errs, fmt.Errorf("%s: %s=%q is not a number: %w", kind, f.Name, text, ErrInvalidParam))
			}
		}
	}
	return errors.Join(errs...)
}

func clone(d Definition) Definition {
	if d.Fields != nil {
		d.Fields = append([]Field(nil), d.Fields...)
	}
	return d
}
