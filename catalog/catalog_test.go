package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	kinds := Kinds()
	assert.Len(t, kinds, 11)
	assert.Equal(t, Alert, kinds[0])
	assert.Equal(t, DisableButton, kinds[len(kinds)-1])

	all := All()
	require.Len(t, all, len(kinds))
	for i, def := range all {
		assert.Equal(t, kinds[i], def.Kind)
		assert.NotEmpty(t, def.Label)
		assert.NotEmpty(t, def.Description)
	}
}

func TestLookup(t *testing.T) {
	def, ok := Lookup(ShowImage)
	require.True(t, ok)
	assert.Equal(t, "Show Image", def.Label)
	require.Len(t, def.Fields, 2)
	assert.True(t, def.Fields[0].Required)
	assert.False(t, def.Fields[1].Required)

	f, ok := def.Field("altText")
	assert.True(t, ok)
	assert.Equal(t, FieldText, f.Type)

	_, ok = Lookup("teleport")
	assert.False(t, ok)
}

func TestLookup_ReturnsCopy(t *testing.T) {
	def, _ := Lookup(Alert)
	def.Fields[0].Label = "changed"

	again, _ := Lookup(Alert)
	assert.Equal(t, "Message", again.Fields[0].Label)
}

func TestStopsRun(t *testing.T) {
	for _, def := range All() {
		want := def.Kind == RefreshPage || def.Kind == CloseWindow
		assert.Equal(t, want, def.StopsRun(), def.Kind)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		params  map[string]any
		wantErr error
	}{
		{"no fields", RefreshPage, nil, nil},
		{"required present", Alert, map[string]any{"message": "hi"}, nil},
		{"required missing", Alert, map[string]any{}, ErrMissingParam},
		{"required blank", SetLocalStorage, map[string]any{"key": " ", "value": "v"}, ErrMissingParam},
		{"optional missing", IncreaseButtonSize, map[string]any{}, nil},
		{"number as float", IncreaseButtonSize, map[string]any{"scale": 1.5}, nil},
		{"number as text", IncreaseButtonSize, map[string]any{"scale": "2"}, nil},
		{"number invalid", IncreaseButtonSize, map[string]any{"scale": "huge"}, ErrInvalidParam},
		{"unknown kind", "teleport", nil, ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.kind, tt.params)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ReportsEveryMissingField(t *testing.T) {
	err := Validate(SetLocalStorage, map[string]any{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingParam)
	assert.Contains(t, err.Error(), "key")
	assert.Contains(t, err.Error(), "value")
}
