package mapper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultNowFunc(t *testing.T) {
	tests := []struct {
		name string
		args []any
	}{
		{"default RFC3339", []any{}},
		{"custom format", []any{"2006-01-02"}},
		{"another custom format", []any{"15:04:05"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DefaultNowFunc(context.Background(), nil, nil, tt.args...)
			assert.NoError(t, err)
			_, ok := result.(string)
			assert.True(t, ok)
		})
	}
}

func TestParseFunctionCall(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *FunctionCall
	}{
		{"no args", "now()", &FunctionCall{Name: "now", Args: nil}},
		{"quoted string arg", `now("2006-01-02")`, &FunctionCall{Name: "now", Args: []any{"2006-01-02"}}},
		{"multiple args", "func(arg1, 42, 3.14)", &FunctionCall{Name: "func", Args: []any{"arg1", int64(42), 3.14}}},
		{"not a call", "just a string", nil},
		{"empty string", "", nil},
		{"invalid format", "func(", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFunctionCall(tt.in)
			assert.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, tt.want.Name, got.Name)
				assert.Equal(t, tt.want.Args, got.Args)
			}
		})
	}
}
