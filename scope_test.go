package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		segments []string
		expected string
	}{
		{"append simple", "/user", []string{"name"}, "/user/name"},
		{"absolute override", "/user/name", []string{"/order/id"}, "/order/id"},
		{"dot is no-op", "/user", []string{"."}, "/user"},
		{"dotdot walks up", "/user/address/city", []string{".."}, "/user/address"},
		{"dotdot past root stays at root", "/user", []string{"..", ".."}, "/"},
		{"slash joined relative path", "/user", []string{"address/city"}, "/user/address/city"},
		{"empty segment ignored", "/user", []string{""}, "/user"},
		{"leading-slash segment overrides base", "/items", []string{"/0", "id"}, "/0/id"},
		{"bare numeric segment appends", "/items", []string{"0", "id"}, "/items/0/id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Resolve(tt.base, tt.segments...))
		})
	}
}
