package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{"a@b.com", true},
		{"marcelina.davis+test@foo-corp.com", true},
		{"", false},
		{"no-at-sign", false},
		{"a@localhost", false},
		{"a@b.", false},
		{"Ada <a@b.com>", false},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.addr))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Ada@example.com", Normalize("  Ada@EXAMPLE.com "))
	assert.Equal(t, "plain", Normalize("plain"))
}
