package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateEntry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			"driver duplicate-key error",
			errors.New("Error 1062 (23000): Duplicate entry 'ana@example.com' for key 'Usuarios.email'"),
			true,
		},
		{"unrelated driver error", errors.New("Error 1146 (42S02): Table 'soporte.Usuarios' doesn't exist"), false},
		{"nil error", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDuplicateEntry(tt.err))
		})
	}
}
