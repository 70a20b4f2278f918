package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageBounds(t *testing.T) {
	tests := []struct {
		n, limit, offset int
		start, end       int
	}{
		{10, 0, 0, 0, 10},
		{10, 3, 0, 0, 3},
		{10, 3, 9, 9, 10},
		{10, 3, 20, 10, 10},
		{10, -1, -5, 0, 10},
		{0, 5, 0, 0, 0},
	}

	for _, tt := range tests {
		start, end := pageBounds(tt.n, tt.limit, tt.offset)
		assert.Equal(t, tt.start, start, "%+v", tt)
		assert.Equal(t, tt.end, end, "%+v", tt)
	}
}
