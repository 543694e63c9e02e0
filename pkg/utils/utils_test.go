package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCeilToPowerOfTwo(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-1, 2},
		{0, 2},
		{1, 2},
		{2, 2},
		{3, 4},
		{17, 32},
		{64, 64},
		{100, 128},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CeilToPowerOfTwo(tt.in), "CeilToPowerOfTwo(%d)", tt.in)
		got := CeilToPowerOfTwo(tt.in)
		assert.Zero(t, got&(got-1), "%d is not a power of two", got)
	}
}

func TestDurations(t *testing.T) {
	assert.Equal(t, 3*time.Second, ToDuration(3))
	assert.Equal(t, 150*time.Millisecond, ToDurationMs(150))
	assert.Equal(t, time.Duration(0), ToDurationMs(0))
}
