package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 3.50, RoundCents(3.497))
	assert.Equal(t, 3.49, RoundCents(3.494))
	assert.Equal(t, 42.46, RoundCents(42.457))
	assert.Equal(t, 0.0, RoundCents(0))
	assert.Equal(t, 10.0, RoundCents(9.999))
}
