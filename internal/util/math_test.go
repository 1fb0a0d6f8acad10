package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerce(t *testing.T) {
	assert.Equal(t, 5, Coerce(5, 0, 10))
	assert.Equal(t, 0, Coerce(-3, 0, 10))
	assert.Equal(t, 10, Coerce(42, 0, 10))
	assert.Equal(t, 1.5, Coerce(1.5, 1.0, 2.0))
}
