package obd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParameterRegistryIsValid(t *testing.T) {
	assert.NoError(t, ValidateParameters())
}

func TestGetParameter(t *testing.T) {
	// WHEN
	p, ok := GetParameter("SPEED")

	// THEN
	assert.True(t, ok)
	assert.Equal(t, "Speed", p.Title)
	assert.Equal(t, "mph", p.Unit)
	assert.False(t, p.Derived)

	_, ok = GetParameter("WARP_DRIVE")
	assert.False(t, ok)
}

func TestDerivedParametersDeclareDependencies(t *testing.T) {
	for _, p := range Parameters() {
		if p.Derived {
			assert.NotEmpty(t, p.DependsOn, "derived parameter %s has no dependencies", p.Id)
		} else {
			assert.Empty(t, p.DependsOn)
		}
	}
}
