package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecision_IsValid(t *testing.T) {
	assert.True(t, DecisionRequired.IsValid())
	assert.True(t, DecisionNotRequired.IsValid())
	assert.True(t, DecisionRevised.IsValid())
	assert.False(t, Decision("Maybe").IsValid())
	assert.False(t, Decision("").IsValid())
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "Yes", DecisionRequired.String())
	assert.Equal(t, "No", DecisionNotRequired.String())
	assert.Equal(t, "Revised", DecisionRevised.String())
}
