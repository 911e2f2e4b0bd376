package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewExclusionSet_NormalisesNames(t *testing.T) {
	set := NewExclusionSet([]string{"  Acme Ltd  ", "GLOBEX", "", "   "})

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains("ACME LTD"))
	assert.True(t, set.Contains("acme ltd"))
	assert.True(t, set.Contains("  Globex  "))
}

func TestExclusionSet_Contains_Miss(t *testing.T) {
	set := NewExclusionSet([]string{"Acme Ltd"})

	assert.False(t, set.Contains("Acme"))
	assert.False(t, set.Contains(""))
}

func TestExclusionSet_Empty(t *testing.T) {
	set := NewExclusionSet(nil)

	assert.Equal(t, 0, set.Len())
	assert.False(t, set.Contains("anything"))
}
