package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/strand/internal/util"
)

func TestSet(t *testing.T) {
	s := util.SetOf("left", "right")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("left"))
	assert.False(t, s.Contains("center"))

	s.Add("center")
	assert.True(t, s.Contains("center"))

	s.Remove("left")
	assert.False(t, s.Contains("left"))
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.IsEmpty())

	s.Remove("right")
	s.Remove("center")
	assert.True(t, s.IsEmpty())
}
