package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputFrame(t *testing.T) {
	var f InputFrame
	assert.False(t, f.Has(ActionUp), "zero frame should have no actions")

	f.Set(ActionUp)
	f.Set(ActionRestart)
	assert.True(t, f.Has(ActionUp))
	assert.True(t, f.Has(ActionRestart))
	assert.False(t, f.Has(ActionDown))

	f.Clear()
	assert.False(t, f.Has(ActionUp), "Clear should drop all actions")
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "Continue", ActionContinue.String())
	assert.Equal(t, "Unknown", Action(99).String())
}
