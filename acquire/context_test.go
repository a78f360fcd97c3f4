package acquire

import (
	"testing"

	"geoengine/coords"
	"geoengine/viewport"

	"github.com/stretchr/testify/assert"
)

func TestNewContextCarriesCollaborators(t *testing.T) {
	vp := &viewport.Static{Mode: coords.ModeUTM}
	ctx := NewContext(vp, nil)
	assert.Same(t, vp, ctx.Viewport)
	assert.Nil(t, ctx.Layer)
	assert.Nil(t, ctx.TargetTRW)
	assert.False(t, ctx.TargetAllocated)
}
