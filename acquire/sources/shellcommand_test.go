package sources

import (
	"testing"

	"geoengine/acquire"

	"github.com/stretchr/testify/assert"
)

func TestShellCommandIDAndTitle(t *testing.T) {
	s := &ShellCommand{Name: "dump traces"}
	assert.Equal(t, "shell:dump traces", s.ID())
	assert.Equal(t, "dump traces", s.Title())
	assert.Equal(t, acquire.InputNone, s.InputType())
	assert.True(t, s.Autoview())
}
