package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLTitleFromPath(t *testing.T) {
	s := &URL{Source: "https://example.com/tracks/ride.gpx"}
	assert.Equal(t, "ride.gpx", s.Title())
}

func TestURLTitleFallsBackToHostWhenNoPath(t *testing.T) {
	s := &URL{Source: "https://example.com/"}
	assert.Equal(t, "example.com/", s.Title())
}

func TestURLID(t *testing.T) {
	s := &URL{Source: "https://example.com/ride.gpx"}
	assert.Equal(t, "url:https://example.com/ride.gpx", s.ID())
}
