package babel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandLineWithoutUnbuffer(t *testing.T) {
	r := Runner{Program: "/usr/bin/gpsbabel"}
	prog, args := r.commandLine([]string{"-i", "gpx"})
	assert.Equal(t, "/usr/bin/gpsbabel", prog)
	assert.Equal(t, []string{"-i", "gpx"}, args)
}

func TestCommandLineWithUnbuffer(t *testing.T) {
	r := Runner{Program: "/usr/bin/gpsbabel", Unbuffer: "/usr/bin/unbuffer"}
	prog, args := r.commandLine([]string{"-i", "gpx"})
	assert.Equal(t, "/usr/bin/unbuffer", prog)
	assert.Equal(t, []string{"/usr/bin/gpsbabel", "-i", "gpx"}, args)
}

func TestConvertSpecArgv(t *testing.T) {
	spec := ConvertSpec{InputFormat: "garmin", InputFile: "-", Filters: []string{"-x", "simplify,count=100"}}
	assert.Equal(t, []string{"-i", "garmin", "-f", "-", "-x", "simplify,count=100", "-o", "gpx", "-F", "-"}, spec.argv())
}

func TestConvertSpecArgvWithoutInputFormat(t *testing.T) {
	spec := ConvertSpec{InputFile: "/tmp/track.gpx"}
	assert.Equal(t, []string{"-f", "/tmp/track.gpx", "-o", "gpx", "-F", "-"}, spec.argv())
}

func TestRunGPXPropagatesStartFailure(t *testing.T) {
	r := Runner{Program: "/no/such/gpsbabel/binary"}
	g, st := r.RunGPX(context.Background(), ConvertSpec{InputFile: "-"}, nil)
	require.Nil(t, g)
	assert.False(t, st.Kind.OK())
}
