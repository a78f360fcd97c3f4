package babel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCapability(t *testing.T) {
	assert.Equal(t, CapReadWaypoints|CapWriteWaypoints|CapReadTracks|CapWriteTracks|CapReadRoutes|CapWriteRoutes, parseCapability("rwrwrw"))
	assert.Equal(t, CapReadWaypoints, parseCapability("r-----"))
	assert.Equal(t, Capability(0), parseCapability("------"))
	assert.Equal(t, Capability(0), parseCapability(""))
}

func TestParseFeatureTable(t *testing.T) {
	out := []byte(
		"serial\trw----\tgarmin\tGarmin Serial\tGarmin GPS\tserial\n" +
			"file\t--rw--\tgpx\tgpx\tGPS Exchange Format\tfile\n" +
			"garbage line with no tabs\n" +
			"file\ttoo\tfew\n",
	)
	table := parseFeatureTable(out)

	if assert.Len(t, table.Devices, 1) {
		assert.Equal(t, "garmin", table.Devices[0].Identifier)
		assert.Equal(t, "Garmin GPS", table.Devices[0].Label)
		assert.Equal(t, CapReadWaypoints|CapWriteWaypoints, table.Devices[0].Caps)
	}
	if assert.Len(t, table.FileTypes, 1) {
		assert.Equal(t, "gpx", table.FileTypes[0].Identifier)
		assert.Equal(t, "gpx", table.FileTypes[0].Extension)
		assert.Equal(t, "GPS Exchange Format", table.FileTypes[0].Label)
		assert.Equal(t, CapReadTracks|CapWriteTracks, table.FileTypes[0].Caps)
	}
}

func TestRegistrySaveLoadRoundTrip(t *testing.T) {
	r, err := NewRegistry(8)
	assert.NoError(t, err)
	r.cache.Add("/usr/bin/gpsbabel", FeatureTable{
		FileTypes: []FileType{{Identifier: "gpx", Extension: "gpx", Label: "GPS Exchange Format", Caps: CapReadTracks}},
	})

	path := t.TempDir() + "/babel-features.json"
	assert.NoError(t, r.Save(path))

	r2, err := NewRegistry(8)
	assert.NoError(t, err)
	assert.NoError(t, r2.Load(path))

	table, ok := r2.cache.Get("/usr/bin/gpsbabel")
	assert.True(t, ok)
	if assert.Len(t, table.FileTypes, 1) {
		assert.Equal(t, "gpx", table.FileTypes[0].Identifier)
	}
}

func TestRegistryLoadMissingFileIsNotAnError(t *testing.T) {
	r, err := NewRegistry(8)
	assert.NoError(t, err)
	assert.NoError(t, r.Load(t.TempDir()+"/does-not-exist.json"))
}
