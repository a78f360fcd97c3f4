package babel

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	json "github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru/v2"

	"geoengine/internal/status"
)

// Capability is a bitset of what a FileType or Device can do, decoded from
// GPSBabel's 6-character mode string ("rw" x {waypoint,track,route}),
// mirroring set_mode() in babel.cpp.
type Capability uint8

const (
	CapReadWaypoints Capability = 1 << iota
	CapWriteWaypoints
	CapReadTracks
	CapWriteTracks
	CapReadRoutes
	CapWriteRoutes
)

func parseCapability(mode string) Capability {
	var c Capability
	set := func(b bool, flag Capability) {
		if b {
			c |= flag
		}
	}
	get := func(i int) byte {
		if i < len(mode) {
			return mode[i]
		}
		return '-'
	}
	set(get(0) == 'r', CapReadWaypoints)
	set(get(1) == 'w', CapWriteWaypoints)
	set(get(2) == 'r', CapReadTracks)
	set(get(3) == 'w', CapWriteTracks)
	set(get(4) == 'r', CapReadRoutes)
	set(get(5) == 'w', CapWriteRoutes)
	return c
}

// FileType is one entry from GPSBabel's "-^3" file-format feature table.
type FileType struct {
	Identifier string
	Extension  string
	Label      string
	Caps       Capability
}

// Device is one entry from the same table describing a serial/USB device
// driver rather than a file format.
type Device struct {
	Identifier string
	Label      string
	Caps       Capability
}

// FeatureTable is the full set of formats/devices one GPSBabel binary
// advertises. It is expensive to (re)build — it requires actually running
// the binary — so it is what gets memoized by Registry.
type FeatureTable struct {
	FileTypes []FileType `json:"file_types"`
	Devices   []Device   `json:"devices"`
}

// Registry memoizes FeatureTable by the GPSBabel binary path exactly as
// passed to Features, since two installs at different paths may report
// different capabilities. The path is not resolved, so two spellings of
// the same binary are cached separately. This is purely a speed optimization over
// re-running the child process; deleting the cache just means the next
// Features call rebuilds it.
type Registry struct {
	cache *lru.Cache[string, FeatureTable]
}

// NewRegistry returns a Registry memoizing up to size distinct binary
// paths (in practice there's rarely more than one GPSBabel install on a
// machine, but the cap keeps this bounded rather than an unbounded map).
func NewRegistry(size int) (*Registry, error) {
	c, err := lru.New[string, FeatureTable](size)
	if err != nil {
		return nil, err
	}
	return &Registry{cache: c}, nil
}

// Features returns the FeatureTable for the GPSBabel binary at path,
// running "<path> -^3" and parsing its output if it's not already cached.
func (r *Registry) Features(ctx context.Context, path string) (FeatureTable, *status.Status) {
	if t, ok := r.cache.Get(path); ok {
		return t, status.Ok()
	}

	cmd := exec.CommandContext(ctx, path, "-^3")
	out, err := cmd.Output()
	if err != nil {
		return FeatureTable{}, status.Wrap(status.Error, "run gpsbabel -^3", err)
	}

	table := parseFeatureTable(out)
	r.cache.Add(path, table)
	return table, status.Ok()
}

// parseFeatureTable decodes GPSBabel's tab-separated "-^3" lines, per
// BabelFeatureLoader::import_progress_cb: a "serial" line describes a
// Device, a "file" line describes a FileType, anything else is ignored.
func parseFeatureTable(out []byte) FeatureTable {
	var table FeatureTable
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		tokens := strings.Split(scanner.Text(), "\t")
		if len(tokens) == 0 {
			continue
		}
		switch tokens[0] {
		case "serial":
			if len(tokens) != 6 {
				continue
			}
			table.Devices = append(table.Devices, Device{
				Identifier: tokens[2],
				Label:      tokens[4],
				Caps:       parseCapability(tokens[1]),
			})
		case "file":
			if len(tokens) != 6 {
				continue
			}
			table.FileTypes = append(table.FileTypes, FileType{
				Identifier: tokens[2],
				Extension:  tokens[3],
				Label:      tokens[4],
				Caps:       parseCapability(tokens[1]),
			})
		}
	}
	return table
}

// persisted is the on-disk shape written by Save and read by Load (the CLI
// calls neither): a snapshot of every memoized path/table pair, not
// project state — deleting the file
// just costs the next run one extra "-^3" invocation per binary.
type persisted struct {
	Tables map[string]FeatureTable `json:"tables"`
}

// Save writes the registry's current memoization state to path as JSON.
func (r *Registry) Save(path string) error {
	p := persisted{Tables: make(map[string]FeatureTable)}
	for _, key := range r.cache.Keys() {
		if t, ok := r.cache.Peek(key); ok {
			p.Tables[key] = t
		}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal babel feature cache: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load populates the registry's memoization cache from a file previously
// written by Save. A missing or corrupt file is not an error: it just
// means every path gets rebuilt on first use.
func (r *Registry) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	for k, v := range p.Tables {
		r.cache.Add(k, v)
	}
	return nil
}
