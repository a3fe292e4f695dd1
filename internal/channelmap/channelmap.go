// Package channelmap resolves raw (channel, subtype) pairs to canonical
// sales-channel identifiers. The mapping is business data that grows over
// time, so it lives in an external YAML file rather than in code.
package channelmap

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Table maps a channel-subtype key (channel_slug + subtype, concatenated
// with no separator) to a canonical channel identifier.
type Table struct {
	entries map[string]string
}

// mapFile is the on-disk layout of a channel mapping file.
type mapFile struct {
	Channels map[string]string `yaml:"channels"`
}

// Load reads a channel mapping table from a YAML file.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "channelmap: open file")
	}
	defer f.Close() //nolint:errcheck

	t, err := Parse(f)
	if err != nil {
		return nil, eris.Wrapf(err, "channelmap: parse %s", path)
	}

	zap.L().Debug("channelmap: loaded",
		zap.String("path", path),
		zap.Int("entries", t.Len()),
	)
	return t, nil
}

// Parse reads a channel mapping table from YAML.
func Parse(r io.Reader) (*Table, error) {
	var mf mapFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&mf); err != nil {
		return nil, eris.Wrap(err, "channelmap: decode yaml")
	}
	if len(mf.Channels) == 0 {
		return nil, eris.New("channelmap: no channel entries")
	}
	return &Table{entries: mf.Channels}, nil
}

// New builds a table directly from entries. Used by tests and callers that
// assemble mappings programmatically.
func New(entries map[string]string) *Table {
	copied := make(map[string]string, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &Table{entries: copied}
}

// Key builds the channel-subtype lookup key from a record's raw fields.
func Key(channelSlug, subtype string) string {
	return channelSlug + subtype
}

// Lookup returns the canonical channel for a channel-subtype key.
// An unmapped key is not an error: ok is false and the channel is empty.
func (t *Table) Lookup(key string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.entries[key]
	return v, ok
}

// Len returns the number of mapping entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
