// Package config loads edit batches from JSON, TOML or YAML files and reads
// environment defaults for the command line.
//
// A batch is a list of entries, either at the top level (JSON, YAML) or under
// the "edits" key (all formats; TOML requires it):
//
//	[[edits]]
//	kind = "misjoin"        # or mtype
//	count = 2               # or number
//	length = 5000
//	length_min = 1000       # optional: draw the length in [length_min, length]
//
//	[[edits]]
//	kind = "false_duplication"
//	count = 1
//	length = 2000
//	max_duplications = 3
//
//	[[edits]]
//	kind = "collapse"
//	count = 1
//	length = 50             # largest repeat unit
//	length_min = 2          # smallest repeat unit
//	num_repeats = 1         # units kept
//
// Break entries need no length.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/logsdon-lab/misasim/edit"
	"github.com/logsdon-lab/misasim/misassembly"
	"github.com/logsdon-lab/misasim/sampler"
)

// Sentinel errors for batch loading.
var (
	// ErrBadBatch indicates a batch that parses but does not describe valid requests.
	ErrBadBatch = errors.New("config: bad batch")

	// ErrUnsupportedFormat indicates a file extension with no known decoder.
	ErrUnsupportedFormat = errors.New("config: unsupported format")
)

// Format is a batch file encoding.
type Format string

// Known formats.
const (
	JSON Format = "json"
	TOML Format = "toml"
	YAML Format = "yaml"
)

// batchKey holds the entries when the top level is a table.
const batchKey = "edits"

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", fmt.Errorf("config: %s: %w", path, ErrUnsupportedFormat)
}

// LoadFile reads and parses the batch at path.
func LoadFile(path string) ([]misassembly.Request, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	reqs, err := Parse(f, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reqs, nil
}

// Parse decodes data in format f into requests, in file order.
func Parse(f Format, data []byte) ([]misassembly.Request, error) {
	var (
		entries []fields
		err     error
	)
	switch f {
	case JSON:
		entries, err = jsonEntries(data)
	case TOML:
		entries, err = tomlEntries(data)
	case YAML:
		entries, err = yamlEntries(data)
	default:
		return nil, fmt.Errorf("config: format %q: %w", f, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, err
	}

	reqs := make([]misassembly.Request, 0, len(entries))
	for i, e := range entries {
		r, err := e.request()
		if err != nil {
			return nil, fmt.Errorf("config: entry %d: %w", i, err)
		}
		reqs = append(reqs, r)
	}
	return reqs, nil
}

// fields looks a key up in one decoded entry.
type fields func(key string) (any, bool)

func jsonEntries(data []byte) ([]fields, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("config: invalid JSON: %w", ErrBadBatch)
	}
	root := gjson.ParseBytes(data)
	if root.IsObject() {
		root = root.Get(batchKey)
	}
	if !root.IsArray() {
		return nil, fmt.Errorf("config: JSON batch must be an array or hold %q: %w", batchKey, ErrBadBatch)
	}
	var out []fields
	for _, e := range root.Array() {
		if !e.IsObject() {
			return nil, fmt.Errorf("config: JSON entry %s is not an object: %w", e.Raw, ErrBadBatch)
		}
		e := e
		out = append(out, func(key string) (any, bool) {
			v := e.Get(key)
			if !v.Exists() {
				return nil, false
			}
			return v.Value(), true
		})
	}
	return out, nil
}

func tomlEntries(data []byte) ([]fields, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: TOML: %v: %w", err, ErrBadBatch)
	}
	return tableEntries(doc[batchKey])
}

func yamlEntries(data []byte) ([]fields, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: YAML: %v: %w", err, ErrBadBatch)
	}
	if m, ok := doc.(map[string]any); ok {
		doc = m[batchKey]
	}
	return tableEntries(doc)
}

// tableEntries adapts a decoded list of tables.
func tableEntries(v any) ([]fields, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("config: batch must be a list of tables under %q: %w", batchKey, ErrBadBatch)
	}
	out := make([]fields, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("config: entry %d is %T, not a table: %w", i, item, ErrBadBatch)
		}
		out = append(out, func(key string) (any, bool) {
			v, ok := m[key]
			return v, ok
		})
	}
	return out, nil
}

// lookup returns the first key present.
func (f fields) lookup(keys ...string) (any, string, bool) {
	for _, k := range keys {
		if v, ok := f(k); ok {
			return v, k, true
		}
	}
	return nil, "", false
}

func (f fields) integer(keys ...string) (int, bool, error) {
	v, key, ok := f.lookup(keys...)
	if !ok {
		return 0, false, nil
	}
	n, err := toInt(v)
	if err != nil {
		return 0, true, fmt.Errorf("config: %s: %v: %w", key, err, ErrBadBatch)
	}
	return n, true, nil
}

// request converts one entry.
func (f fields) request() (misassembly.Request, error) {
	var r misassembly.Request

	kv, _, ok := f.lookup("kind", "mtype")
	if !ok {
		return r, fmt.Errorf("config: missing kind: %w", ErrBadBatch)
	}
	name, isStr := kv.(string)
	if !isStr {
		return r, fmt.Errorf("config: kind %v is not a string: %w", kv, ErrBadBatch)
	}
	kind, err := edit.ParseKind(name)
	if err != nil || !kind.IsEdit() {
		return r, fmt.Errorf("config: kind %q: %w", name, ErrBadBatch)
	}
	r.Kind = kind

	count, ok, err := f.integer("count", "number")
	if err != nil {
		return r, err
	}
	if !ok {
		count = 1
	}
	if count < 0 {
		return r, fmt.Errorf("config: count %d: %w", count, ErrBadBatch)
	}
	r.Count = count

	length, hasLen, err := f.integer("length")
	if err != nil {
		return r, err
	}
	lo, hasLo, err := f.integer("length_min")
	if err != nil {
		return r, err
	}
	switch {
	case kind == edit.Break:
	case !hasLen:
		return r, fmt.Errorf("config: %s needs a length: %w", kind, ErrBadBatch)
	case hasLo:
		r.Length = sampler.Range(lo, length)
	default:
		r.Length = sampler.Fixed(length)
	}

	if r.MaxDuplications, _, err = f.integer("max_duplications"); err != nil {
		return r, err
	}
	if r.KeepRepeats, _, err = f.integer("num_repeats", "keep_repeats"); err != nil {
		return r, err
	}
	if err := r.Validate(); err != nil {
		return r, fmt.Errorf("config: %v: %w", err, ErrBadBatch)
	}
	if kind != edit.Break {
		if err := r.Length.Validate(math.MaxInt); err != nil {
			return r, fmt.Errorf("config: %v: %w", err, ErrBadBatch)
		}
	}
	return r, nil
}

// toInt accepts the integer shapes each decoder produces.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		if n > math.MaxInt {
			return 0, fmt.Errorf("%d overflows int", n)
		}
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("%v (%T) is not a number", v, v)
}
