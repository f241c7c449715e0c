package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a configuration document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the document format from the file extension.
// Unknown extensions are treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Load reads and parses a fleet configuration document.
// It performs no validation; call engine.Validate separately.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}

	doc, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes document content in the given format.
func Parse(data []byte, format Format) (*Document, error) {
	raw, err := decodeRaw(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: document is empty", ErrMalformedDocument)
	}

	tree, ok := canonicalize(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level must be an object", ErrMalformedDocument)
	}

	// Strict decoding: an object where a sequence is expected (or the reverse)
	// and a boolean where a string is expected are shape errors. Numbers still
	// fill string fields with their source text.
	var doc Document
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &doc,
	})
	if err != nil {
		return nil, fmt.Errorf("creating document decoder: %w", err)
	}
	if err := dec.Decode(tree); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	// An empty systems sequence must stay distinguishable from a missing one.
	if systems, ok := tree["systems"]; ok && systems != nil && doc.Systems == nil {
		doc.Systems = []System{}
	}
	return &doc, nil
}

func decodeRaw(data []byte, format Format) (map[string]any, error) {
	var raw map[string]any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// canonicalize rewrites a decoded tree so that every encoding yields the same
// shapes: string-keyed maps, []any sequences and json.Number for all numbers.
func canonicalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = canonicalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = canonicalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = canonicalize(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = canonicalize(val)
		}
		return out
	case int:
		return json.Number(strconv.Itoa(t))
	case int64:
		return json.Number(strconv.FormatInt(t, 10))
	case uint64:
		return json.Number(strconv.FormatUint(t, 10))
	case float64:
		return json.Number(strconv.FormatFloat(t, 'f', -1, 64))
	case time.Time:
		return formatTime(t)
	default:
		return v
	}
}

// TOML local dates and times decode as time.Time in marker locations; they
// are rendered back in their source form without an invented offset.
func formatTime(t time.Time) string {
	switch t.Location().String() {
	case "date-local":
		return t.Format(time.DateOnly)
	case "time-local":
		return t.Format("15:04:05.999999999")
	case "datetime-local":
		return t.Format("2006-01-02T15:04:05.999999999")
	default:
		return t.Format(time.RFC3339Nano)
	}
}
