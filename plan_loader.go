package fakephone

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/default.yaml data/plans/*.yaml
var planData embed.FS

const (
	defaultPlanPattern = "data/plans/*.yaml"
	defaultsPath       = "data/default.yaml"
)

// defaultsDocument configures the country calling code driven default provider.
type defaultsDocument struct {
	CallingCodes []string `yaml:"calling_codes" json:"calling_codes"`
	Groups       []int    `yaml:"groups" json:"groups"`
	MSISDNLength int      `yaml:"msisdn_length" json:"msisdn_length"`
}

type planSource struct {
	path string
	doc  planDocument
}

// PlanLoader reads numbering plan documents from an fs.FS and from plain files.
// Files are decoded by extension (.yaml, .yml or .json); later sources replace
// earlier rule sets with the same key.
type PlanLoader struct {
	fsys    fs.FS
	pattern string
	files   []string
}

// NewPlanLoader builds a loader over fsys entries matching pattern plus extra files.
func NewPlanLoader(fsys fs.FS, pattern string, files ...string) *PlanLoader {
	return &PlanLoader{fsys: fsys, pattern: pattern, files: append([]string(nil), files...)}
}

// Load decodes every source. It does not validate rule semantics.
func (l *PlanLoader) Load() ([]planSource, error) {
	if l == nil {
		return nil, errors.New("fakephone: nil plan loader")
	}

	var sources []planSource

	if l.fsys != nil && l.pattern != "" {
		matches, err := fs.Glob(l.fsys, l.pattern)
		if err != nil {
			return nil, &ConfigError{Source: l.pattern, Err: err}
		}
		sort.Strings(matches)
		for _, match := range matches {
			data, err := fs.ReadFile(l.fsys, match)
			if err != nil {
				return nil, fmt.Errorf("fakephone: read %s: %w", match, err)
			}
			doc, err := decodePlanFile(match, data)
			if err != nil {
				return nil, err
			}
			sources = append(sources, planSource{path: match, doc: doc})
		}
	}

	for _, file := range l.files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("fakephone: read %s: %w", file, err)
		}
		doc, err := decodePlanFile(file, data)
		if err != nil {
			return nil, err
		}
		sources = append(sources, planSource{path: file, doc: doc})
	}

	return sources, nil
}

func decodePlanFile(name string, data []byte) (planDocument, error) {
	var doc planDocument
	if err := decodeDocument(name, data, &doc); err != nil {
		return planDocument{}, err
	}
	return doc, nil
}

func decodeDocument(name string, data []byte, out any) error {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = strings.ToLower(path.Ext(name))
	}

	switch ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(out); err != nil {
			return &ConfigError{Source: name, Err: fmt.Errorf("decode json: %w", err)}
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return &ConfigError{Source: name, Err: fmt.Errorf("decode yaml: %w", err)}
		}
	default:
		return &ConfigError{Source: name, Err: fmt.Errorf("unsupported extension %q", ext)}
	}
	return nil
}

func loadDefaults(fsys fs.FS, name string) (defaultsDocument, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return defaultsDocument{}, fmt.Errorf("fakephone: read %s: %w", name, err)
	}
	var doc defaultsDocument
	if err := decodeDocument(name, data, &doc); err != nil {
		return defaultsDocument{}, err
	}
	return doc, nil
}
