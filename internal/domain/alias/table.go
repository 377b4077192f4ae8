package alias

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/clubarchive/matchlinker/internal/platform/textnorm"
)

// Table maps known source-side team name variants to their canonical
// store-side names. Lookups are keyed by normalized form so that case,
// accents and punctuation differences in the source never matter.
type Table struct {
	version   int
	canonical map[string]string
}

type fileModel struct {
	Version int         `yaml:"version" validate:"required,min=1"`
	Teams   []entryItem `yaml:"teams" validate:"dive"`
}

type entryItem struct {
	Source    string `yaml:"source" validate:"required"`
	Canonical string `yaml:"canonical" validate:"required"`
}

var fileValidator = validator.New()

// New builds a table from explicit source→canonical pairs.
func New(version int, pairs map[string]string) *Table {
	canonical := make(map[string]string, len(pairs))
	for source, name := range pairs {
		canonical[textnorm.Normalize(source)] = name
	}

	return &Table{version: version, canonical: canonical}
}

// Load reads a YAML alias file. A missing path yields an empty table so
// the pipeline runs without alias coverage rather than failing.
func Load(path string) (*Table, error) {
	if path == "" {
		return New(0, nil), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(0, nil), nil
		}
		return nil, fmt.Errorf("read alias file: %w", err)
	}

	var model fileModel
	if err := yaml.Unmarshal(raw, &model); err != nil {
		return nil, fmt.Errorf("parse alias file: %w", err)
	}
	if err := fileValidator.Struct(model); err != nil {
		return nil, fmt.Errorf("invalid alias file: %w", err)
	}

	pairs := make(map[string]string, len(model.Teams))
	for _, item := range model.Teams {
		pairs[item.Source] = item.Canonical
	}

	return New(model.Version, pairs), nil
}

// Apply returns the canonical name for a raw source name, or the raw name
// unchanged when no alias is registered.
func (t *Table) Apply(rawName string) string {
	if t == nil {
		return rawName
	}
	if canonical, ok := t.canonical[textnorm.Normalize(rawName)]; ok {
		return canonical
	}

	return rawName
}

// Has reports whether an alias is registered for the raw name.
func (t *Table) Has(rawName string) bool {
	if t == nil {
		return false
	}
	_, ok := t.canonical[textnorm.Normalize(rawName)]
	return ok
}

// Version is the alias file revision, surfaced in the quality report.
func (t *Table) Version() int {
	if t == nil {
		return 0
	}
	return t.version
}

// Size is the number of registered aliases.
func (t *Table) Size() int {
	if t == nil {
		return 0
	}
	return len(t.canonical)
}
