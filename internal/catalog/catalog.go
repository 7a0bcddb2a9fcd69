package catalog

import (
	"fmt"
	"strings"
	"sync"
)

// FieldType is the value type a field casts to.
type FieldType string

const (
	TypeInt    FieldType = "int"
	TypeFloat  FieldType = "float"
	TypeBool   FieldType = "bool"
	TypeString FieldType = "string"
)

// FieldSpec describes one canonical form field: how it may be labeled on
// paper, what type its value carries, and (for categorical fields) the closed
// set of accepted values.
type FieldSpec struct {
	CanonicalName string
	Type          FieldType
	Aliases       []string
	ValidValues   []string
	Description   string
}

// Catalog is the read-only registry of every target field plus the flat
// alias -> canonical lookup built from it. Build it once at startup; it is
// safe for concurrent readers afterwards.
type Catalog struct {
	specs   []FieldSpec
	byName  map[string]*FieldSpec
	aliases map[string]string // normalized alias -> canonical name
	// aliasOrder preserves registration order so scans over the alias set are
	// deterministic; first-registered wins on equal score.
	aliasOrder []string
	names      []string
}

// NewCatalog builds the alias table for specs. Each spec registers its
// canonical name (lowered), the canonical name with underscores replaced by
// spaces, and every listed alias, all lowercased. An alias claimed by two
// different fields is a configuration error, never resolved silently.
func NewCatalog(specs []FieldSpec) (*Catalog, error) {
	c := &Catalog{
		specs:   specs,
		byName:  make(map[string]*FieldSpec, len(specs)),
		aliases: make(map[string]string),
	}
	for i := range specs {
		spec := &specs[i]
		if spec.CanonicalName == "" {
			return nil, fmt.Errorf("catalog: field %d has no canonical name", i)
		}
		if _, dup := c.byName[spec.CanonicalName]; dup {
			return nil, fmt.Errorf("catalog: duplicate canonical name %q", spec.CanonicalName)
		}
		c.byName[spec.CanonicalName] = spec
		c.names = append(c.names, spec.CanonicalName)

		lowered := strings.ToLower(spec.CanonicalName)
		if err := c.register(lowered, spec.CanonicalName); err != nil {
			return nil, err
		}
		if err := c.register(strings.ReplaceAll(lowered, "_", " "), spec.CanonicalName); err != nil {
			return nil, err
		}
		for _, alias := range spec.Aliases {
			if err := c.register(strings.ToLower(alias), spec.CanonicalName); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

func (c *Catalog) register(alias, canonical string) error {
	if owner, ok := c.aliases[alias]; ok {
		if owner != canonical {
			return fmt.Errorf("catalog: alias %q claimed by both %s and %s", alias, owner, canonical)
		}
		return nil
	}
	c.aliases[alias] = canonical
	c.aliasOrder = append(c.aliasOrder, alias)
	return nil
}

// Resolve returns the canonical field name for an exact normalized alias.
func (c *Catalog) Resolve(alias string) (string, bool) {
	canonical, ok := c.aliases[strings.ToLower(alias)]
	return canonical, ok
}

// Field returns the spec for a canonical name.
func (c *Catalog) Field(canonical string) (*FieldSpec, bool) {
	spec, ok := c.byName[canonical]
	return spec, ok
}

// Names returns all canonical field names in registration order.
func (c *Catalog) Names() []string {
	return c.names
}

// Fields returns all field specs in registration order.
func (c *Catalog) Fields() []FieldSpec {
	return c.specs
}

// Aliases returns every registered alias in registration order.
func (c *Catalog) Aliases() []string {
	return c.aliasOrder
}

// Size is the number of canonical fields.
func (c *Catalog) Size() int {
	return len(c.specs)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide insurance form catalog. The default specs
// are static, so a build failure here is a programming error.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := NewCatalog(defaultSpecs())
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}
