// Package schemafile reads and writes mapping model snapshots: a
// self-contained document listing entity types with all relational
// mapping attributes, decodable into a model.Model. Snapshots are
// stored as YAML or, for compact transport, as msgpack; Load and Save
// pick the codec from the file extension.
package schemafile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Version is the snapshot document version this package produces.
const Version = 1

// Snapshot is the top-level snapshot document.
type Snapshot struct {
	Version      int               `yaml:"version" msgpack:"version"`
	ID           string            `yaml:"id,omitempty" msgpack:"id,omitempty"`
	Name         string            `yaml:"name" msgpack:"name"`
	Entities     []Entity          `yaml:"entities" msgpack:"entities"`
	Functions    []Function        `yaml:"functions,omitempty" msgpack:"functions,omitempty"`
	TypeMappings map[string]string `yaml:"type_mappings,omitempty" msgpack:"type_mappings,omitempty"`
}

// Entity is one entity type of a snapshot.
type Entity struct {
	Name               string       `yaml:"name" msgpack:"name"`
	Base               string       `yaml:"base,omitempty" msgpack:"base,omitempty"`
	Abstract           bool         `yaml:"abstract,omitempty" msgpack:"abstract,omitempty"`
	Owned              bool         `yaml:"owned,omitempty" msgpack:"owned,omitempty"`
	Strategy           string       `yaml:"strategy,omitempty" msgpack:"strategy,omitempty"`
	Discriminator      string       `yaml:"discriminator,omitempty" msgpack:"discriminator,omitempty"`
	DiscriminatorValue string       `yaml:"discriminator_value,omitempty" msgpack:"discriminator_value,omitempty"`
	Table              *Binding     `yaml:"table,omitempty" msgpack:"table,omitempty"`
	View               *Binding     `yaml:"view,omitempty" msgpack:"view,omitempty"`
	SQLQuery           string       `yaml:"sql_query,omitempty" msgpack:"sql_query,omitempty"`
	Function           string       `yaml:"function,omitempty" msgpack:"function,omitempty"`
	Comment            string       `yaml:"comment,omitempty" msgpack:"comment,omitempty"`
	ExcludeMigrations  bool         `yaml:"exclude_migrations,omitempty" msgpack:"exclude_migrations,omitempty"`
	Properties         []Property   `yaml:"properties,omitempty" msgpack:"properties,omitempty"`
	Key                []string     `yaml:"key,omitempty" msgpack:"key,omitempty"`
	KeyConstraint      string       `yaml:"key_constraint,omitempty" msgpack:"key_constraint,omitempty"`
	AlternateKeys      []Key        `yaml:"alternate_keys,omitempty" msgpack:"alternate_keys,omitempty"`
	ForeignKeys        []ForeignKey `yaml:"foreign_keys,omitempty" msgpack:"foreign_keys,omitempty"`
	Indexes            []Index      `yaml:"indexes,omitempty" msgpack:"indexes,omitempty"`
	Checks             []Check      `yaml:"checks,omitempty" msgpack:"checks,omitempty"`
	Triggers           []Trigger    `yaml:"triggers,omitempty" msgpack:"triggers,omitempty"`
	Fragments          []Fragment   `yaml:"fragments,omitempty" msgpack:"fragments,omitempty"`
}

// Binding names a table or view.
type Binding struct {
	Name   string `yaml:"name" msgpack:"name"`
	Schema string `yaml:"schema,omitempty" msgpack:"schema,omitempty"`
}

// Property is one property of an entity.
type Property struct {
	Name             string     `yaml:"name" msgpack:"name"`
	Type             string     `yaml:"type" msgpack:"type"`
	Nullable         bool       `yaml:"nullable,omitempty" msgpack:"nullable,omitempty"`
	MaxLength        *int       `yaml:"max_length,omitempty" msgpack:"max_length,omitempty"`
	Precision        *int       `yaml:"precision,omitempty" msgpack:"precision,omitempty"`
	Scale            *int       `yaml:"scale,omitempty" msgpack:"scale,omitempty"`
	Unicode          *bool      `yaml:"unicode,omitempty" msgpack:"unicode,omitempty"`
	FixedLength      *bool      `yaml:"fixed_length,omitempty" msgpack:"fixed_length,omitempty"`
	ConcurrencyToken bool       `yaml:"concurrency_token,omitempty" msgpack:"concurrency_token,omitempty"`
	StoreType        string     `yaml:"store_type,omitempty" msgpack:"store_type,omitempty"`
	Computed         string     `yaml:"computed,omitempty" msgpack:"computed,omitempty"`
	Stored           *bool      `yaml:"stored,omitempty" msgpack:"stored,omitempty"`
	Default          any        `yaml:"default,omitempty" msgpack:"default,omitempty"`
	DefaultSource    string     `yaml:"default_source,omitempty" msgpack:"default_source,omitempty"`
	DefaultSQL       string     `yaml:"default_sql,omitempty" msgpack:"default_sql,omitempty"`
	Comment          string     `yaml:"comment,omitempty" msgpack:"comment,omitempty"`
	Collation        string     `yaml:"collation,omitempty" msgpack:"collation,omitempty"`
	Order            *int       `yaml:"order,omitempty" msgpack:"order,omitempty"`
	Generated        string     `yaml:"generated,omitempty" msgpack:"generated,omitempty"`
	Column           string     `yaml:"column,omitempty" msgpack:"column,omitempty"`
	Overrides        []Override `yaml:"overrides,omitempty" msgpack:"overrides,omitempty"`
}

// Override is a per-store-object column name override.
type Override struct {
	Kind   string `yaml:"kind" msgpack:"kind"`
	Name   string `yaml:"name" msgpack:"name"`
	Schema string `yaml:"schema,omitempty" msgpack:"schema,omitempty"`
	Column string `yaml:"column" msgpack:"column"`
}

// Key is an alternate key declaration.
type Key struct {
	Name       string   `yaml:"name,omitempty" msgpack:"name,omitempty"`
	Properties []string `yaml:"properties" msgpack:"properties"`
}

// ForeignKey is a foreign key declaration.
type ForeignKey struct {
	Name              string   `yaml:"name,omitempty" msgpack:"name,omitempty"`
	Properties        []string `yaml:"properties" msgpack:"properties"`
	Principal         string   `yaml:"principal" msgpack:"principal"`
	PrincipalKey      []string `yaml:"principal_key,omitempty" msgpack:"principal_key,omitempty"`
	Unique            bool     `yaml:"unique,omitempty" msgpack:"unique,omitempty"`
	Required          bool     `yaml:"required,omitempty" msgpack:"required,omitempty"`
	RequiredDependent bool     `yaml:"required_dependent,omitempty" msgpack:"required_dependent,omitempty"`
}

// Index is an index declaration.
type Index struct {
	Name       string   `yaml:"name,omitempty" msgpack:"name,omitempty"`
	Properties []string `yaml:"properties" msgpack:"properties"`
	Unique     bool     `yaml:"unique,omitempty" msgpack:"unique,omitempty"`
}

// Check is a check constraint declaration.
type Check struct {
	Name string `yaml:"name" msgpack:"name"`
	SQL  string `yaml:"sql" msgpack:"sql"`
}

// Trigger is a trigger declaration.
type Trigger struct {
	Name   string `yaml:"name" msgpack:"name"`
	Table  string `yaml:"table,omitempty" msgpack:"table,omitempty"`
	Schema string `yaml:"schema,omitempty" msgpack:"schema,omitempty"`
}

// Function is a database function declaration.
type Function struct {
	Name       string      `yaml:"name" msgpack:"name"`
	Schema     string      `yaml:"schema,omitempty" msgpack:"schema,omitempty"`
	Returns    string      `yaml:"returns" msgpack:"returns"`
	Scalar     bool        `yaml:"scalar,omitempty" msgpack:"scalar,omitempty"`
	Parameters []Parameter `yaml:"parameters,omitempty" msgpack:"parameters,omitempty"`
}

// Parameter is one declared function parameter.
type Parameter struct {
	Name string `yaml:"name" msgpack:"name"`
	Type string `yaml:"type" msgpack:"type"`
}

// Fragment is an entity splitting fragment declaration.
type Fragment struct {
	Kind   string `yaml:"kind" msgpack:"kind"`
	Name   string `yaml:"name" msgpack:"name"`
	Schema string `yaml:"schema,omitempty" msgpack:"schema,omitempty"`
}

// NewID returns a fresh snapshot identifier.
func NewID() string {
	return uuid.NewString()
}

// Load reads a snapshot from path, choosing the codec by extension:
// .yaml/.yml for YAML, .msgpack/.bin for msgpack.
func Load(path string) (*Snapshot, error) {
	var unmarshal func([]byte, any) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	case ".msgpack", ".bin":
		unmarshal = msgpack.Unmarshal
	default:
		return nil, fmt.Errorf("schemafile: unsupported snapshot extension %q", ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: read %s: %w", path, err)
	}
	var s Snapshot
	if err := unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("schemafile: decode %s: %w", path, err)
	}
	if s.Version > Version {
		return nil, fmt.Errorf("schemafile: %s has unsupported version %d", path, s.Version)
	}
	return &s, nil
}

// Save writes the snapshot to path, choosing the codec by extension.
func Save(path string, s *Snapshot) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(s)
	case ".msgpack", ".bin":
		data, err = msgpack.Marshal(s)
	default:
		return fmt.Errorf("schemafile: unsupported snapshot extension %q", ext)
	}
	if err != nil {
		return fmt.Errorf("schemafile: encode %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}
