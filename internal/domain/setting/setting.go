// Package setting holds runtime-editable configuration grouped by category.
package setting

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

// Kind is how a stored value is decoded.
type Kind string

const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindBool   Kind = "bool"
	KindJSON   Kind = "json"
)

func (k Kind) valid() bool {
	switch k {
	case KindString, KindInt, KindBool, KindJSON:
		return true
	}
	return false
}

// Setting is one category/name entry. The value is kept as text.
type Setting struct {
	id          uint
	category    string
	name        string
	kind        Kind
	raw         string
	description string
	updatedBy   uint
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

// New creates an empty setting. Known entries take their kind and
// description from the registry and ignore the arguments.
func New(category, name string, kind Kind, description string) (*Setting, error) {
	category = strings.TrimSpace(category)
	name = strings.TrimSpace(name)
	if category == "" || name == "" {
		return nil, fmt.Errorf("setting category and name are required")
	}
	if def, ok := Lookup(category, name); ok {
		kind, description = def.Kind, def.Description
	}
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidValueType, kind)
	}

	now := biztime.NowUTC()
	return &Setting{
		category:    category,
		name:        name,
		kind:        kind,
		description: description,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a stored setting.
func Reconstruct(
	id uint,
	category, name string,
	kind Kind,
	raw, description string,
	updatedBy uint,
	version int,
	createdAt, updatedAt time.Time,
) *Setting {
	return &Setting{
		id:          id,
		category:    category,
		name:        name,
		kind:        kind,
		raw:         raw,
		description: description,
		updatedBy:   updatedBy,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (s *Setting) ID() uint             { return s.id }
func (s *Setting) Category() string     { return s.category }
func (s *Setting) Name() string         { return s.name }
func (s *Setting) Kind() Kind           { return s.kind }
func (s *Setting) Raw() string          { return s.raw }
func (s *Setting) Description() string  { return s.description }
func (s *Setting) UpdatedBy() uint      { return s.updatedBy }
func (s *Setting) Version() int         { return s.version }
func (s *Setting) CreatedAt() time.Time { return s.createdAt }
func (s *Setting) UpdatedAt() time.Time { return s.updatedAt }

// Path is "category:name".
func (s *Setting) Path() string {
	return s.category + ":" + s.name
}

func (s *Setting) SetID(id uint) {
	s.id = id
}

func (s *Setting) IsSet() bool {
	return s.raw != ""
}

// Sensitive reports whether the value must be masked when read back.
func (s *Setting) Sensitive() bool {
	return IsSensitive(s.name)
}

// Int decodes an int setting. Unset reads as zero.
func (s *Setting) Int() (int, error) {
	if s.raw == "" {
		return 0, nil
	}
	return strconv.Atoi(s.raw)
}

// Value decodes the stored text by kind. Text that does not decode is
// returned as is.
func (s *Setting) Value() any {
	switch s.kind {
	case KindInt:
		if v, err := strconv.Atoi(s.raw); err == nil {
			return v
		}
	case KindBool:
		if v, err := strconv.ParseBool(s.raw); err == nil {
			return v
		}
	case KindJSON:
		var v any
		if s.raw != "" && json.Unmarshal([]byte(s.raw), &v) == nil {
			return v
		}
	}
	return s.raw
}

// Assign stores v, which is usually a value decoded from a JSON request
// body. Numbers must be integral for int settings.
func (s *Setting) Assign(v any, updatedBy uint) error {
	raw, err := encode(s.kind, v)
	if err != nil {
		return fmt.Errorf("%w: %s %s", ErrInvalidValueType, s.Path(), err)
	}
	s.raw = raw
	s.updatedBy = updatedBy
	s.version++
	s.updatedAt = biztime.NowUTC()
	return nil
}

func encode(kind Kind, v any) (string, error) {
	switch kind {
	case KindString:
		if str, ok := v.(string); ok {
			return str, nil
		}
	case KindBool:
		if b, ok := v.(bool); ok {
			return strconv.FormatBool(b), nil
		}
	case KindInt:
		switch n := v.(type) {
		case int:
			return strconv.Itoa(n), nil
		case int64:
			return strconv.FormatInt(n, 10), nil
		case uint:
			return strconv.FormatUint(uint64(n), 10), nil
		case float64:
			if n == math.Trunc(n) && math.Abs(n) <= math.MaxInt32 {
				return strconv.Itoa(int(n)), nil
			}
			return "", fmt.Errorf("expects a whole number")
		}
	case KindJSON:
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("expects %s, got %T", kind, v)
}

// KindOf picks the kind for a new, unregistered setting from its first value.
func KindOf(v any) Kind {
	switch n := v.(type) {
	case bool:
		return KindBool
	case string:
		return KindString
	case int, int64, uint:
		return KindInt
	case float64:
		if n == math.Trunc(n) {
			return KindInt
		}
	}
	return KindJSON
}
