// Package schema declares the record shape of every seeded collection and
// validates seed records against it before anything reaches the store.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/masbusiness/business-os/internal/constants"
)

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrInvalidRecord     = errors.New("invalid record")
)

// Shape is implemented by every collection record type. The set of
// implementations is closed: see shapes.
type Shape interface {
	RecordID() string
}

// Audit carries the optional audit fields. Absent fields are filled in at
// write time.
type Audit struct {
	CreatedAt *time.Time `yaml:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt *time.Time `yaml:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	CreatedBy string     `yaml:"createdBy,omitempty" json:"createdBy,omitempty"`
	UpdatedBy string     `yaml:"updatedBy,omitempty" json:"updatedBy,omitempty"`
}

var shapes = map[string]func() Shape{
	"organizations":       func() Shape { return &Organization{} },
	"settings":            func() Shape { return &Setting{} },
	"departments":         func() Shape { return &Department{} },
	"roles":               func() Shape { return &Role{} },
	"users":               func() Shape { return &User{} },
	"employees":           func() Shape { return &Employee{} },
	"candidates":          func() Shape { return &Candidate{} },
	"interviews":          func() Shape { return &Interview{} },
	"onboardingTemplates": func() Shape { return &OnboardingTemplate{} },
	"onboardingTasks":     func() Shape { return &OnboardingTask{} },
	"clients":             func() Shape { return &Client{} },
	"tickets":             func() Shape { return &Ticket{} },
	"projects":            func() Shape { return &Project{} },
	"tasks":               func() Shape { return &Task{} },
	"accounts":            func() Shape { return &Account{} },
	"invoices":            func() Shape { return &Invoice{} },
	"expenses":            func() Shape { return &Expense{} },
	"courses":             func() Shape { return &Course{} },
	"enrollments":         func() Shape { return &Enrollment{} },
	"announcements":       func() Shape { return &Announcement{} },
}

func Collections() []string {
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("permission", func(fl validator.FieldLevel) bool {
		return constants.IsValidUserPermission(fl.Field().String())
	})
	_ = v.RegisterValidation("portal", func(fl validator.FieldLevel) bool {
		return constants.IsValidPortal(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.DateOnly, fl.Field().String())
		return err == nil
	})
	return v
}

// FieldError describes one rejected field of a record.
type FieldError struct {
	Field string
	Rule  string
}

// RecordError reports why a record of a collection was rejected.
type RecordError struct {
	Collection string
	Index      int
	ID         string
	Fields     []FieldError
	Err        error
}

func (e *RecordError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]", e.Collection, e.Index)
	if e.ID != "" {
		fmt.Fprintf(&b, " (id %q)", e.ID)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	for i, f := range e.Fields {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s failed %s", f.Field, f.Rule)
	}
	return b.String()
}

func (e *RecordError) Unwrap() error {
	return ErrInvalidRecord
}

// Decode decodes one YAML record node into the shape registered for
// collection. Unknown keys are rejected.
func Decode(collection string, index int, node *yaml.Node) (Shape, error) {
	newShape, ok := shapes[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	raw, err := yaml.Marshal(node)
	if err != nil {
		return nil, &RecordError{Collection: collection, Index: index, Err: err}
	}

	shape := newShape()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(shape); err != nil {
		return nil, &RecordError{Collection: collection, Index: index, Err: err}
	}

	if err := Validate(collection, index, shape); err != nil {
		return nil, err
	}
	return shape, nil
}

// Validate checks shape against its validation rules and reports every
// failing field.
func Validate(collection string, index int, shape Shape) error {
	err := validate.Struct(shape)
	if err == nil {
		return nil
	}

	recErr := &RecordError{Collection: collection, Index: index, ID: shape.RecordID()}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		recErr.Err = err
		return recErr
	}
	for _, fe := range ve {
		recErr.Fields = append(recErr.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return recErr
}

// Fields flattens a shape into the key/value form written to the store.
func Fields(shape Shape) (map[string]any, error) {
	b, err := json.Marshal(shape)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", shape, err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("unmarshal %T: %w", shape, err)
	}
	return fields, nil
}
