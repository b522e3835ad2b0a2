package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Kind is the input style of a form field.
type Kind string

const (
	KindSingleLine Kind = "single-line"
	KindMultiLine  Kind = "multi-line"
)

// FieldDescriptor describes one form input of a content type.
// Descriptors are static and never mutated at runtime.
type FieldDescriptor struct {
	ID          string
	Label       string
	Kind        Kind
	Placeholder string
	Required    bool
}

// ContentType is a generation category together with its form fields.
type ContentType struct {
	Tag              string // Wire tag sent as "type" (e.g. "essay")
	Label            string // Display name (e.g. "Essay")
	DefaultWordCount int
	Fields           []FieldDescriptor
}

// Field returns the descriptor with the given id.
func (c ContentType) Field(id string) (FieldDescriptor, bool) {
	for _, f := range c.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// RequiredFields returns the descriptors marked required, in declaration order.
func (c ContentType) RequiredFields() []FieldDescriptor {
	var out []FieldDescriptor
	for _, f := range c.Fields {
		if f.Required {
			out = append(out, f)
		}
	}
	return out
}

// EditNote is the note attached to manual edits saved from this type's form.
func (c ContentType) EditNote() string {
	return fmt.Sprintf("Manual edit from %s generator", strings.ToLower(c.Label))
}

// Lookup finds a content type by tag (case-insensitive).
func Lookup(tag string) (ContentType, error) {
	ct, ok := registry[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return ContentType{}, fmt.Errorf("unknown content type: %s (supported: %s)", tag, strings.Join(Tags(), ", "))
	}
	return ct, nil
}

// Tags returns all registered content type tags, sorted.
func Tags() []string {
	tags := make([]string, 0, len(registry))
	for tag := range registry {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// All returns every registered content type, sorted by tag.
func All() []ContentType {
	tags := Tags()
	out := make([]ContentType, 0, len(tags))
	for _, tag := range tags {
		out = append(out, registry[tag])
	}
	return out
}
