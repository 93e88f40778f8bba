package v1alpha1

import (
	"encoding/json"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// KindConfig identifies configuration unit objects.
	KindConfig = "Config"

	// KindComponent identifies component objects.
	KindComponent = "Component"
)

// Object is a declarative specification document describing the desired
// state of a component or configuration unit.
//
// Objects are treated as immutable values: callers that need a modified
// object should DeepCopy it first.
type Object struct {
	metav1.TypeMeta `json:",inline"`

	// Metadata holds the object's declared identity.
	Metadata ObjectMeta `json:"metadata"`

	// Spec holds the desired state.
	Spec ObjectSpec `json:"spec"`
}

// ObjectMeta is the minimal metadata block of an Object.
type ObjectMeta struct {
	Name string `json:"name"`
}

// ObjectSpec defines the desired state of an Object.
type ObjectSpec struct {
	// Type is the component type. Optional.
	Type *string `json:"type,omitempty"`

	// Config is an opaque configuration payload. Optional; absent is
	// treated as Unit by consumers.
	Config *Document `json:"config,omitempty"`

	// Imports addresses values exported by other objects.
	Imports map[string]ImportSpec `json:"imports,omitempty"`

	// Exports publishes values to other objects.
	Exports map[string]Document `json:"exports,omitempty"`
}

// ImportSpec is an addressing expression into another object.
type ImportSpec struct {
	SourceType string `json:"sourceType"`
	Name       string `json:"name"`
	Select     string `json:"select"`
}

// UnmarshalJSON requires all three addressing fields to be present.
func (s *ImportSpec) UnmarshalJSON(data []byte) error {
	var wire struct {
		SourceType *string `json:"sourceType"`
		Name       *string `json:"name"`
		Select     *string `json:"select"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch {
	case wire.SourceType == nil:
		return fmt.Errorf("import: missing field %q", "sourceType")
	case wire.Name == nil:
		return fmt.Errorf("import: missing field %q", "name")
	case wire.Select == nil:
		return fmt.Errorf("import: missing field %q", "select")
	}
	*s = ImportSpec{SourceType: *wire.SourceType, Name: *wire.Name, Select: *wire.Select}
	return nil
}

// TypeName returns spec.type, or the empty string when it is not set.
func (s ObjectSpec) TypeName() string {
	if s.Type == nil {
		return ""
	}
	return *s.Type
}

// ConfigDocument returns spec.config, or Unit when it is absent.
func (s ObjectSpec) ConfigDocument() Document {
	if s.Config == nil {
		return Unit()
	}
	return *s.Config
}

// String renders the object as kind/name[/type] for diagnostics.
func (o Object) String() string {
	if t := o.Spec.TypeName(); t != "" {
		return fmt.Sprintf("%s/%s/%s", o.Kind, o.Metadata.Name, t)
	}
	return fmt.Sprintf("%s/%s", o.Kind, o.Metadata.Name)
}

// DeepCopy returns a copy of the object that shares no mutable state.
func (o Object) DeepCopy() Object {
	out := o
	if o.Spec.Type != nil {
		t := *o.Spec.Type
		out.Spec.Type = &t
	}
	if o.Spec.Config != nil {
		c := o.Spec.Config.DeepCopy()
		out.Spec.Config = &c
	}
	if o.Spec.Imports != nil {
		out.Spec.Imports = make(map[string]ImportSpec, len(o.Spec.Imports))
		for k, v := range o.Spec.Imports {
			out.Spec.Imports[k] = v
		}
	}
	if o.Spec.Exports != nil {
		out.Spec.Exports = make(map[string]Document, len(o.Spec.Exports))
		for k, v := range o.Spec.Exports {
			out.Spec.Exports[k] = v.DeepCopy()
		}
	}
	return out
}

// WithType returns a copy of the object with spec.type set to t.
func (o Object) WithType(t string) Object {
	out := o.DeepCopy()
	out.Spec.Type = &t
	return out
}
