package catalog

import (
	"fmt"

	"specsync/pkg/apis/specsync/v1alpha1"
)

const (
	tableConfig    = "config"
	tableComponent = "component"
)

// errInvalidConfig is recorded for a spec.config that is not a mapping.
const errInvalidConfig = "invalid value of field spec.config"

// SpecResult is the outcome of interpreting spec.config.
type SpecResult struct {
	Document v1alpha1.Document
	Err      string
}

// OK reports whether spec.config was usable.
func (s SpecResult) OK() bool {
	return s.Err == ""
}

// ConfigRecord is the catalog entry for a Config object.
type ConfigRecord struct {
	Name string
	Spec SpecResult

	// Refs counts the objects currently backing this exact record.
	Refs int
}

// ComponentRecord is the catalog entry for a Component object.
type ComponentRecord struct {
	Name     string
	TypeName string
	Spec     SpecResult

	// Refs counts the objects currently backing this exact record.
	Refs int
}

// record is implemented by pointers to the record types. Records that
// differ in any field are distinct entries even when their names match.
type record interface {
	table() string
	identity() string
	refs() int
	withRefs(n int) record
	String() string
}

func (r *ConfigRecord) table() string { return tableConfig }
func (r *ComponentRecord) table() string { return tableComponent }

func (r *ConfigRecord) identity() string { return r.String() }
func (r *ComponentRecord) identity() string { return r.String() }

func (r *ConfigRecord) refs() int { return r.Refs }
func (r *ComponentRecord) refs() int { return r.Refs }

func (r *ConfigRecord) withRefs(n int) record {
	out := *r
	out.Refs = n
	return &out
}

func (r *ComponentRecord) withRefs(n int) record {
	out := *r
	out.Refs = n
	return &out
}

func (r *ConfigRecord) String() string {
	return fmt.Sprintf("Config{name=%s spec=%s}", r.Name, r.Spec)
}

func (r *ComponentRecord) String() string {
	return fmt.Sprintf("Component{name=%s type=%s spec=%s}", r.Name, r.TypeName, r.Spec)
}

func (s SpecResult) String() string {
	if !s.OK() {
		return "error(" + s.Err + ")"
	}
	return s.Document.String()
}

func buildSpec(obj v1alpha1.Object) SpecResult {
	if obj.Spec.Config == nil {
		return SpecResult{Document: v1alpha1.Unit()}
	}
	switch doc := *obj.Spec.Config; doc.Kind() {
	case v1alpha1.DocumentMapping:
		return SpecResult{Document: doc.DeepCopy()}
	case v1alpha1.DocumentUnit:
		return SpecResult{Document: v1alpha1.Unit()}
	default:
		return SpecResult{Err: errInvalidConfig}
	}
}

// buildRecord converts an object into its catalog record.
func buildRecord(obj v1alpha1.Object) (record, error) {
	switch obj.Kind {
	case v1alpha1.KindConfig:
		return &ConfigRecord{Name: obj.Metadata.Name, Spec: buildSpec(obj)}, nil
	case v1alpha1.KindComponent:
		return &ComponentRecord{
			Name:     obj.Metadata.Name,
			TypeName: obj.Spec.TypeName(),
			Spec:     buildSpec(obj),
		}, nil
	default:
		return nil, fmt.Errorf("unexpected kind: %q", obj.Kind)
	}
}
