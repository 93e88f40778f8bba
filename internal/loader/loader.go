package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	"specsync/pkg/apis/specsync/v1alpha1"
)

// Extension is the only file extension recognized as a declarative object.
const Extension = ".yaml"

// LoadError reports that an eligible file could not be turned into an object.
type LoadError struct {
	Path  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Key returns the index key of a path: its base name, extension included.
func Key(path string) string {
	return filepath.Base(path)
}

// Eligible reports whether path names a candidate object file: a regular
// file (symlinks followed) with the object extension.
func Eligible(path string) bool {
	if filepath.Ext(path) != Extension {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		// Missing files stay eligible so removals can be resolved.
		return true
	}
	return info.Mode().IsRegular()
}

// Load reads and decodes the object stored at path.
func Load(path string) (v1alpha1.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return v1alpha1.Object{}, &LoadError{Path: path, Cause: err}
	}
	obj, err := Decode(data)
	if err != nil {
		return v1alpha1.Object{}, &LoadError{Path: path, Cause: err}
	}
	return obj, nil
}

// objectHeader mirrors the required fields of an object so that presence can
// be checked independently of zero values.
type objectHeader struct {
	APIVersion *string `json:"apiVersion"`
	Kind       *string `json:"kind"`
	Metadata   *struct {
		Name *string `json:"name"`
	} `json:"metadata"`
	Spec *struct{} `json:"spec"`
}

// Decode parses YAML content into an object. Unknown fields are ignored.
func Decode(data []byte) (v1alpha1.Object, error) {
	var header objectHeader
	if err := yaml.Unmarshal(data, &header); err != nil {
		return v1alpha1.Object{}, err
	}
	if err := header.validate(); err != nil {
		return v1alpha1.Object{}, err
	}

	var obj v1alpha1.Object
	if err := yaml.Unmarshal(data, &obj); err != nil {
		return v1alpha1.Object{}, err
	}
	return obj, nil
}

func (h objectHeader) validate() error {
	switch {
	case h.APIVersion == nil:
		return missingField("apiVersion")
	case h.Kind == nil:
		return missingField("kind")
	case h.Metadata == nil:
		return missingField("metadata")
	case h.Metadata.Name == nil:
		return missingField("metadata.name")
	case h.Spec == nil:
		return missingField("spec")
	}
	return nil
}

var errMissingField = errors.New("missing field")

func missingField(name string) error {
	return fmt.Errorf("%w %q", errMissingField, name)
}
