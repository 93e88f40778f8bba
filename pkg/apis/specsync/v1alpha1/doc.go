// Package v1alpha1 contains the declarative object definitions consumed by specsync.
//
// Objects are stored one per file in a watched directory. The schema is
// intentionally shallow: specsync only cares about the object header, its
// declared name and the presence (and map-ness) of the nested configuration
// payload. Everything below spec.config and spec.exports is carried as an
// opaque Document.
//
// # Kinds
//
// Two kinds are recognized by the downstream catalog:
//
//   - Config: a named configuration unit
//   - Component: a named component of a given spec.type
//
// Example:
//
//	apiVersion: specsync.dev/v1alpha1
//	kind: Component
//	metadata:
//	  name: svc1
//	spec:
//	  type: worker
//	  config:
//	    replicas: 2
//	  imports:
//	    db:
//	      sourceType: Config
//	      name: database
//	      select: $.url
//	  exports:
//	    endpoint: http://svc1:8080
package v1alpha1
