// Package index holds the last successfully loaded object of every tracked
// file key.
//
// A Directory is not safe for concurrent use. It is owned by a single
// reconciler and only ever touched from its event loop.
package index

import (
	"sort"

	"specsync/pkg/apis/specsync/v1alpha1"
)

// Directory maps file keys to their most recently decoded object.
type Directory struct {
	entries map[string]v1alpha1.Object
}

// New returns an empty Directory.
func New() *Directory {
	return &Directory{entries: make(map[string]v1alpha1.Object)}
}

// Put stores obj under key and returns the entry it replaced, if any.
func (d *Directory) Put(key string, obj v1alpha1.Object) (v1alpha1.Object, bool) {
	prev, ok := d.entries[key]
	d.entries[key] = obj.DeepCopy()
	return prev, ok
}

// Remove deletes key and returns the entry it held, if any.
func (d *Directory) Remove(key string) (v1alpha1.Object, bool) {
	prev, ok := d.entries[key]
	if ok {
		delete(d.entries, key)
	}
	return prev, ok
}

// Get returns a copy of the entry stored under key.
func (d *Directory) Get(key string) (v1alpha1.Object, bool) {
	obj, ok := d.entries[key]
	if !ok {
		return v1alpha1.Object{}, false
	}
	return obj.DeepCopy(), true
}

// Len returns the number of tracked keys.
func (d *Directory) Len() int {
	return len(d.entries)
}

// Keys returns the tracked keys in sorted order.
func (d *Directory) Keys() []string {
	keys := make([]string, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a detached copy of all entries.
func (d *Directory) Snapshot() map[string]v1alpha1.Object {
	out := make(map[string]v1alpha1.Object, len(d.entries))
	for k, v := range d.entries {
		out[k] = v.DeepCopy()
	}
	return out
}
