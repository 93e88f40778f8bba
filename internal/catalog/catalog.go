package catalog

import (
	"fmt"

	memdb "github.com/hashicorp/go-memdb"

	"specsync/internal/reconciler"
	"specsync/pkg/apis/specsync/v1alpha1"
	"specsync/pkg/logging"
)

const (
	indexID   = "id"
	indexName = "name"
)

func schema() *memdb.DBSchema {
	table := func(name string) *memdb.TableSchema {
		return &memdb.TableSchema{
			Name: name,
			Indexes: map[string]*memdb.IndexSchema{
				indexID: {
					Name:    indexID,
					Unique:  true,
					Indexer: identityIndexer{},
				},
				indexName: {
					Name:    indexName,
					Indexer: &memdb.StringFieldIndex{Field: "Name"},
				},
			},
		}
	}
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableConfig:    table(tableConfig),
			tableComponent: table(tableComponent),
		},
	}
}

// identityIndexer indexes records by their full content, so two objects that
// share a name but differ elsewhere are kept apart.
type identityIndexer struct{}

func (identityIndexer) FromArgs(args ...interface{}) ([]byte, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("must provide only a single argument")
	}
	id, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("argument must be a string: %#v", args[0])
	}
	return []byte(id + "\x00"), nil
}

func (identityIndexer) FromObject(obj interface{}) (bool, []byte, error) {
	rec, ok := obj.(record)
	if !ok {
		return false, nil, fmt.Errorf("not a catalog record: %T", obj)
	}
	return true, []byte(rec.identity() + "\x00"), nil
}

// Catalog is a transactional store of Config and Component records.
// It is safe for concurrent use.
type Catalog struct {
	db *memdb.MemDB
}

var _ reconciler.Sink = (*Catalog)(nil)

// New creates an empty catalog.
func New() (*Catalog, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog: %w", err)
	}
	return &Catalog{db: db}, nil
}

type changeOp string

const (
	opInsert changeOp = "insert"
	opDelete changeOp = "delete"
)

type change struct {
	op  changeOp
	rec record
}

// Created inserts the record for obj.
func (c *Catalog) Created(obj v1alpha1.Object) error {
	rec, err := buildRecord(obj)
	if err != nil {
		return err
	}
	return c.apply(change{opInsert, rec})
}

// Updated replaces the record for oldObj with the record for newObj.
func (c *Catalog) Updated(oldObj, newObj v1alpha1.Object) error {
	oldRec, oldErr := buildRecord(oldObj)
	newRec, newErr := buildRecord(newObj)
	if err := reconciler.Combine(
		reconciler.Attempt("old", oldErr),
		reconciler.Attempt("new", newErr),
	); err != nil {
		return err
	}
	return c.apply(change{opDelete, oldRec}, change{opInsert, newRec})
}

// Deleted removes the record for obj. Removing an absent record is a no-op.
func (c *Catalog) Deleted(obj v1alpha1.Object) error {
	rec, err := buildRecord(obj)
	if err != nil {
		return err
	}
	return c.apply(change{opDelete, rec})
}

// apply runs all changes in one write transaction. Identical records are
// reference counted: an insert of an existing record bumps its count and a
// delete only drops the record once the last reference is gone.
func (c *Catalog) apply(changes ...change) error {
	txn := c.db.Txn(true)
	defer txn.Abort()

	for _, ch := range changes {
		if recordName(ch.rec) == "" {
			return fmt.Errorf("%s %s: record has no name", ch.op, ch.rec)
		}
		existing, err := txn.First(ch.rec.table(), indexID, ch.rec.identity())
		if err != nil {
			return fmt.Errorf("%s %s: %w", ch.op, ch.rec, err)
		}

		switch ch.op {
		case opInsert:
			refs := 0
			if existing != nil {
				refs = existing.(record).refs()
			}
			err = txn.Insert(ch.rec.table(), ch.rec.withRefs(refs+1))
		case opDelete:
			if existing == nil {
				break
			}
			if prev := existing.(record); prev.refs() > 1 {
				err = txn.Insert(ch.rec.table(), prev.withRefs(prev.refs()-1))
			} else {
				err = txn.Delete(ch.rec.table(), prev)
			}
		}
		if err != nil {
			return fmt.Errorf("%s %s: %w", ch.op, ch.rec, err)
		}
	}
	txn.Commit()

	for _, ch := range changes {
		logging.Info("Catalog", "%s %s", ch.op, ch.rec)
	}
	return nil
}

func recordName(rec record) string {
	switch r := rec.(type) {
	case *ConfigRecord:
		return r.Name
	case *ComponentRecord:
		return r.Name
	}
	return ""
}

// Configs returns all Config records ordered by name.
func (c *Catalog) Configs() []ConfigRecord {
	var out []ConfigRecord
	c.each(tableConfig, func(raw interface{}) {
		out = append(out, *raw.(*ConfigRecord))
	})
	return out
}

// Components returns all Component records ordered by name.
func (c *Catalog) Components() []ComponentRecord {
	var out []ComponentRecord
	c.each(tableComponent, func(raw interface{}) {
		out = append(out, *raw.(*ComponentRecord))
	})
	return out
}

// LookupConfig returns the first Config record named name.
func (c *Catalog) LookupConfig(name string) (ConfigRecord, bool) {
	raw := c.first(tableConfig, name)
	if raw == nil {
		return ConfigRecord{}, false
	}
	return *raw.(*ConfigRecord), true
}

// LookupComponent returns the first Component record named name.
func (c *Catalog) LookupComponent(name string) (ComponentRecord, bool) {
	raw := c.first(tableComponent, name)
	if raw == nil {
		return ComponentRecord{}, false
	}
	return *raw.(*ComponentRecord), true
}

// Len returns the total number of records.
func (c *Catalog) Len() int {
	n := 0
	for _, table := range []string{tableConfig, tableComponent} {
		c.each(table, func(interface{}) { n++ })
	}
	return n
}

func (c *Catalog) first(table, name string) interface{} {
	txn := c.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(table, indexName, name)
	if err != nil {
		logging.Error("Catalog", err, "lookup %s/%s", table, name)
		return nil
	}
	return raw
}

func (c *Catalog) each(table string, fn func(interface{})) {
	txn := c.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(table, indexName)
	if err != nil {
		logging.Error("Catalog", err, "list %s", table)
		return
	}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		fn(raw)
	}
}
