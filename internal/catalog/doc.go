// Package catalog is the lifecycle sink that keeps a queryable catalog of
// Config and Component records derived from declarative objects.
//
// Each notification is turned into record changes that are applied in a
// single go-memdb write transaction. If any change fails the transaction is
// aborted and the catalog is left exactly as it was.
//
// Objects of any kind other than Config or Component are rejected. A
// spec.config that is neither absent nor a mapping does not reject the
// object; the record is stored with a failed spec instead.
package catalog
