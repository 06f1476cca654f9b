// Package coltype maps PostgreSQL server types to client-side column type descriptors.
//
// A Descriptor knows how a type is written in DDL, how a Go value of that type is rendered as an SQL literal, and how
// values pass through parameter binding and result decoding. Descriptors are kept in a Registry keyed by server type
// name. Reflect uses a Registry to describe the columns of an existing table, falling back to Unknown for types
// nothing has registered.
//
// Extension packages register their types into Default from init:
//
//	func init() {
//		coltype.Register("citext", Type{})
//	}
package coltype
