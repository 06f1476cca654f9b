package coltype

import (
	"fmt"
	"strconv"
	"strings"
)

// LiteralFunc renders value as SQL text that can be embedded directly in a statement.
type LiteralFunc func(value any) (string, error)

// ValueFunc converts a value on the way to or from the driver.
type ValueFunc func(value any) (any, error)

// Descriptor describes how values of one server-side column type are rendered, bound, and decoded.
type Descriptor interface {
	// TypeName is the server type name as it appears in pg_type.typname, e.g. "int4" or "citext".
	TypeName() string

	// ColumnType is the type keyword emitted in DDL, e.g. "INTEGER" or "CITEXT".
	ColumnType() string

	// Concatenable reports whether the type supports the || operator.
	Concatenable() bool

	// CacheOK reports whether statements involving the type may be cached by value of the descriptor.
	CacheOK() bool

	LiteralProcessor(d Dialect) LiteralFunc
	BindProcessor(d Dialect) ValueFunc
	ResultProcessor(d Dialect, oid uint32) ValueFunc
}

// TypeMismatchError is returned when a value of the wrong Go type is handed to a literal processor.
type TypeMismatchError struct {
	TypeName string
	Value    any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("coltype: cannot render %T as %s literal", e.Value, e.TypeName)
}

// Identity is a ValueFunc that returns its input unchanged.
func Identity(value any) (any, error) {
	return value, nil
}

// Unknown is the descriptor for server types nothing has registered.
type Unknown struct {
	Name string
}

func (u Unknown) TypeName() string   { return u.Name }
func (u Unknown) ColumnType() string { return u.Name }
func (Unknown) Concatenable() bool   { return false }
func (Unknown) CacheOK() bool        { return true }

func (u Unknown) LiteralProcessor(d Dialect) LiteralFunc {
	return func(value any) (string, error) {
		return "", fmt.Errorf("coltype: no literal rendering for unknown type %s", u.Name)
	}
}

func (Unknown) BindProcessor(d Dialect) ValueFunc               { return Identity }
func (Unknown) ResultProcessor(d Dialect, oid uint32) ValueFunc { return Identity }

// Array is the descriptor for a one-dimensional array of Elem.
type Array struct {
	Elem Descriptor
}

// ArrayOf returns the array descriptor for elem.
func ArrayOf(elem Descriptor) Array {
	return Array{Elem: elem}
}

func (a Array) TypeName() string   { return "_" + a.Elem.TypeName() }
func (a Array) ColumnType() string { return a.Elem.ColumnType() + "[]" }
func (Array) Concatenable() bool   { return true }
func (a Array) CacheOK() bool      { return a.Elem.CacheOK() }

// LiteralProcessor renders []string or []any values as an ARRAY constructor cast to the array type. Elements are
// rendered with the element type's literal processor.
func (a Array) LiteralProcessor(d Dialect) LiteralFunc {
	elemLiteral := a.Elem.LiteralProcessor(d)
	return func(value any) (string, error) {
		var elems []any
		switch value := value.(type) {
		case []string:
			elems = make([]any, len(value))
			for i := range value {
				elems[i] = value[i]
			}
		case []any:
			elems = value
		default:
			return "", &TypeMismatchError{TypeName: a.TypeName(), Value: value}
		}

		if len(elems) == 0 {
			return "'{}'::" + a.ColumnType(), nil
		}

		var sb strings.Builder
		sb.WriteString("ARRAY[")
		for i, e := range elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			lit, err := elemLiteral(e)
			if err != nil {
				return "", err
			}
			sb.WriteString(lit)
		}
		sb.WriteString("]::")
		sb.WriteString(a.ColumnType())
		return sb.String(), nil
	}
}

func (Array) BindProcessor(d Dialect) ValueFunc               { return Identity }
func (Array) ResultProcessor(d Dialect, oid uint32) ValueFunc { return Identity }

type literalKind int

const (
	textLiteral literalKind = iota
	intLiteral
	boolLiteral
)

// basic is a descriptor for the builtin types the reflector is expected to meet next to a citext column.
type basic struct {
	name   string
	column string
	kind   literalKind
}

func (b basic) TypeName() string   { return b.name }
func (b basic) ColumnType() string { return b.column }
func (b basic) Concatenable() bool { return b.kind == textLiteral }
func (basic) CacheOK() bool        { return true }

func (b basic) LiteralProcessor(d Dialect) LiteralFunc {
	return func(value any) (string, error) {
		switch b.kind {
		case textLiteral:
			if s, ok := value.(string); ok {
				return string(QuoteString(nil, s, d.DoublePercents())), nil
			}
		case intLiteral:
			switch n := value.(type) {
			case int:
				return strconv.Itoa(n), nil
			case int16:
				return strconv.FormatInt(int64(n), 10), nil
			case int32:
				return strconv.FormatInt(int64(n), 10), nil
			case int64:
				return strconv.FormatInt(n, 10), nil
			}
		case boolLiteral:
			if v, ok := value.(bool); ok {
				if v {
					return "TRUE", nil
				}
				return "FALSE", nil
			}
		}
		return "", &TypeMismatchError{TypeName: b.name, Value: value}
	}
}

func (basic) BindProcessor(d Dialect) ValueFunc               { return Identity }
func (basic) ResultProcessor(d Dialect, oid uint32) ValueFunc { return Identity }

var (
	Text    Descriptor = basic{name: "text", column: "TEXT", kind: textLiteral}
	Varchar Descriptor = basic{name: "varchar", column: "VARCHAR", kind: textLiteral}
	Bpchar  Descriptor = basic{name: "bpchar", column: "CHAR", kind: textLiteral}
	Int2    Descriptor = basic{name: "int2", column: "SMALLINT", kind: intLiteral}
	Int4    Descriptor = basic{name: "int4", column: "INTEGER", kind: intLiteral}
	Int8    Descriptor = basic{name: "int8", column: "BIGINT", kind: intLiteral}
	Bool    Descriptor = basic{name: "bool", column: "BOOLEAN", kind: boolLiteral}
)

var builtins = []Descriptor{Text, Varchar, Bpchar, Int2, Int4, Int8, Bool}
