package citext

import (
	"reflect"

	"github.com/calebj/citext/coltype"
)

const (
	// TypeName is the server-side name of the citext type.
	TypeName = "citext"

	// ColumnType is the type keyword used in DDL.
	ColumnType = "CITEXT"
)

// Type is the coltype.Descriptor for citext columns. Values pass through binding and result decoding unchanged;
// case-insensitivity is a property of server-side comparison, not of the value.
type Type struct{}

func (Type) TypeName() string   { return TypeName }
func (Type) ColumnType() string { return ColumnType }
func (Type) Concatenable() bool { return true }
func (Type) CacheOK() bool      { return true }

// LiteralProcessor returns a function rendering a value of any string kind, or a non-nil *string, as a quoted literal
// for dialect d. Any other value results in a *coltype.TypeMismatchError.
func (Type) LiteralProcessor(d coltype.Dialect) coltype.LiteralFunc {
	doublePercents := d.DoublePercents()
	return func(value any) (string, error) {
		switch value := value.(type) {
		case string:
			return Literal(value, doublePercents), nil
		case Text:
			return Literal(string(value), doublePercents), nil
		case *string:
			if value != nil {
				return Literal(*value, doublePercents), nil
			}
		default:
			if rv := reflect.ValueOf(value); rv.Kind() == reflect.String {
				return Literal(rv.String(), doublePercents), nil
			}
		}
		return "", &coltype.TypeMismatchError{TypeName: TypeName, Value: value}
	}
}

func (Type) BindProcessor(d coltype.Dialect) coltype.ValueFunc               { return coltype.Identity }
func (Type) ResultProcessor(d coltype.Dialect, oid uint32) coltype.ValueFunc { return coltype.Identity }

// Literal returns s as a single-quoted SQL literal. Single quotes are doubled. If doublePercents is true percent signs
// are doubled afterwards, as dialects with percent-style placeholders require.
func Literal(s string, doublePercents bool) string {
	return string(coltype.QuoteString(nil, s, doublePercents))
}

// RegisterReflection registers Type in r under the name "citext".
func RegisterReflection(r *coltype.Registry) {
	r.Register(TypeName, Type{})
}

func init() {
	RegisterReflection(coltype.Default)
}
