package citext

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ArrayOIDQuery looks up the OID of citext[]. It returns no row when the citext extension is not installed.
const ArrayOIDQuery = "SELECT typarray FROM pg_type WHERE typname = 'citext'"

// ArrayTypeName is the name citext[] is registered under in a pgtype.Map.
const ArrayTypeName = "_citext"

// RowQuerier is the subset of *pgx.Conn used to look up the array OID.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// LookupArrayOID returns the OID of citext[] on the database q is connected to, or 0 if the citext extension is not
// installed.
func LookupArrayOID(ctx context.Context, q RowQuerier) (uint32, error) {
	var oid uint32
	err := q.QueryRow(ctx, ArrayOIDQuery).Scan(&oid)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("citext: look up array oid: %w", err)
	}
	return oid, nil
}

// RegisterArrayType looks up the OID of citext[] with q and registers it in m. It returns the registered OID, or 0
// without registering anything if the extension is not installed. Registering an OID m already knows replaces the
// previous registration.
func RegisterArrayType(ctx context.Context, q RowQuerier, m *pgtype.Map) (uint32, error) {
	oid, err := LookupArrayOID(ctx, q)
	if err != nil || oid == 0 {
		return 0, err
	}

	m.RegisterType(NewArrayType(m, oid))
	return oid, nil
}

// NewArrayType returns the citext[] type for oid. Elements are decoded as text.
func NewArrayType(m *pgtype.Map, oid uint32) *pgtype.Type {
	elementType, ok := m.TypeForName("text")
	if !ok {
		elementType = &pgtype.Type{Name: "text", OID: pgtype.TextOID, Codec: pgtype.TextCodec{}}
	}

	return &pgtype.Type{
		Name:  ArrayTypeName,
		OID:   oid,
		Codec: &textArrayCodec{ArrayCodec: &pgtype.ArrayCodec{ElementType: elementType}},
	}
}

// textArrayCodec restricts an ArrayCodec to the text format. The binary array format carries the element OID, which
// must be the OID of citext itself, and that OID is never looked up.
type textArrayCodec struct {
	*pgtype.ArrayCodec
}

func (c *textArrayCodec) FormatSupported(format int16) bool {
	return format == pgtype.TextFormatCode
}

func (c *textArrayCodec) PreferredFormat() int16 {
	return pgtype.TextFormatCode
}

// AfterConnect registers citext[] in conn's type map. It matches pgxpool.Config.AfterConnect and
// stdlib.OptionAfterConnect.
func AfterConnect(ctx context.Context, conn *pgx.Conn) error {
	_, err := RegisterArrayType(ctx, conn, conn.TypeMap())
	return err
}
