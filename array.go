package citext

import (
	"database/sql/driver"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
)

// Array is a citext[] value for use with database/sql. It scans the PostgreSQL text array format that lib/pq and
// pgx's stdlib driver return for citext[] columns, and encodes to the same format. A nil Array is NULL. Elements may
// not be NULL.
//
// Native pgx connections with the array type registered can scan directly into []string instead.
type Array []string

// Scan implements the database/sql Scanner interface.
func (dst *Array) Scan(src any) error {
	var buf []byte
	switch src := src.(type) {
	case nil:
		*dst = nil
		return nil
	case string:
		buf = []byte(src)
	case []byte:
		buf = src
	default:
		return fmt.Errorf("cannot scan %T into %T", src, dst)
	}

	var elems []string
	err := pgtype.NewMap().Scan(pgtype.TextArrayOID, pgtype.TextFormatCode, buf, &elems)
	if err != nil {
		return err
	}

	if elems == nil {
		elems = []string{}
	}
	*dst = elems

	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (src Array) Value() (driver.Value, error) {
	if src == nil {
		return nil, nil
	}

	buf, err := pgtype.NewMap().Encode(pgtype.TextArrayOID, pgtype.TextFormatCode, []string(src), nil)
	if err != nil {
		return nil, err
	}

	return string(buf), nil
}
