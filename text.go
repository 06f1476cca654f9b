package citext

import (
	"database/sql/driver"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/text/cases"
)

// Text is a citext value. It is a plain string: it is sent and received exactly as the server stores it, preserving
// the original case. Use *Text or pgtype.Text for nullable columns.
type Text string

// ScanText implements the pgtype.TextScanner interface.
func (dst *Text) ScanText(v pgtype.Text) error {
	if !v.Valid {
		return fmt.Errorf("cannot scan NULL into %T", dst)
	}

	*dst = Text(v.String)

	return nil
}

// TextValue implements the pgtype.TextValuer interface.
func (src Text) TextValue() (pgtype.Text, error) {
	return pgtype.Text{String: string(src), Valid: true}, nil
}

// Scan implements the database/sql Scanner interface.
func (dst *Text) Scan(src any) error {
	if src == nil {
		return fmt.Errorf("cannot scan NULL into %T", dst)
	}

	var nullable pgtype.Text
	err := nullable.Scan(src)
	if err != nil {
		return err
	}

	*dst = Text(nullable.String)

	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (src Text) Value() (driver.Value, error) {
	return string(src), nil
}

func (src Text) String() string {
	return string(src)
}

// EqualFold reports whether src and other are equal under Unicode case folding. It approximates in memory how the
// server compares citext values.
func (src Text) EqualFold(other string) bool {
	caser := cases.Fold()
	return caser.String(string(src)) == caser.String(other)
}
