// Package citext adds support for PostgreSQL's case-insensitive text type to pgx.
//
// Scalar citext values need no special handling: the server compares them case-insensitively and sends them in the
// same text form as text. Text is a string type for citext columns that scans and encodes as plain text and never
// changes the case of the value.
//
// Arrays are different. citext is an extension type, so the OID of citext[] is assigned when the extension is
// installed and pgx does not know it. AfterConnect looks the OID up on a connection and registers a text-format array
// type for it in that connection's type map, so citext[] values scan into and encode from []string:
//
//	config, err := pgxpool.ParseConfig(os.Getenv("DATABASE_URL"))
//	if err != nil {
//		return err
//	}
//	config.AfterConnect = citext.AfterConnect
//
// RegisterArray does the same for an engine.Engine, choosing the registration strategy from the engine's driver. For
// database/sql, Array scans and encodes citext[] values independent of the driver.
//
// Importing the package registers Type, the citext column type descriptor, in coltype.Default so that reflected
// tables describe citext columns as citext rather than as an unknown type.
package citext
