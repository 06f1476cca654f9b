package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/Masterminds/semver/v3"
	"github.com/jackc/pgx/v5/tracelog"

	"github.com/calebj/citext"
	"github.com/calebj/citext/coltype"
	"github.com/calebj/citext/engine"
)

// CREATE EXTENSION first appeared in 9.1.
var minServerVersion = semver.MustParse("9.1.0")

var smokeTable = &coltype.Table{
	Name: "citext_smoketest",
	Columns: []coltype.Column{
		{Name: "id", Type: coltype.Int4, PrimaryKey: true},
		{Name: "txt", Type: citext.Type{}, Nullable: true},
		{Name: "txt_array", Type: coltype.ArrayOf(citext.Type{}), Nullable: true},
	},
}

// prepare checks the server version and installs the extension. It runs on its own engine because the connections
// it makes predate the citext type.
func prepare(ctx context.Context, config engine.Config) (*semver.Version, error) {
	e, err := engine.Open(ctx, config)
	if err != nil {
		return nil, err
	}
	defer e.Close()

	version, err := e.ServerVersion(ctx)
	if err != nil {
		return nil, err
	}
	if version.LessThan(minServerVersion) {
		return nil, fmt.Errorf("server version %s is older than %s", version, minServerVersion)
	}

	if err := e.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS citext"); err != nil {
		return nil, fmt.Errorf("create extension: %w", err)
	}
	return version, nil
}

func run(ctx context.Context, opts *options, out io.Writer) error {
	logLevel, err := tracelog.LogLevelFromString(opts.logLevel)
	if err != nil {
		return err
	}
	logger, err := newLogger(opts.logger, os.Stderr)
	if err != nil {
		return err
	}

	config := engine.Config{
		Driver:   opts.driver,
		DSN:      opts.databaseURL,
		Logger:   logger,
		LogLevel: logLevel,
	}

	version, err := prepare(ctx, config)
	if err != nil {
		return err
	}

	e, err := engine.Open(ctx, config)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := citext.RegisterArray(e); err != nil {
		return err
	}

	if err := e.Exec(ctx, coltype.DropTableSQL(smokeTable)); err != nil {
		return err
	}
	if err := e.Exec(ctx, coltype.CreateTableSQL(smokeTable)); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	defer e.Exec(context.Background(), coltype.DropTableSQL(smokeTable))

	err = e.Exec(ctx, "INSERT INTO citext_smoketest (id, txt, txt_array) VALUES (1, 'FooFighter', '{foo,bar}')")
	if err != nil {
		return fmt.Errorf("insert: %w", err)
	}

	lit, err := citext.Type{}.LiteralProcessor(coltype.Postgres)("foofighter")
	if err != nil {
		return err
	}

	var count int64
	if err := e.QueryRow(ctx, []any{&count}, "SELECT count(*) FROM citext_smoketest WHERE txt = "+lit); err != nil {
		return err
	}
	if count != 1 {
		return fmt.Errorf("expected 1 row matching %s, got %d", lit, count)
	}

	var txt citext.Text
	var arr citext.Array
	if err := e.QueryRow(ctx, []any{&txt, &arr}, "SELECT txt, txt_array FROM citext_smoketest WHERE txt = "+lit); err != nil {
		return err
	}
	if txt != "FooFighter" {
		return fmt.Errorf("txt: expected %q, got %q", "FooFighter", txt)
	}
	if !slices.Equal(arr, citext.Array{"foo", "bar"}) {
		return fmt.Errorf("txt_array: expected %v, got %v", []string{"foo", "bar"}, []string(arr))
	}

	fmt.Fprintf(out, "ok: %s driver, server %s, matched %s case-insensitively\n", e.DriverName(), version, txt)
	return nil
}
