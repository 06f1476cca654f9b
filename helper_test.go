package citext_test

import (
	"context"
	"os"
	"testing"

	"github.com/calebj/citext"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxtest"
	"github.com/stretchr/testify/require"
)

var defaultConnTestRunner pgxtest.ConnTestRunner

func init() {
	defaultConnTestRunner = pgxtest.DefaultConnTestRunner()
	defaultConnTestRunner.CreateConfig = func(ctx context.Context, t testing.TB) *pgx.ConnConfig {
		config, err := pgx.ParseConfig(testDatabaseURL(t))
		require.NoError(t, err)
		return config
	}
	defaultConnTestRunner.AfterConnect = func(ctx context.Context, t testing.TB, conn *pgx.Conn) {
		requireExtension(ctx, t, conn)
		require.NoError(t, citext.AfterConnect(ctx, conn))
	}
}

func testDatabaseURL(t testing.TB) string {
	connString := os.Getenv("CITEXT_TEST_DATABASE")
	if connString == "" {
		t.Skipf("Skipping due to missing environment variable %v", "CITEXT_TEST_DATABASE")
	}
	return connString
}

// requireExtension installs the citext extension or skips the test if the role may not.
func requireExtension(ctx context.Context, t testing.TB, conn *pgx.Conn) {
	_, err := conn.Exec(ctx, "create extension if not exists citext")
	if err != nil {
		t.Skipf("Skipping because the citext extension could not be created: %v", err)
	}
}

func isExpectedEq(a any) func(any) bool {
	return func(v any) bool {
		return a == v
	}
}
