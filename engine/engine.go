// Package engine opens a PostgreSQL connection pool for one of several drivers and lets callers subscribe to the
// establishment of every new physical connection.
//
// The driver name selects how connections are made:
//
//	"pgx"         native pgx connections pooled by pgxpool
//	"pgx/stdlib"  database/sql over pgx's stdlib driver
//	anything else database/sql via sql.Open (e.g. "postgres" for lib/pq)
//
// Connect hooks receive the underlying *pgx.Conn, so they are only available on the two pgx drivers.
package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	_ "github.com/lib/pq"
)

const (
	DriverPgx       = "pgx"
	DriverPgxStdlib = "pgx/stdlib"
	DriverLibPQ     = "postgres"
)

// ErrHooksUnsupported is returned by OnConnect for engines whose connections are not pgx connections.
var ErrHooksUnsupported = errors.New("engine: connect hooks require a pgx driver")

// ConnectHook is called with each newly established connection before it is handed out. An error fails the
// connection attempt.
type ConnectHook func(ctx context.Context, conn *pgx.Conn) error

// Config contains the options used to open an Engine.
type Config struct {
	Driver string
	DSN    string

	// MaxConns limits the pool size. Zero uses the driver default.
	MaxConns int32

	// Logger receives pgx trace output and messages from connect hooks. nil disables logging.
	Logger   tracelog.Logger
	LogLevel tracelog.LogLevel
}

// Engine is a connection pool plus the hooks run on each of its new connections. It is safe for concurrent use.
type Engine struct {
	driver string
	pool   *pgxpool.Pool
	db     *sql.DB

	logger   tracelog.Logger
	logLevel tracelog.LogLevel

	hooksMux sync.RWMutex
	hooks    []ConnectHook
	hookKeys map[string]struct{}
}

// Open creates an Engine. No connection is established until one is needed.
func Open(ctx context.Context, config Config) (*Engine, error) {
	driver, err := ParseDriver(config.Driver)
	if err != nil {
		return nil, err
	}
	config.Driver = driver

	e := &Engine{
		driver:   config.Driver,
		logger:   config.Logger,
		logLevel: config.LogLevel,
	}
	if e.logLevel == 0 {
		e.logLevel = tracelog.LogLevelInfo
	}

	switch config.Driver {
	case DriverPgx:
		poolConfig, err := pgxpool.ParseConfig(config.DSN)
		if err != nil {
			return nil, fmt.Errorf("engine: parse config: %w", err)
		}
		if config.MaxConns > 0 {
			poolConfig.MaxConns = config.MaxConns
		}
		e.setTracer(poolConfig.ConnConfig)
		poolConfig.AfterConnect = e.afterConnect

		e.pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, fmt.Errorf("engine: create pool: %w", err)
		}

	case DriverPgxStdlib:
		connConfig, err := pgx.ParseConfig(config.DSN)
		if err != nil {
			return nil, fmt.Errorf("engine: parse config: %w", err)
		}
		e.setTracer(connConfig)

		e.db = stdlib.OpenDB(*connConfig, stdlib.OptionAfterConnect(e.afterConnect))
		if config.MaxConns > 0 {
			e.db.SetMaxOpenConns(int(config.MaxConns))
		}

	default:
		db, err := sql.Open(config.Driver, config.DSN)
		if err != nil {
			return nil, fmt.Errorf("engine: open %s: %w", config.Driver, err)
		}
		if config.MaxConns > 0 {
			db.SetMaxOpenConns(int(config.MaxConns))
		}
		e.db = db
	}

	return e, nil
}

// ParseDriver normalizes a driver name. Surrounding whitespace is ignored and an empty name is an error.
func ParseDriver(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("engine: driver is required")
	}
	return name, nil
}

func (e *Engine) setTracer(connConfig *pgx.ConnConfig) {
	if e.logger == nil {
		return
	}
	connConfig.Tracer = &tracelog.TraceLog{Logger: e.logger, LogLevel: e.logLevel}
}

func (e *Engine) afterConnect(ctx context.Context, conn *pgx.Conn) error {
	e.hooksMux.RLock()
	hooks := e.hooks
	e.hooksMux.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, conn); err != nil {
			return fmt.Errorf("engine: connect hook: %w", err)
		}
	}
	return nil
}

// OnConnect subscribes hook to every physical connection established after the call. Hooks run in subscription
// order on the goroutine establishing the connection.
func (e *Engine) OnConnect(hook ConnectHook) error {
	_, err := e.subscribe("", hook)
	return err
}

// OnConnectOnce subscribes hook under key unless a hook is already subscribed under key. It reports whether hook was
// subscribed.
func (e *Engine) OnConnectOnce(key string, hook ConnectHook) (bool, error) {
	if key == "" {
		return false, errors.New("engine: hook key is required")
	}
	return e.subscribe(key, hook)
}

func (e *Engine) subscribe(key string, hook ConnectHook) (bool, error) {
	if e.pool == nil && e.driver != DriverPgxStdlib {
		return false, fmt.Errorf("%w: %s", ErrHooksUnsupported, e.driver)
	}

	e.hooksMux.Lock()
	defer e.hooksMux.Unlock()

	if key != "" {
		if _, ok := e.hookKeys[key]; ok {
			return false, nil
		}
		if e.hookKeys == nil {
			e.hookKeys = make(map[string]struct{})
		}
		e.hookKeys[key] = struct{}{}
	}

	// Copy so a concurrent afterConnect keeps iterating its own snapshot.
	hooks := make([]ConnectHook, len(e.hooks), len(e.hooks)+1)
	copy(hooks, e.hooks)
	e.hooks = append(hooks, hook)

	return true, nil
}

// HookCount returns the number of subscribed connect hooks.
func (e *Engine) HookCount() int {
	e.hooksMux.RLock()
	defer e.hooksMux.RUnlock()
	return len(e.hooks)
}

// DriverName returns the driver the engine was opened with.
func (e *Engine) DriverName() string {
	return e.driver
}

// Pool returns the pgxpool for "pgx" engines and nil otherwise.
func (e *Engine) Pool() *pgxpool.Pool {
	return e.pool
}

// DB returns the *sql.DB for database/sql engines and nil for "pgx" engines.
func (e *Engine) DB() *sql.DB {
	return e.db
}

// Log writes to the configured logger if level is enabled.
func (e *Engine) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	if e.logger == nil || e.logLevel < level {
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	e.logger.Log(ctx, level, msg, data)
}

// Exec executes query with arguments on any connection of the engine.
func (e *Engine) Exec(ctx context.Context, query string, args ...any) error {
	if e.pool != nil {
		_, err := e.pool.Exec(ctx, query, args...)
		return err
	}
	_, err := e.db.ExecContext(ctx, query, args...)
	return err
}

// QueryRow executes a query expected to return at most one row and scans it into dest. No row is reported as
// sql.ErrNoRows for every driver.
func (e *Engine) QueryRow(ctx context.Context, dest []any, query string, args ...any) error {
	if e.pool != nil {
		err := e.pool.QueryRow(ctx, query, args...).Scan(dest...)
		if errors.Is(err, pgx.ErrNoRows) {
			return sql.ErrNoRows
		}
		return err
	}
	return e.db.QueryRowContext(ctx, query, args...).Scan(dest...)
}

// ServerVersion returns the version reported by the server's server_version setting.
func (e *Engine) ServerVersion(ctx context.Context) (*semver.Version, error) {
	var s string
	if err := e.QueryRow(ctx, []any{&s}, "show server_version"); err != nil {
		return nil, fmt.Errorf("engine: server version: %w", err)
	}
	return ParseServerVersion(s)
}

// ParseServerVersion parses a server_version string such as "16.2 (Debian 16.2-1.pgdg120+2)".
func ParseServerVersion(s string) (*semver.Version, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("engine: empty server version")
	}

	v, err := semver.NewVersion(fields[0])
	if err != nil {
		return nil, fmt.Errorf("engine: parse server version %q: %w", s, err)
	}
	return v, nil
}

// Close closes the pool and all its connections.
func (e *Engine) Close() error {
	if e.pool != nil {
		e.pool.Close()
		return nil
	}
	return e.db.Close()
}
