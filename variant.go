package citext

import (
	"context"
	"sort"

	"github.com/calebj/citext/engine"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/tracelog"
)

// Variant installs citext[] decoding on an engine for one kind of driver.
type Variant interface {
	Install(e *engine.Engine) error
}

// ConnScoped is the Variant for pgx-backed engines. It subscribes a hook that looks up the citext[] OID on every new
// connection and registers it in that connection's type map.
type ConnScoped struct{}

// arrayHookKey identifies the array registration hook among an engine's connect hooks.
const arrayHookKey = "citext.array"

// Install subscribes the registration hook once per engine. Installing again is a no-op.
func (ConnScoped) Install(e *engine.Engine) error {
	_, err := e.OnConnectOnce(arrayHookKey, func(ctx context.Context, conn *pgx.Conn) error {
		oid, err := RegisterArrayType(ctx, conn, conn.TypeMap())
		if err != nil {
			return err
		}

		if oid == 0 {
			e.Log(ctx, tracelog.LogLevelInfo, "citext extension not installed, citext[] uses default decoding", map[string]any{
				"pid": conn.PgConn().PID(),
			})
			return nil
		}

		e.Log(ctx, tracelog.LogLevelDebug, "citext array type registered", map[string]any{
			"oid": oid,
			"pid": conn.PgConn().PID(),
		})
		return nil
	})
	return err
}

// NativeText is the Variant for drivers that already return values of unknown array types in their text form, which
// Array decodes. It installs nothing.
type NativeText struct{}

func (NativeText) Install(e *engine.Engine) error {
	return nil
}

// UnknownDriverError is returned by RegisterArray for a driver with no Variant.
type UnknownDriverError struct {
	Driver string
}

func (e *UnknownDriverError) Error() string {
	return "citext: unknown driver: " + e.Driver
}

var variants = map[string]Variant{
	engine.DriverPgx:       ConnScoped{},
	engine.DriverPgxStdlib: ConnScoped{},
	engine.DriverLibPQ:     NativeText{},
}

// VariantFor returns the Variant for driver.
func VariantFor(driver string) (Variant, error) {
	v, ok := variants[driver]
	if !ok {
		return nil, &UnknownDriverError{Driver: driver}
	}
	return v, nil
}

// Drivers returns the names of the drivers RegisterArray supports.
func Drivers() []string {
	drivers := make([]string, 0, len(variants))
	for d := range variants {
		drivers = append(drivers, d)
	}
	sort.Strings(drivers)
	return drivers
}

// RegisterArray installs citext[] decoding on e using the Variant for e's driver. For pgx drivers this subscribes a
// connect hook, so it must be called before the connections that need decoding are established; connections already
// in the pool are not affected. Calling it again on the same engine does nothing. An unsupported driver returns an *UnknownDriverError and installs nothing.
func RegisterArray(e *engine.Engine) error {
	v, err := VariantFor(e.DriverName())
	if err != nil {
		return err
	}
	return v.Install(e)
}
