package coltype

import "fmt"

// PlaceholderStyle is the bind parameter syntax a driver expects.
type PlaceholderStyle int

const (
	Dollar   PlaceholderStyle = iota // $1, $2 (pgx, lib/pq)
	Question                         // ?
	Format                           // %s
	PyFormat                         // %(name)s
)

func (s PlaceholderStyle) String() string {
	switch s {
	case Dollar:
		return "dollar"
	case Question:
		return "question"
	case Format:
		return "format"
	case PyFormat:
		return "pyformat"
	default:
		return fmt.Sprintf("invalid placeholder style %d", int(s))
	}
}

// Dialect describes the SQL text conventions literal rendering must follow.
type Dialect struct {
	Name        string
	Placeholder PlaceholderStyle
}

// Postgres is the dialect used by pgx and lib/pq.
var Postgres = Dialect{Name: "postgres", Placeholder: Dollar}

// DoublePercents reports whether a literal percent sign must be written as %% because the placeholder syntax itself
// uses percent signs.
func (d Dialect) DoublePercents() bool {
	return d.Placeholder == Format || d.Placeholder == PyFormat
}
