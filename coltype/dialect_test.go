package coltype_test

import (
	"testing"

	"github.com/calebj/citext/coltype"
	"github.com/stretchr/testify/assert"
)

func TestDialectDoublePercents(t *testing.T) {
	assert.False(t, coltype.Postgres.DoublePercents())
	assert.False(t, coltype.Dialect{Placeholder: coltype.Question}.DoublePercents())
	assert.True(t, coltype.Dialect{Placeholder: coltype.Format}.DoublePercents())
	assert.True(t, coltype.Dialect{Placeholder: coltype.PyFormat}.DoublePercents())
}

func TestPlaceholderStyleString(t *testing.T) {
	assert.Equal(t, "dollar", coltype.Dollar.String())
	assert.Equal(t, "pyformat", coltype.PyFormat.String())
	assert.Equal(t, "invalid placeholder style 42", coltype.PlaceholderStyle(42).String())
}
