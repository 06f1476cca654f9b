package coltype_test

import (
	"sync"
	"testing"

	"github.com/calebj/citext/coltype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDescriptor struct {
	coltype.Unknown
	column string
}

func (f fakeDescriptor) ColumnType() string { return f.column }

func TestRegistryRegisterIsUpsert(t *testing.T) {
	r := coltype.NewRegistry()
	n := r.Len()

	r.Register("widget", fakeDescriptor{Unknown: coltype.Unknown{Name: "widget"}, column: "WIDGET"})
	r.Register("WIDGET", fakeDescriptor{Unknown: coltype.Unknown{Name: "widget"}, column: "WIDGET"})

	assert.Equal(t, n+1, r.Len())

	d, ok := r.Lookup("Widget")
	require.True(t, ok)
	assert.Equal(t, "WIDGET", d.ColumnType())
}

func TestRegistryLastWriterWins(t *testing.T) {
	r := coltype.NewRegistry()
	r.Register("widget", fakeDescriptor{column: "A"})
	r.Register("widget", fakeDescriptor{column: "B"})

	d, ok := r.Lookup("widget")
	require.True(t, ok)
	assert.Equal(t, "B", d.ColumnType())
}

func TestRegistryResolve(t *testing.T) {
	r := coltype.NewRegistry()

	assert.Equal(t, coltype.Int4, r.Resolve("int4"))
	assert.Equal(t, coltype.ArrayOf(coltype.Text), r.Resolve("_text"))
	assert.Equal(t, coltype.Unknown{Name: "hstore"}, r.Resolve("hstore"))
	assert.Equal(t, coltype.ArrayOf(coltype.Unknown{Name: "hstore"}), r.Resolve("_hstore"))
	assert.Equal(t, coltype.Unknown{Name: "_"}, r.Resolve("_"))
}

func TestRegistryNamesSorted(t *testing.T) {
	r := coltype.NewRegistry()
	names := r.Names()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "text")
}

func TestRegistryConcurrentRegister(t *testing.T) {
	r := coltype.NewRegistry()
	n := r.Len()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Register("widget", fakeDescriptor{column: "WIDGET"})
			r.Lookup("widget")
		}()
	}
	wg.Wait()

	assert.Equal(t, n+1, r.Len())
}
