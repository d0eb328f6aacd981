package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/triples-lang/triples/internal/value"
)

func TestTruthySet(t *testing.T) {
	assert.False(t, value.Truthy(value.Null{}))
	assert.False(t, value.Truthy(value.Bool(false)))
	assert.False(t, value.Truthy(value.Number(0)))
	assert.True(t, value.Truthy(value.Bool(true)))
	assert.True(t, value.Truthy(value.Number(1)))
	assert.True(t, value.Truthy(value.Number(-1)))

	tbl := value.NewTable()
	assert.True(t, value.Truthy(tbl.InternString("")))
}

func TestEqualityNoCoercion(t *testing.T) {
	assert.False(t, value.Equal(value.Number(1), value.Bool(true)))
	assert.True(t, value.Equal(value.Null{}, value.Null{}))
	assert.True(t, value.Equal(value.Number(3), value.Number(3)))
	assert.False(t, value.Equal(value.Number(3), value.Number(4)))
	assert.True(t, value.Equal(value.Bool(true), value.Bool(true)))
}

func TestStringInterningIdentity(t *testing.T) {
	tbl := value.NewTable()
	a := tbl.InternString("hello")
	b := tbl.InternString("hello")
	assert.Equal(t, a.Handle, b.Handle)
	assert.True(t, value.Equal(a, b))

	c := tbl.InternString("world")
	assert.NotEqual(t, a.Handle, c.Handle)
}

func TestConcatInternsResult(t *testing.T) {
	tbl := value.NewTable()
	a := tbl.InternString("foo")
	b := tbl.InternString("bar")
	cat := tbl.Concat(a, b)
	assert.Equal(t, "foobar", cat.Preview)

	again := tbl.InternString("foobar")
	assert.Equal(t, again.Handle, cat.Handle)
}

func TestNumberFormatting(t *testing.T) {
	assert.Equal(t, "7", value.Number(7).String())
	assert.Equal(t, "3.25", value.Number(3.25).String())
	assert.Equal(t, "-1", value.Number(-1).String())
}
