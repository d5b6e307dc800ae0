package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const locatorSource = `package sample

import "strings"

// goldenGreeting checks the greeting.
//expect:golden("hello")
func goldenGreeting() string {
	return "hello"
}

func plain() string {
	return strings.Join([]string{
		"a",
		"b",
	}, "")
}

type box struct{}

//expect:golden("method")
func (box) goldenGreeting() string {
	return "method"
}

func noReturn() {
	_ = func() string {
		return "inner"
	}
}

func oneA() string { return "a" }; func oneB() string { return "b" }
`

func TestFunctions(t *testing.T) {
	src := loadTestSource(t, locatorSource)

	nodes := Functions(src)
	require.Len(t, nodes, 6)

	t.Run("annotated function", func(t *testing.T) {
		node := nodes[0]
		assert.Equal(t, "goldenGreeting", node.Name)
		assert.Equal(t, 6, node.DeclarationLine)
		assert.Equal(t, 7, node.FuncLine)
		assert.Equal(t, 8, node.ReturnLine)
		require.Len(t, node.Annotations, 1)
		assert.Equal(t, ExpectationName, node.Annotations[0].Name)
		assert.Equal(t, 1, node.Annotations[0].Index)
	})

	t.Run("multi-line return ends on its last line", func(t *testing.T) {
		node := nodes[1]
		assert.Equal(t, "plain", node.Name)
		assert.Equal(t, 11, node.DeclarationLine)
		assert.Equal(t, 11, node.FuncLine)
		assert.Equal(t, 15, node.ReturnLine)
		assert.Empty(t, node.Annotations)
	})

	t.Run("nested returns are ignored", func(t *testing.T) {
		node := nodes[3]
		assert.Equal(t, "noReturn", node.Name)
		assert.Zero(t, node.ReturnLine)
		assert.Nil(t, node.Return)
	})

	t.Run("one-line functions share a line", func(t *testing.T) {
		assert.Equal(t, 31, nodes[4].DeclarationLine)
		assert.Equal(t, 31, nodes[5].DeclarationLine)
		assert.Equal(t, 31, nodes[4].ReturnLine)
	})
}

func TestLocate(t *testing.T) {
	src := loadTestSource(t, locatorSource)

	t.Run("finds function by its first annotation", func(t *testing.T) {
		node, err := Locate(src, 6)
		require.NoError(t, err)
		assert.Equal(t, "goldenGreeting", node.Name)
		assert.Nil(t, node.Decl.Recv)
	})

	t.Run("finds method by its annotation", func(t *testing.T) {
		node, err := Locate(src, 20)
		require.NoError(t, err)
		assert.Equal(t, "goldenGreeting", node.Name)
		assert.NotNil(t, node.Decl.Recv)
	})

	t.Run("finds function without annotations by func line", func(t *testing.T) {
		node, err := Locate(src, 11)
		require.NoError(t, err)
		assert.Equal(t, "plain", node.Name)
	})

	t.Run("func line of an annotated function is not its declaration line", func(t *testing.T) {
		_, err := Locate(src, 7)
		require.ErrorIs(t, err, ErrTargetNotFound)
	})

	t.Run("no function on line", func(t *testing.T) {
		_, err := Locate(src, 2)
		require.ErrorIs(t, err, ErrTargetNotFound)
		assert.Contains(t, err.Error(), ":2")
	})

	t.Run("two functions on one line", func(t *testing.T) {
		_, err := Locate(src, 31)
		require.ErrorIs(t, err, ErrAmbiguousTarget)
		assert.Contains(t, err.Error(), "oneA")
		assert.Contains(t, err.Error(), "oneB")
	})
}

func TestLocateByName(t *testing.T) {
	src := loadTestSource(t, locatorSource)

	t.Run("skips methods", func(t *testing.T) {
		node, err := LocateByName(src, "goldenGreeting")
		require.NoError(t, err)
		assert.Equal(t, 6, node.DeclarationLine)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := LocateByName(src, "missing")
		require.ErrorIs(t, err, ErrTargetNotFound)
	})
}

func TestSpan(t *testing.T) {
	src := loadTestSource(t, locatorSource)
	nodes := Functions(src)

	t.Run("declaration through return", func(t *testing.T) {
		span, err := Span(src.Path, nodes[0])
		require.NoError(t, err)
		assert.Equal(t, 6, span.Start)
		assert.Equal(t, 8, span.End)
		assert.Equal(t, 3, span.Len())
		assert.True(t, span.Contains(7))
		assert.False(t, span.Contains(9))
	})

	t.Run("multi-line return", func(t *testing.T) {
		span, err := Span(src.Path, nodes[1])
		require.NoError(t, err)
		assert.Equal(t, 11, span.Start)
		assert.Equal(t, 15, span.End)
	})

	t.Run("no top-level return", func(t *testing.T) {
		_, err := Span(src.Path, nodes[3])
		require.ErrorIs(t, err, ErrUnresolvableSpan)
		assert.Contains(t, err.Error(), "noReturn")
	})
}
